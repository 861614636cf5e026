// FILE: storage.go
package llog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Sink is the write target a Logger's consumer drains into. A Sink
// owns its own durability and rotation policy; the core queue/consumer
// never inspects file paths, sizes, or disk state directly.
type Sink interface {
	Write(data []byte) (int, error)
	Flush() error
}

// DiscardSink throws every write away. Used by tests and by
// configurations that disable file output entirely without replacing
// it with any other sink.
type DiscardSink struct{}

func (DiscardSink) Write(data []byte) (int, error) { return len(data), nil }
func (DiscardSink) Flush() error                    { return nil }

// ConsoleSink writes directly to stdout or stderr, unbuffered, so
// interleaved application output and log output stay in the order the
// OS observed the writes.
type ConsoleSink struct {
	w io.Writer
}

// NewConsoleSink returns a ConsoleSink targeting target ("stdout" or
// "stderr"); any other value defaults to stdout.
func NewConsoleSink(target string) *ConsoleSink {
	w := os.Stdout
	if target == "stderr" {
		w = os.Stderr
	}
	return &ConsoleSink{w: w}
}

func (c *ConsoleSink) Write(data []byte) (int, error) { return c.w.Write(data) }
func (c *ConsoleSink) Flush() error                    { return nil }

// FileSink owns rotation, retention, and disk-space guardrails for a
// directory of log files. Rotation-by-size is delegated to
// lumberjack.Logger, which already implements the teacher's
// rename-on-rotate behavior as a battle-tested io.WriteCloser; the
// sink layers retention-by-age and disk-free-space cleanup on top,
// mirroring storage.go's cleanOldLogs/cleanExpiredLogs.
type FileSink struct {
	mu  sync.Mutex
	lj  *lumberjack.Logger
	cfg *Config

	state *state

	nextDiskCheckInterval time.Duration
	lastDiskCheckLogs     uint64
}

// NewFileSink constructs a FileSink rooted at cfg.Directory, rotating
// at cfg.MaxSizeMB. st is the owning Logger's state, used to record
// rotations/deletions/disk-status for Stats().
func NewFileSink(cfg *Config, st *state) (*FileSink, error) {
	if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("llog: failed to create log directory %s: %w", cfg.Directory, err)
	}
	lj := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Directory, cfg.Name+"."+cfg.Extension),
		MaxSize:    int(cfg.MaxSizeMB),
		MaxBackups: 0, // retention is handled by our own age/disk-space sweep, not a backup count
		Compress:   false,
	}
	return &FileSink{
		lj:                    lj,
		cfg:                   cfg,
		state:                 st,
		nextDiskCheckInterval: time.Duration(cfg.DiskCheckIntervalMs) * time.Millisecond,
	}, nil
}

func (f *FileSink) Write(data []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, err := f.lj.Write(data)
	if err != nil {
		return n, fmt.Errorf("llog: file write failed: %w", err)
	}
	return n, nil
}

func (f *FileSink) Flush() error {
	// lumberjack has no explicit Sync; the underlying *os.File is kept
	// open between writes so a Flush is a no-op beyond the OS's own
	// buffering. No explicit fsync is issued here or elsewhere;
	// EnablePeriodicSync is not consulted by the sink.
	return nil
}

// Rotate forces an immediate rotation and counts it in the rotations
// counter. Size-triggered rotations performed by lumberjack on its own
// are not counted.
func (f *FileSink) Rotate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.lj.Rotate(); err != nil {
		return fmt.Errorf("llog: rotation failed: %w", err)
	}
	f.state.rotations.Add(1)
	return nil
}

// Close releases the underlying file handle.
func (f *FileSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lj.Close()
}

// CheckDiskSpace runs the retention/disk-space guardrail sweep: delete
// log files older than cfg.RetentionPeriodHrs, then — if free space is
// still below cfg.MinDiskFreeMB or total log directory size exceeds
// cfg.MaxTotalSizeMB — delete oldest-first until both constraints are
// satisfied. Mirrors the teacher's performDiskCheck/cleanOldLogs.
func (f *FileSink) CheckDiskSpace() error {
	if f.cfg.RetentionPeriodHrs > 0 {
		cutoff := time.Now().Add(-time.Duration(f.cfg.RetentionPeriodHrs * float64(time.Hour)))
		if err := f.cleanExpiredLogs(cutoff); err != nil {
			return err
		}
	}

	free, err := diskFreeMB(f.cfg.Directory)
	if err != nil {
		f.state.diskStatusOK.Store(false)
		return fmt.Errorf("llog: disk space check failed: %w", err)
	}

	dirSize, err := logDirSizeMB(f.cfg.Directory)
	if err != nil {
		return fmt.Errorf("llog: failed to compute log directory size: %w", err)
	}

	ok := free >= f.cfg.MinDiskFreeMB
	f.state.diskStatusOK.Store(ok)

	if !ok || (f.cfg.MaxTotalSizeMB > 0 && dirSize > f.cfg.MaxTotalSizeMB) {
		required := f.cfg.MinDiskFreeMB - free
		if f.cfg.MaxTotalSizeMB > 0 && dirSize-f.cfg.MaxTotalSizeMB > required {
			required = dirSize - f.cfg.MaxTotalSizeMB
		}
		if required < 0 {
			required = 0
		}
		if err := f.cleanOldLogs(required); err != nil {
			return err
		}
	}
	return nil
}

// AdjustDiskCheckInterval retunes the disk-check polling period based
// on throughput observed since the last call, the way the teacher's
// adjustDiskCheckInterval speeds up checks under load and backs off
// when idle. processedSinceLast is the number of records the consumer
// drained since the previous disk check.
func (f *FileSink) AdjustDiskCheckInterval(processedSinceLast uint64, elapsed time.Duration) time.Duration {
	if !f.cfg.EnableAdaptiveInterval || elapsed <= 0 {
		return f.nextDiskCheckInterval
	}
	const (
		adaptiveIntervalFactor = 1.5
		adaptiveSpeedUpFactor  = 0.8
		targetLogsPerSec       = 100.0
	)
	rate := float64(processedSinceLast) / elapsed.Seconds()

	cur := f.nextDiskCheckInterval
	switch {
	case rate > targetLogsPerSec:
		cur = time.Duration(float64(cur) * adaptiveSpeedUpFactor)
	case rate < targetLogsPerSec/2:
		cur = time.Duration(float64(cur) * adaptiveIntervalFactor)
	}

	min := time.Duration(f.cfg.MinCheckIntervalMs) * time.Millisecond
	max := time.Duration(f.cfg.MaxCheckIntervalMs) * time.Millisecond
	if cur < min {
		cur = min
	}
	if cur > max {
		cur = max
	}
	f.nextDiskCheckInterval = cur
	return cur
}

func (f *FileSink) cleanExpiredLogs(cutoff time.Time) error {
	entries, err := f.archivedFiles()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.modTime.Before(cutoff) {
			if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("llog: failed to remove expired log %s: %w", e.path, err)
			}
			f.state.deletions.Add(1)
		}
	}
	return nil
}

func (f *FileSink) cleanOldLogs(requiredMB int64) error {
	entries, err := f.archivedFiles()
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].modTime.Before(entries[j].modTime) })

	var freedMB int64
	for _, e := range entries {
		if freedMB >= requiredMB {
			break
		}
		sizeMB := e.size / (1024 * 1024)
		if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("llog: failed to remove log %s: %w", e.path, err)
		}
		f.state.deletions.Add(1)
		freedMB += sizeMB
	}
	return nil
}

type logFileEntry struct {
	path    string
	modTime time.Time
	size    int64
}

// archivedFiles lists rotated log files in the sink's directory,
// excluding the currently active file lumberjack is writing to.
func (f *FileSink) archivedFiles() ([]logFileEntry, error) {
	dirEntries, err := os.ReadDir(f.cfg.Directory)
	if err != nil {
		return nil, fmt.Errorf("llog: failed to read log directory %s: %w", f.cfg.Directory, err)
	}
	activeName := f.cfg.Name + "." + f.cfg.Extension

	var out []logFileEntry
	for _, de := range dirEntries {
		if de.IsDir() || de.Name() == activeName {
			continue
		}
		if !strings.HasPrefix(de.Name(), f.cfg.Name) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		out = append(out, logFileEntry{
			path:    filepath.Join(f.cfg.Directory, de.Name()),
			modTime: info.ModTime(),
			size:    info.Size(),
		})
	}
	return out, nil
}

// diskFreeMB reports free space on the filesystem backing dir, via
// unix.Statfs — the same call the teacher's storage.go makes through
// raw syscall.Statfs_t, here via the typed x/sys/unix wrapper.
func diskFreeMB(dir string) (int64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, fmt.Errorf("statfs failed for %s: %w", dir, err)
	}
	return int64(st.Bavail) * int64(st.Bsize) / (1024 * 1024), nil
}

// logDirSizeMB sums the size of every regular file directly inside dir.
func logDirSizeMB(dir string) (int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read dir %s: %w", dir, err)
	}
	var total int64
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total / (1024 * 1024), nil
}
