// FILE: logger.go
package llog

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/config"
	"github.com/moradiya84/low-latency-logger/formatter"
)

// LogResult tells a producer what happened to its record: it was
// accepted onto the queue, dropped because the queue was full, or not
// enqueued at all (LogDisabled) because the logger is disabled, not
// started, or the level is below the configured minimum. Producers that don't care can discard the result entirely —
// Log never blocks and never panics on a full queue.
type LogResult int8

const (
	LogAccepted LogResult = iota
	LogDropped
	LogDisabled
)

// Logger is one independent logging pipeline: a single producer-side
// façade over a bounded SPSC queue, a single consumer goroutine
// draining it, and a Sink receiving the formatted output. Multiple
// Loggers may run in the same process; each owns its own queue, its
// own file handle, and its own goroutine.
type Logger struct {
	config atomic.Pointer[Config]
	state  *state

	queue *queue
	sink  Sink
	fmt   *formatter.Formatter
	fmtMu sync.Mutex // guards fmt, which is not safe for concurrent FormatRecord calls

	consumerDone chan struct{}
	initMu       sync.Mutex
}

// NewLogger constructs an unstarted Logger with default configuration.
// Call ApplyConfig (optional) and Start before logging.
func NewLogger() *Logger {
	l := &Logger{state: newState()}
	l.config.Store(DefaultConfig())
	l.fmt = formatter.New()
	return l
}

// GetConfig returns the Logger's current configuration snapshot. The
// returned pointer must be treated as read-only; callers that want to
// change configuration should call Clone and then ApplyConfig.
func (l *Logger) GetConfig() *Config {
	return l.config.Load()
}

// ApplyConfig validates cfg and swaps it in atomically. The formatter
// is always rebuilt from cfg; if the logger is running and
// sink-affecting fields changed (see sinkNeedsRebuild), the sink is
// rebuilt too; the queue itself is never resized or replaced while
// running (spec's accepted "queue never resized" contract) — a
// QueueCapacity change only takes effect on the next Start.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	cfg = cfg.Clone()

	l.initMu.Lock()
	defer l.initMu.Unlock()

	old := l.config.Load()
	l.config.Store(cfg)

	l.fmtMu.Lock()
	l.fmt = formatter.New().
		Type(cfg.Format).
		TimestampFormat(cfg.TimestampFormat).
		ShowTimestamp(true).
		ShowLevel(true).
		ShowThreadID(cfg.EnableThreadID).
		ShowSource(cfg.EnableSourceLocation)
	l.fmtMu.Unlock()

	if l.state.started.Load() && sinkNeedsRebuild(old, cfg) {
		sink, err := l.buildSink(cfg)
		if err != nil {
			return err
		}
		if closer, ok := l.sink.(*FileSink); ok {
			closer.Close()
		}
		l.sink = sink
	}
	return nil
}

func sinkNeedsRebuild(old, cfg *Config) bool {
	return old.Directory != cfg.Directory ||
		old.Name != cfg.Name ||
		old.Extension != cfg.Extension ||
		old.DisableFile != cfg.DisableFile ||
		old.EnableStdout != cfg.EnableStdout ||
		old.StdoutTarget != cfg.StdoutTarget ||
		old.MaxSizeMB != cfg.MaxSizeMB ||
		old.MaxTotalSizeMB != cfg.MaxTotalSizeMB ||
		old.MinDiskFreeMB != cfg.MinDiskFreeMB ||
		old.RetentionPeriodHrs != cfg.RetentionPeriodHrs ||
		old.DiskCheckIntervalMs != cfg.DiskCheckIntervalMs ||
		old.EnableAdaptiveInterval != cfg.EnableAdaptiveInterval ||
		old.MinCheckIntervalMs != cfg.MinCheckIntervalMs ||
		old.MaxCheckIntervalMs != cfg.MaxCheckIntervalMs
}

// ApplyConfigString loads a Config from a TOML or YAML file and
// applies it, for callers that keep configuration on disk.
func (l *Logger) ApplyConfigString(path string) error {
	cfg, err := NewConfigFromFile(path)
	if err != nil {
		return err
	}
	return l.ApplyConfig(cfg)
}

func (l *Logger) buildSink(cfg *Config) (Sink, error) {
	if cfg.EnableStdout && cfg.DisableFile {
		return NewConsoleSink(cfg.StdoutTarget), nil
	}
	if cfg.DisableFile {
		return DiscardSink{}, nil
	}
	fileSink, err := NewFileSink(cfg, l.state)
	if err != nil {
		return nil, err
	}
	if cfg.EnableStdout {
		return &teeSink{primary: fileSink, secondary: NewConsoleSink(cfg.StdoutTarget)}, nil
	}
	return fileSink, nil
}

// teeSink duplicates every write to two sinks, used when file output
// and console echo are both enabled.
type teeSink struct {
	primary   Sink
	secondary Sink
}

func (t *teeSink) Write(data []byte) (int, error) {
	n, err := t.primary.Write(data)
	t.secondary.Write(data)
	return n, err
}

func (t *teeSink) Flush() error {
	if err := t.primary.Flush(); err != nil {
		return err
	}
	return t.secondary.Flush()
}

// Start allocates the queue and sink, then launches the consumer
// goroutine. Calling Start on an already-started Logger is a no-op
// that returns nil.
func (l *Logger) Start() error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	if l.state.started.Load() {
		return nil
	}

	cfg := l.config.Load()
	sink, err := l.buildSink(cfg)
	if err != nil {
		return err
	}
	l.sink = sink
	l.queue = newQueue(cfg.QueueCapacity)
	l.state.exited.Store(false)
	l.state.started.Store(true)
	l.consumerDone = make(chan struct{})

	go l.runConsumer(l.queue, l.consumerDone)
	return nil
}

// Stop signals the consumer to drain and exit, waiting up to timeout
// (default 5s) for it to finish. The consumer writes every record
// still on the queue before it exits; if it does not exit within the
// timeout, Stop returns an error and records still queued at that
// point are not guaranteed to be written.
func (l *Logger) Stop(timeout ...time.Duration) error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	if !l.state.started.Load() {
		return nil
	}
	wait := 5 * time.Second
	if len(timeout) > 0 {
		wait = timeout[0]
	}

	l.state.started.Store(false)
	select {
	case <-l.consumerDone:
	case <-time.After(wait):
		return fmt.Errorf("llog: consumer did not exit within %s", wait)
	}
	if fs, ok := l.sink.(*FileSink); ok {
		fs.Close()
	}
	return nil
}

// Shutdown stops the logger (if running) and marks it permanently
// disabled: subsequent Log calls become no-ops.
func (l *Logger) Shutdown(timeout ...time.Duration) error {
	err := l.Stop(timeout...)
	l.state.disabled.Store(true)
	return err
}

// Flush blocks until every record currently on the queue has been
// consumed and handed to the sink's Flush, or timeout elapses.
func (l *Logger) Flush(timeout time.Duration) error {
	if !l.state.started.Load() {
		return nil
	}
	l.state.flushMu.Lock()
	defer l.state.flushMu.Unlock()

	ack := make(chan struct{})
	select {
	case l.state.flushRequest <- ack:
	default:
		return fmt.Errorf("llog: flush already in progress")
	}
	select {
	case <-ack:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("llog: flush timed out after %s", timeout)
	}
}

// Log is the producer façade: it builds a Record from the given
// level/message/args, stamps it with the monotonic counter and
// goroutine id, and attempts a single non-blocking tryPush. On a full
// queue it increments the shared drop counter and returns
// immediately — Log never blocks the caller.
func (l *Logger) Log(level Level, message string, args ...any) LogResult {
	if l.state.disabled.Load() || !l.state.started.Load() {
		return LogDisabled
	}
	cfg := l.config.Load()
	if level < cfg.Level && !level.isHeartbeat() {
		return LogDisabled
	}

	var rec Record
	rec.Timestamp = ReadCounter()
	rec.Level = level
	if cfg.EnableThreadID {
		rec.ThreadID = goroutineID()
	}
	if len(args) > 0 {
		rec.FormatMessage(message, args...)
	} else {
		rec.SetMessageString(message)
	}
	if cfg.EnableSourceLocation {
		if pc, file, line, ok := runtime.Caller(1); ok {
			fn := ""
			if f := runtime.FuncForPC(pc); f != nil {
				fn = f.Name()
			}
			rec.SetSourceLocation(file, line, fn)
		}
	}

	if !l.queue.tryPush(&rec) {
		reportDrop(cfg.InternalErrorsToStderr)
		l.state.droppedInterval.Add(1)
		return LogDropped
	}
	return LogAccepted
}

// InitWithDefaults applies a batch of "key=value" overrides on top of
// the built-in defaults and starts the logger. Convenient for callers
// that reconfigure the same instance repeatedly (e.g. hot-reload).
func (l *Logger) InitWithDefaults(overrides ...string) error {
	cfg := DefaultConfig()
	if err := l.ApplyConfig(cfg); err != nil {
		return err
	}
	if len(overrides) > 0 {
		if err := l.ApplyOverride(overrides...); err != nil {
			return err
		}
	}
	return l.Start()
}

// Init loads configuration from an already-populated external loader
// (lixenwraith/config) at basePath, applies it, and starts the
// logger — the instance-level counterpart to NewConfigFromFile, for
// callers that manage one shared config.Config across several
// subsystems and only want to hand llog its slice of it.
func (l *Logger) Init(loader *config.Config, basePath string) error {
	cfg := DefaultConfig()
	if err := loader.RegisterStruct(basePath+".", *cfg); err != nil {
		return fmtErrorf("failed to register config struct: %w", err)
	}
	if err := extractConfig(loader, basePath+".", cfg); err != nil {
		return fmtErrorf("failed to extract config values: %w", err)
	}
	if err := l.ApplyConfig(cfg); err != nil {
		return err
	}
	return l.Start()
}

func (l *Logger) Trace(message string, args ...any) LogResult { return l.Log(LevelTrace, message, args...) }
func (l *Logger) Debug(message string, args ...any) LogResult { return l.Log(LevelDebug, message, args...) }
func (l *Logger) Info(message string, args ...any) LogResult  { return l.Log(LevelInfo, message, args...) }
func (l *Logger) Warn(message string, args ...any) LogResult  { return l.Log(LevelWarn, message, args...) }
func (l *Logger) Error(message string, args ...any) LogResult { return l.Log(LevelError, message, args...) }
func (l *Logger) Fatal(message string, args ...any) LogResult { return l.Log(LevelFatal, message, args...) }
