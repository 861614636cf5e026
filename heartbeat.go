// FILE: heartbeat.go
package llog

import (
	"fmt"
	"runtime"
)

// emitHeartbeats builds the Proc/Disk/Sys heartbeat tiers, each its
// own Record with a heartbeat pseudo-level, and hands them straight to
// logHeartbeatRecord. It runs on the consumer goroutine, so it formats
// and sinks each tier directly rather than going through the
// producer-only queue.
func (l *Logger) emitHeartbeats(cfg *Config) {
	seq := l.state.heartbeatSequence.Add(1)

	l.logHeartbeatRecord(LevelProc, fmt.Sprintf(
		"seq=%d processed=%d dropped_total=%d dropped_interval=%d",
		seq, l.state.processed.Load(), totalDropped.Load(), l.state.droppedInterval.Swap(0)))

	if cfg.HeartbeatLevel >= 2 {
		fs, ok := l.sink.(*FileSink)
		dirSize := int64(0)
		free := int64(0)
		if ok {
			dirSize, _ = logDirSizeMB(fs.cfg.Directory)
			free, _ = diskFreeMB(fs.cfg.Directory)
		}
		l.logHeartbeatRecord(LevelDisk, fmt.Sprintf(
			"seq=%d rotations=%d deletions=%d dir_size_mb=%d free_mb=%d disk_ok=%v",
			seq, l.state.rotations.Load(), l.state.deletions.Load(), dirSize, free, l.state.diskStatusOK.Load()))
	}

	if cfg.HeartbeatLevel >= 3 {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		l.logHeartbeatRecord(LevelSys, fmt.Sprintf(
			"seq=%d goroutines=%d heap_alloc_mb=%d heap_sys_mb=%d num_gc=%d",
			seq, runtime.NumGoroutine(), m.HeapAlloc/(1024*1024), m.HeapSys/(1024*1024), m.NumGC))
	}
}

// logHeartbeatRecord formats and sinks a heartbeat record directly,
// the same way consumeOne handles a drained application record. It
// does not go through queue.tryPush: emitHeartbeats runs on the
// consumer goroutine itself, and the SPSC queue's correctness depends
// on tryPush having exactly one caller (the application producer
// thread, via Log) for the queue's entire lifetime — pushing from the
// consumer goroutine too would make it a second, concurrent producer.
// Formatting inline here keeps heartbeats serialized for free (they
// already run on the sole consumer goroutine) without ever touching
// the producer-only path.
func (l *Logger) logHeartbeatRecord(level Level, message string) {
	var rec Record
	rec.Timestamp = ReadCounter()
	rec.Level = level
	rec.SetMessageString(message)
	l.consumeOne(&rec)
}
