// FILE: state.go
package llog

import (
	"sync"
	"sync/atomic"
	"time"
)

// state holds the runtime counters and lifecycle flags for one Logger
// instance. Every field here is either atomic or guarded by an
// explicit mutex; the hot path (Log) reads only the disabled and run
// flags, bumps droppedInterval on a drop, and bumps the process-wide
// drop counter in diagnostics.go.
type state struct {
	started  atomic.Bool // run flag; stored by Start/Stop under Logger.initMu, read by Log and the consumer
	exited   atomic.Bool // consumer goroutine has returned
	disabled atomic.Bool // set by Shutdown; Log is a no-op once set

	startTime time.Time

	processed         atomic.Uint64
	droppedTotal      atomic.Uint64
	droppedInterval   atomic.Uint64 // reset on each proc heartbeat
	rotations         atomic.Uint64
	deletions         atomic.Uint64
	heartbeatSequence atomic.Uint64

	diskStatusOK atomic.Bool

	flushMu      sync.Mutex
	flushRequest chan chan struct{}
}

func newState() *state {
	s := &state{startTime: time.Now()}
	s.exited.Store(true)
	s.diskStatusOK.Store(true)
	s.flushRequest = make(chan chan struct{}, 1)
	return s
}

// Stats is the read-only snapshot exposed to callers via Logger.Stats.
type Stats struct {
	Processed       uint64
	DroppedTotal    uint64
	DroppedInterval uint64
	Rotations       uint64
	Deletions       uint64
	DiskStatusOK    bool
	Uptime          time.Duration
}

func (l *Logger) Stats() Stats {
	return Stats{
		Processed:       l.state.processed.Load(),
		DroppedTotal:    totalDropped.Load(),
		DroppedInterval: l.state.droppedInterval.Load(),
		Rotations:       l.state.rotations.Load(),
		Deletions:       l.state.deletions.Load(),
		DiskStatusOK:    l.state.diskStatusOK.Load(),
		Uptime:          time.Since(l.state.startTime),
	}
}
