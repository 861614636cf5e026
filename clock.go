// FILE: clock.go
package llog

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// ReadCounter returns a monotonic counter reading, captured on the
// producer side of every Log call. The pack carries no portable Go
// idiom for reading a hardware time-stamp counter without assembly
// (see DESIGN.md), so this implementation takes the spec's explicitly
// sanctioned fallback for every architecture: a steady monotonic
// clock, expressed directly in nanoseconds since process start. That
// makes ReadCounter's own ticks already nanosecond-scaled, which
// CounterToNanos's calibration (below) correctly discovers as a
// ticks-per-ns ratio of 1.0 rather than needing it hardcoded.
//
// Guarantees preserved: monotonic within a single calling goroutine
// (Go's runtime-internal monotonic clock reading, which time.Since
// is built on, never runs backward); no cross-core synchronization
// guarantee is claimed or needed, matching the core's accepted
// cross-core inversion behavior.
func ReadCounter() uint64 {
	return uint64(time.Since(processEpoch))
}

// processEpoch anchors ReadCounter's nanosecond counter to process
// start. time.Since(processEpoch) reads the runtime's monotonic clock
// internally; it never allocates and never makes a system call on any
// platform Go supports.
var processEpoch = time.Now()

var (
	calibrateOnce sync.Once
	ticksPerNanos atomic.Uint64 // stored as math.Float64bits
)

// CounterToNanos converts a raw ReadCounter reading to nanoseconds.
// Calibration happens lazily, once per process, the first time any
// goroutine calls CounterToNanos: sample the counter and a steady
// clock, busy-wait at least ~1ms of steady time, sample both again,
// and derive ticks_per_ns as counter_delta/ns_delta with a floor of
// 1.0. Concurrent callers during the calibration window all block on
// the same sync.Once; every observer after calibration completes sees
// the identical constant for the remaining lifetime of the process.
func CounterToNanos(ticks uint64) uint64 {
	calibrateOnce.Do(calibrate)
	ratio := math.Float64frombits(ticksPerNanos.Load())
	return uint64(float64(ticks) / ratio)
}

func calibrate() {
	const minCalibration = time.Millisecond

	startTicks := ReadCounter()
	startSteady := time.Now()

	for time.Since(startSteady) < minCalibration {
		// busy-wait; this runs exactly once per process
	}

	endTicks := ReadCounter()
	endSteady := time.Now()

	tickDelta := float64(endTicks - startTicks)
	nsDelta := float64(endSteady.Sub(startSteady))

	ratio := 1.0
	if nsDelta > 0 {
		ratio = tickDelta / nsDelta
	}
	if ratio < 1.0 {
		ratio = 1.0
	}

	ticksPerNanos.Store(math.Float64bits(ratio))
}
