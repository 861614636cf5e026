package llog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadCounterMonotonic(t *testing.T) {
	a := ReadCounter()
	time.Sleep(time.Millisecond)
	b := ReadCounter()
	assert.Greater(t, b, a)
}

func TestCounterToNanosRatioAtLeastOne(t *testing.T) {
	ticks := ReadCounter()
	nanos := CounterToNanos(ticks)
	// ReadCounter is itself nanosecond-scaled, so the calibrated
	// ticks-per-ns ratio floors at 1.0: CounterToNanos(ticks) never
	// reports more nanoseconds than the raw tick count, and stays within
	// a millisecond of it.
	assert.LessOrEqual(t, nanos, ticks)
	assert.GreaterOrEqual(t, nanos, ticks-uint64(time.Millisecond))
}

func TestCounterToNanosStableAcrossCalls(t *testing.T) {
	ticks := uint64(1_000_000)
	a := CounterToNanos(ticks)
	b := CounterToNanos(ticks)
	assert.Equal(t, a, b, "calibration happens once; repeated conversions of the same ticks must agree")
}

func TestEpochTimeFromCounterRoundTrips(t *testing.T) {
	before := time.Now()
	ticks := ReadCounter()
	got := epochTimeFromCounter(ticks)
	after := time.Now()

	assert.False(t, got.Before(before.Add(-time.Second)))
	assert.False(t, got.After(after.Add(time.Second)))
}
