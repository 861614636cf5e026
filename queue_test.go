package llog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueTryPushPop(t *testing.T) {
	q := newQueue(4)

	var rec Record
	rec.SetMessageString("hello")
	require.True(t, q.tryPush(&rec))

	var out Record
	require.True(t, q.tryPop(&out))
	assert.Equal(t, "hello", out.MessageString())
}

func TestQueueFullness(t *testing.T) {
	q := newQueue(4) // usable capacity is 3

	var rec Record
	assert.True(t, q.tryPush(&rec))
	assert.True(t, q.tryPush(&rec))
	assert.True(t, q.tryPush(&rec))
	assert.True(t, q.full())
	assert.False(t, q.tryPush(&rec), "fourth push must be rejected on a one-slot-reserved queue")
}

func TestQueueEmptyPop(t *testing.T) {
	q := newQueue(2)
	var out Record
	assert.False(t, q.tryPop(&out))
	assert.True(t, q.empty())
}

func TestQueueSize(t *testing.T) {
	q := newQueue(8)
	var rec Record
	for i := 0; i < 3; i++ {
		require.True(t, q.tryPush(&rec))
	}
	assert.Equal(t, uint64(3), q.size())

	var out Record
	require.True(t, q.tryPop(&out))
	assert.Equal(t, uint64(2), q.size())
}

func TestQueueCapacityMustBePowerOfTwo(t *testing.T) {
	assert.Panics(t, func() { newQueue(3) })
	assert.Panics(t, func() { newQueue(1) })
	assert.NotPanics(t, func() { newQueue(2) })
}

// TestQueueSPSCOrdering exercises the single-producer/single-consumer
// contract with real concurrent goroutines and asserts FIFO ordering
// survives.
func TestQueueSPSCOrdering(t *testing.T) {
	q := newQueue(1024)
	const n = 5000

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			var rec Record
			rec.Timestamp = uint64(i)
			for !q.tryPush(&rec) {
				// spin until the consumer drains
			}
		}
	}()

	go func() {
		defer wg.Done()
		var out Record
		for i := 0; i < n; i++ {
			for !q.tryPop(&out) {
				// spin until the producer publishes
			}
			if out.Timestamp != uint64(i) {
				t.Errorf("out-of-order record: want %d, got %d", i, out.Timestamp)
				return
			}
		}
	}()

	wg.Wait()
}
