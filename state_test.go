package llog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateDefaults(t *testing.T) {
	s := newState()
	assert.False(t, s.started.Load())
	assert.True(t, s.exited.Load())
	assert.False(t, s.disabled.Load())
	assert.True(t, s.diskStatusOK.Load())
	assert.NotNil(t, s.flushRequest)
}

func TestStatsSnapshot(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	logger.Info("one")
	logger.Info("two")
	time.Sleep(50 * time.Millisecond)

	stats := logger.Stats()
	assert.GreaterOrEqual(t, stats.Processed, uint64(2))
	assert.True(t, stats.DiskStatusOK)
	assert.Greater(t, stats.Uptime, time.Duration(0))
}

func TestStatsDroppedTotalIsProcessWide(t *testing.T) {
	before := totalDropped.Load()

	logger := NewLogger()
	cfg := DefaultConfig()
	cfg.QueueCapacity = 2 // usable capacity of 1 forces drops quickly
	cfg.Directory = t.TempDir()
	require.NoError(t, logger.ApplyConfig(cfg))
	require.NoError(t, logger.Start())
	defer logger.Shutdown()

	for i := 0; i < 50; i++ {
		logger.Info("flood")
	}

	stats := logger.Stats()
	assert.GreaterOrEqual(t, stats.DroppedTotal, before)
}
