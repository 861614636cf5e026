package llog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoggerHeartbeat verifies that all three heartbeat tiers reach
// the sink when HeartbeatLevel is set to its highest value.
func TestLoggerHeartbeat(t *testing.T) {
	logger, tmpDir := createTestLogger(t)
	defer logger.Shutdown()

	cfg := logger.GetConfig().Clone()
	cfg.HeartbeatLevel = 3
	cfg.HeartbeatIntervalS = 1
	require.NoError(t, logger.ApplyConfig(cfg))

	time.Sleep(1500 * time.Millisecond)
	require.NoError(t, logger.Flush(time.Second))

	content, err := os.ReadFile(filepath.Join(tmpDir, cfg.Name+"."+cfg.Extension))
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "PROC")
	assert.Contains(t, text, "DISK")
	assert.Contains(t, text, "SYS")
	assert.Contains(t, text, "dropped_total")
	assert.Contains(t, text, "goroutines")
}

// TestDroppedLogsSurfaceInHeartbeat confirms a flooded, tiny queue
// produces drops that the next proc heartbeat reports.
func TestDroppedLogsSurfaceInHeartbeat(t *testing.T) {
	logger := NewLogger()
	cfg := DefaultConfig()
	cfg.Directory = t.TempDir()
	cfg.Name = "drop-heartbeat"
	cfg.QueueCapacity = 2
	cfg.SpinCount = 1
	cfg.FlushIntervalMs = 10
	cfg.HeartbeatLevel = 1
	cfg.HeartbeatIntervalS = 1
	require.NoError(t, logger.ApplyConfig(cfg))
	require.NoError(t, logger.Start())
	defer logger.Shutdown()

	for i := 0; i < 200; i++ {
		logger.Info("flood", i)
	}

	time.Sleep(1500 * time.Millisecond)
	require.NoError(t, logger.Flush(time.Second))

	content, err := os.ReadFile(filepath.Join(cfg.Directory, "drop-heartbeat.log"))
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "PROC")
	assert.Contains(t, text, "dropped_interval=")
}

// TestAdaptiveDiskCheckDoesNotPanicUnderVaryingLoad exercises the
// adaptive disk-check retune path through a real running consumer,
// varying throughput between iterations.
func TestAdaptiveDiskCheckDoesNotPanicUnderVaryingLoad(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	cfg := logger.GetConfig().Clone()
	cfg.EnableAdaptiveInterval = true
	cfg.DiskCheckIntervalMs = 50
	cfg.MinCheckIntervalMs = 20
	cfg.MaxCheckIntervalMs = 500
	require.NoError(t, logger.ApplyConfig(cfg))

	for i := 0; i < 10; i++ {
		logger.Info("adaptive", i)
		time.Sleep(5 * time.Millisecond)
	}
	for i := 0; i < 200; i++ {
		logger.Info("burst", i)
	}

	require.NoError(t, logger.Flush(time.Second))
}
