package llog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.validate())
}

func TestConfigValidateRejectsBadFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "xml"
	assert.Error(t, cfg.validate())
}

func TestConfigValidateRejectsNonPowerOfTwoQueue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QueueCapacity = 100
	assert.Error(t, cfg.validate())
}

func TestConfigValidateRejectsEmptyName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Name = "   "
	assert.Error(t, cfg.validate())
}

func TestConfigValidateRejectsInvertedCheckIntervals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinCheckIntervalMs = 5000
	cfg.MaxCheckIntervalMs = 1000
	assert.Error(t, cfg.validate())
}

func TestConfigValidateRejectsHeartbeatWithoutInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HeartbeatLevel = 1
	cfg.HeartbeatIntervalS = 0
	assert.Error(t, cfg.validate())
}

func TestConfigCloneIsIndependent(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Name = "changed"
	assert.NotEqual(t, cfg.Name, clone.Name)
}

func TestNewConfigFromDefaultsAppliesOverrides(t *testing.T) {
	cfg, err := NewConfigFromDefaults(map[string]any{
		"name":           "override-test",
		"level":          LevelDebug,
		"queue_capacity": uint64(128),
	})
	require.NoError(t, err)
	assert.Equal(t, "override-test", cfg.Name)
	assert.Equal(t, LevelDebug, cfg.Level)
	assert.Equal(t, uint64(128), cfg.QueueCapacity)
}

func TestNewConfigFromDefaultsRejectsInvalidResult(t *testing.T) {
	_, err := NewConfigFromDefaults(map[string]any{
		"format": "not-a-real-format",
	})
	assert.Error(t, err)
}

func TestSaveAndLoadConfigTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.toml")

	cfg := DefaultConfig()
	cfg.Name = "roundtrip"
	cfg.Level = LevelWarn
	require.NoError(t, cfg.SaveConfig(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := NewConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "roundtrip", loaded.Name)
	assert.Equal(t, LevelWarn, loaded.Level)
}

func TestNewConfigFromFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	content := "name: yaml-test\nlevel: 3\ndirectory: " + dir + "\n" +
		"format: txt\nextension: log\nqueue_capacity: 64\nspin_count: 10\n" +
		"timestamp_format: \"2006-01-02\"\nstdout_target: stdout\n" +
		"flush_interval_ms: 50\ndisk_check_interval_ms: 1000\n" +
		"min_check_interval_ms: 100\nmax_check_interval_ms: 5000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml-test", cfg.Name)
	assert.Equal(t, LevelWarn, cfg.Level)
}

func TestNewConfigFromFileMissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewConfigFromFile(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig.Name, cfg.Name)
}
