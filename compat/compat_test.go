package compat

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moradiya84/low-latency-logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestCompatBuilder creates a standard setup for compatibility
// adapter tests.
func createTestCompatBuilder(t *testing.T) (*Builder, *llog.Logger, string) {
	t.Helper()
	tmpDir := t.TempDir()
	appLogger, err := llog.NewBuilder().
		Directory(tmpDir).
		Format("json").
		LevelString("debug").
		DisableFile(false).
		Build()
	require.NoError(t, err)

	require.NoError(t, appLogger.Start())

	builder := NewBuilder().WithLogger(appLogger)
	return builder, appLogger, tmpDir
}

// readLogFile reads a log file, retrying briefly to await async writes.
func readLogFile(t *testing.T, dir string, expectedLines int) []string {
	t.Helper()
	var err error

	for i := 0; i < 20; i++ {
		var files []os.DirEntry
		files, err = os.ReadDir(dir)
		if err == nil && len(files) > 0 {
			var logFile *os.File
			logFilePath := filepath.Join(dir, files[0].Name())
			logFile, err = os.Open(logFilePath)
			if err == nil {
				scanner := bufio.NewScanner(logFile)
				var readLines []string
				for scanner.Scan() {
					readLines = append(readLines, scanner.Text())
				}
				logFile.Close()
				if len(readLines) >= expectedLines {
					return readLines
				}
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Failed to read %d log lines from directory %s. Last error: %v", expectedLines, dir, err)
	return nil
}

func TestCompatBuilder(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		builder, logger, _ := createTestCompatBuilder(t)
		defer logger.Shutdown()

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.NotNil(t, gnetAdapter)
		assert.Equal(t, logger, gnetAdapter.logger)
	})

	t.Run("with config", func(t *testing.T) {
		logCfg := llog.DefaultConfig()
		logCfg.Directory = t.TempDir()

		builder := NewBuilder().WithConfig(logCfg)
		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)
		assert.NotNil(t, fasthttpAdapter)

		logger1, _ := builder.GetLogger()
		defer logger1.Shutdown()
	})
}

func TestGnetAdapter(t *testing.T) {
	builder, logger, tmpDir := createTestCompatBuilder(t)
	defer logger.Shutdown()

	var fatalCalled bool
	adapter, err := builder.BuildGnet(WithFatalHandler(func(msg string) {
		fatalCalled = true
	}))
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	adapter.Fatalf("gnet fatal id=%d", 5)

	require.NoError(t, logger.Flush(time.Second))

	lines := readLogFile(t, tmpDir, 5)
	require.Len(t, lines, 5, "Should have 5 gnet log lines")

	expected := []struct{ level, msg string }{
		{"DBG", "[gnet] gnet debug id=1"},
		{"INF", "[gnet] gnet info id=2"},
		{"WRN", "[gnet] gnet warn id=3"},
		{"ERR", "[gnet] gnet error id=4"},
		{"ERR", "[gnet] FATAL gnet fatal id=5"},
	}

	for i, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		assert.Equal(t, expected[i].level, entry["level"])
		assert.Equal(t, expected[i].msg, entry["message"])
	}
	assert.True(t, fatalCalled, "Custom fatal handler should have been called")
}

func TestFastHTTPAdapter(t *testing.T) {
	builder, logger, tmpDir := createTestCompatBuilder(t)
	defer logger.Shutdown()

	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	testMessages := []string{
		"this is some informational message",
		"a debug message for the developers",
		"warning: something might be wrong",
		"an error occurred while processing",
	}
	for _, msg := range testMessages {
		adapter.Printf("%s", msg)
	}

	require.NoError(t, logger.Flush(time.Second))

	lines := readLogFile(t, tmpDir, 4)
	expectedLevels := []string{"INF", "DBG", "WRN", "ERR"}
	require.Len(t, lines, 4, "Should have 4 fasthttp log lines")

	for i, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		assert.Equal(t, expectedLevels[i], entry["level"])
		assert.Equal(t, "[fasthttp] "+testMessages[i], entry["message"])
	}
}

func TestFiberAdapter(t *testing.T) {
	builder, logger, tmpDir := createTestCompatBuilder(t)
	defer logger.Shutdown()

	var fatalCalled, panicCalled bool
	adapter, err := builder.BuildFiber(
		WithFiberFatalHandler(func(msg string) { fatalCalled = true }),
		WithFiberPanicHandler(func(msg string) { panicCalled = true }),
	)
	require.NoError(t, err)

	adapter.Tracef("fiber trace id=%d", 1)
	adapter.Debugf("fiber debug id=%d", 2)
	adapter.Infof("fiber info id=%d", 3)
	adapter.Warnf("fiber warn id=%d", 4)
	adapter.Errorf("fiber error id=%d", 5)
	adapter.Fatalf("fiber fatal id=%d", 6)
	adapter.Panicf("fiber panic id=%d", 7)

	require.NoError(t, logger.Flush(time.Second))

	lines := readLogFile(t, tmpDir, 7)
	require.Len(t, lines, 7, "Should have 7 fiber log lines")

	expected := []struct{ level, msg string }{
		{"DBG", "[fiber] fiber trace id=1"},
		{"DBG", "[fiber] fiber debug id=2"},
		{"INF", "[fiber] fiber info id=3"},
		{"WRN", "[fiber] fiber warn id=4"},
		{"ERR", "[fiber] fiber error id=5"},
		{"ERR", "[fiber] FATAL fiber fatal id=6"},
		{"ERR", "[fiber] PANIC fiber panic id=7"},
	}

	for i, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		assert.Equal(t, expected[i].level, entry["level"])
		assert.Equal(t, expected[i].msg, entry["message"])
	}
	assert.True(t, fatalCalled, "Custom fatal handler should have been called")
	assert.True(t, panicCalled, "Custom panic handler should have been called")
}

func TestFiberAdapterStructuredLogging(t *testing.T) {
	builder, logger, tmpDir := createTestCompatBuilder(t)
	defer logger.Shutdown()

	adapter, err := builder.BuildFiber()
	require.NoError(t, err)

	adapter.Infow("request served", "status", 200, "client_ip", "127.0.0.1")
	adapter.Debugw("query executed", "duration_ms", 42)

	require.NoError(t, logger.Flush(time.Second))

	lines := readLogFile(t, tmpDir, 2)
	require.Len(t, lines, 2, "Should have 2 fiber structured log lines")

	var entry1 map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry1))
	assert.Equal(t, "INF", entry1["level"])
	assert.Equal(t, "[fiber] request served status=200 client_ip=127.0.0.1", entry1["message"])

	var entry2 map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry2))
	assert.Equal(t, "DBG", entry2["level"])
	assert.Equal(t, "[fiber] query executed duration_ms=42", entry2["message"])
}

func TestFiberBuilderIntegration(t *testing.T) {
	builder, logger, _ := createTestCompatBuilder(t)
	defer logger.Shutdown()

	fiberAdapter, err := builder.BuildFiber()
	require.NoError(t, err)
	assert.NotNil(t, fiberAdapter)
	assert.Equal(t, logger, fiberAdapter.logger)
}
