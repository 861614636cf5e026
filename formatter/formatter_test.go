package formatter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/moradiya84/low-latency-logger/sanitizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("txt format", func(t *testing.T) {
		s := sanitizer.New().Policy(sanitizer.PolicyRaw)
		f := New(s).Type("txt").TimestampFormat(time.RFC3339).ShowTimestamp(true).ShowLevel(true)

		rec := &Record{TimestampNs: 1704110400000000000, Level: "INF", Message: []byte("test message 123")}
		n := f.FormatRecord(rec, nil)
		str := string(f.Bytes()[:n])

		assert.Contains(t, str, "[1704110400000000000]")
		assert.Contains(t, str, "[INF]")
		assert.Contains(t, str, "test message 123")
		assert.True(t, strings.HasSuffix(str, "\n"))
	})

	t.Run("txt format renders the canonical bracketed layout", func(t *testing.T) {
		// spec scenario S4: timestamp=0, level=INFO, tid=42,
		// file="file.cc", line=7, function="func", message="hello"
		s := sanitizer.New().Policy(sanitizer.PolicyRaw)
		f := New(s).Type("txt").ShowTimestamp(true).ShowLevel(true).ShowThreadID(true).ShowSource(true)

		rec := &Record{
			TimestampNs: 0,
			ThreadID:    42,
			Level:       "INFO",
			File:        "file.cc",
			Line:        7,
			Function:    "func",
			Message:     []byte("hello"),
		}
		n := f.FormatRecord(rec, nil)
		str := string(f.Bytes()[:n])

		assert.Equal(t, "[0] [INFO] [tid=42] file.cc:7 func hello\n", str)
	})

	t.Run("json format", func(t *testing.T) {
		s := sanitizer.New().Policy(sanitizer.PolicyJSON)
		f := New(s).Type("json").TimestampFormat(time.RFC3339).ShowTimestamp(true).ShowLevel(true)

		rec := &Record{Timestamp: timestamp, Level: "WRN", Message: []byte("warning true")}
		n := f.FormatRecord(rec, nil)

		var result map[string]any
		require.NoError(t, json.Unmarshal(f.Bytes()[:n-1], &result))

		assert.Equal(t, "WRN", result["level"])
		assert.Equal(t, "warning true", result["message"])
	})

	t.Run("raw format", func(t *testing.T) {
		f := New().Type("raw")

		rec := &Record{Message: []byte("raw data 42")}
		n := f.FormatRecord(rec, nil)
		str := string(f.Bytes()[:n])

		assert.Equal(t, "raw data 42\n", str)
	})

	t.Run("source location fields", func(t *testing.T) {
		s := sanitizer.New().Policy(sanitizer.PolicyRaw)
		f := New(s).Type("txt").ShowTimestamp(false).ShowLevel(false).ShowSource(true)

		rec := &Record{File: "worker.go", Line: 42, Function: "run", Message: []byte("hello")}
		n := f.FormatRecord(rec, nil)
		str := string(f.Bytes()[:n])

		assert.Contains(t, str, "worker.go:42")
		assert.Contains(t, str, "run")
		assert.Contains(t, str, "hello")
	})

	t.Run("thread id field", func(t *testing.T) {
		f := New().Type("txt").ShowTimestamp(false).ShowLevel(false).ShowThreadID(true)

		rec := &Record{ThreadID: 7, Message: []byte("hi")}
		n := f.FormatRecord(rec, nil)
		str := string(f.Bytes()[:n])

		assert.Contains(t, str, "[tid=7]")
	})

	t.Run("special characters escaping", func(t *testing.T) {
		s := sanitizer.New().Policy(sanitizer.PolicyJSON)
		f := New(s).Type("json")

		rec := &Record{Message: []byte("test\n\r\t\"\\message")}
		n := f.FormatRecord(rec, nil)
		str := string(f.Bytes()[:n])

		assert.Contains(t, str, `test\n\r\t\"\\message`)
	})
}
