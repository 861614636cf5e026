// FILE: compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"
	"sync"

	"github.com/moradiya84/low-latency-logger"
)

// FastHTTPAdapter wraps a llog.Logger to implement fasthttp's Logger
// interface (a bare Printf). fasthttp's server logs from connection-
// handling goroutines that run concurrently, so this adapter
// serializes every call through mu — the core queue accepts exactly
// one producer goroutine for its lifetime, and this is the external
// serialisation shim that contract requires of multi-goroutine callers.
type FastHTTPAdapter struct {
	mu            sync.Mutex
	logger        *llog.Logger
	defaultLevel  llog.Level
	levelDetector func(string) llog.Level
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter.
func NewFastHTTPAdapter(logger *llog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  llog.LevelInfo,
		levelDetector: DetectLogLevel,
	}
	for _, opt := range opts {
		opt(adapter)
	}
	return adapter
}

// FastHTTPOption allows customizing adapter behavior.
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the default log level for Printf calls.
func WithDefaultLevel(level llog.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from
// message content.
func WithLevelDetector(detector func(string) llog.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface.
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := "[fasthttp] " + fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected := a.levelDetector(msg); detected != 0 {
			level = detected
		}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger.Log(level, msg)
}

// DetectLogLevel attempts to detect log level from message content.
func DetectLogLevel(msg string) llog.Level {
	msgLower := strings.ToLower(msg)

	switch {
	case strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic"):
		return llog.LevelError
	case strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated"):
		return llog.LevelWarn
	case strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace"):
		return llog.LevelDebug
	default:
		return llog.LevelInfo
	}
}
