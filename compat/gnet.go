package compat

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/moradiya84/low-latency-logger"
)

// GnetAdapter wraps a llog.Logger to implement gnet's logging.Logger
// interface (Debugf/Infof/Warnf/Errorf/Fatalf). gnet may call its
// logger from several event-loop goroutines at once; llog.Logger's
// queue accepts exactly one producer for its whole lifetime, so this
// adapter serializes every call through mu before it reaches the
// logger — the "external serialisation shim" the core's single-
// producer contract explicitly allows a caller to provide.
type GnetAdapter struct {
	mu           sync.Mutex
	logger       *llog.Logger
	fatalHandler func(msg string)
}

// NewGnetAdapter creates a new gnet-compatible logger adapter.
func NewGnetAdapter(logger *llog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1)
		},
	}
	for _, opt := range opts {
		opt(adapter)
	}
	return adapter
}

// GnetOption allows customizing adapter behavior.
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler.
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger.Debug("[gnet] " + fmt.Sprintf(format, args...))
}

func (a *GnetAdapter) Infof(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger.Info("[gnet] " + fmt.Sprintf(format, args...))
}

func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger.Warn("[gnet] " + fmt.Sprintf(format, args...))
}

func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger.Error("[gnet] " + fmt.Sprintf(format, args...))
}

func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.mu.Lock()
	a.logger.Error("[gnet] FATAL " + msg)
	_ = a.logger.Flush(100 * time.Millisecond)
	a.mu.Unlock()
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
