package compat

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/moradiya84/low-latency-logger"
)

// FiberAdapter wraps a llog.Logger to implement Fiber v2.54.x's
// CommonLogger/FormatLogger logging interfaces. No Fiber package is
// imported here — the adapter is duck-typed against Fiber's logger
// shape so this module never depends on Fiber directly.
//
// Fiber's middleware logs from per-request goroutines running
// concurrently, so every call into the wrapped Logger is serialized
// through mu: the core's SPSC queue accepts exactly one producer
// goroutine for its whole lifetime, and mu is the external
// serialisation shim that contract requires from any multi-goroutine
// caller.
type FiberAdapter struct {
	mu           sync.Mutex
	logger       *llog.Logger
	fatalHandler func(msg string)
	panicHandler func(msg string)
}

// NewFiberAdapter creates a new Fiber-compatible logger adapter.
func NewFiberAdapter(logger *llog.Logger, opts ...FiberOption) *FiberAdapter {
	adapter := &FiberAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1)
		},
		panicHandler: func(msg string) {
			panic(msg)
		},
	}
	for _, opt := range opts {
		opt(adapter)
	}
	return adapter
}

// FiberOption allows customizing adapter behavior.
type FiberOption func(*FiberAdapter)

func WithFiberFatalHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) { a.fatalHandler = handler }
}

func WithFiberPanicHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) { a.panicHandler = handler }
}

// log serializes one call into the wrapped Logger under mu.
func (a *FiberAdapter) log(level llog.Level, msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger.Log(level, msg)
}

// flushLocked serializes a Flush call under the same lock used by log, so a
// Fatal/Panic path's flush can't interleave with a concurrent log call.
func (a *FiberAdapter) flushLocked(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	_ = a.logger.Flush(d)
}

// --- CommonLogger interface ---

func (a *FiberAdapter) Trace(v ...any) { a.log(llog.LevelDebug, "[fiber] "+fmt.Sprint(v...)) }
func (a *FiberAdapter) Debug(v ...any) { a.log(llog.LevelDebug, "[fiber] "+fmt.Sprint(v...)) }
func (a *FiberAdapter) Info(v ...any)  { a.log(llog.LevelInfo, "[fiber] "+fmt.Sprint(v...)) }
func (a *FiberAdapter) Warn(v ...any)  { a.log(llog.LevelWarn, "[fiber] "+fmt.Sprint(v...)) }
func (a *FiberAdapter) Error(v ...any) { a.log(llog.LevelError, "[fiber] "+fmt.Sprint(v...)) }

func (a *FiberAdapter) Fatal(v ...any) {
	msg := fmt.Sprint(v...)
	a.log(llog.LevelError, "[fiber] FATAL "+msg)
	a.flushLocked(100 * time.Millisecond)
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

func (a *FiberAdapter) Panic(v ...any) {
	msg := fmt.Sprint(v...)
	a.log(llog.LevelError, "[fiber] PANIC "+msg)
	a.flushLocked(100 * time.Millisecond)
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}

// Write makes FiberAdapter implement io.Writer, for use with
// fiber.Config.ErrorHandler output redirection.
func (a *FiberAdapter) Write(p []byte) (n int, err error) {
	msg := string(p)
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	a.log(llog.LevelInfo, "[fiber] "+msg)
	return len(p), nil
}

// --- FormatLogger interface ---

func (a *FiberAdapter) Tracef(format string, v ...any) {
	a.log(llog.LevelDebug, "[fiber] "+fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Debugf(format string, v ...any) {
	a.log(llog.LevelDebug, "[fiber] "+fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Infof(format string, v ...any) {
	a.log(llog.LevelInfo, "[fiber] "+fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Warnf(format string, v ...any) {
	a.log(llog.LevelWarn, "[fiber] "+fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Errorf(format string, v ...any) {
	a.log(llog.LevelError, "[fiber] "+fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Fatalf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.log(llog.LevelError, "[fiber] FATAL "+msg)
	a.flushLocked(100 * time.Millisecond)
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

func (a *FiberAdapter) Panicf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.log(llog.LevelError, "[fiber] PANIC "+msg)
	a.flushLocked(100 * time.Millisecond)
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}

// --- WithLogger (structured) interface ---
//
// Fiber's structured *w methods pass free-form key/value pairs; this
// adapter renders them inline into the message text rather than
// carrying them as separate fields, since the core record format has
// no generic field-map slot (see DESIGN.md).

func (a *FiberAdapter) Tracew(msg string, keysAndValues ...any) {
	a.log(llog.LevelDebug, "[fiber] "+msg+formatFields(keysAndValues))
}

func (a *FiberAdapter) Debugw(msg string, keysAndValues ...any) {
	a.log(llog.LevelDebug, "[fiber] "+msg+formatFields(keysAndValues))
}

func (a *FiberAdapter) Infow(msg string, keysAndValues ...any) {
	a.log(llog.LevelInfo, "[fiber] "+msg+formatFields(keysAndValues))
}

func (a *FiberAdapter) Warnw(msg string, keysAndValues ...any) {
	a.log(llog.LevelWarn, "[fiber] "+msg+formatFields(keysAndValues))
}

func (a *FiberAdapter) Errorw(msg string, keysAndValues ...any) {
	a.log(llog.LevelError, "[fiber] "+msg+formatFields(keysAndValues))
}

func (a *FiberAdapter) Fatalw(msg string, keysAndValues ...any) {
	a.log(llog.LevelError, "[fiber] FATAL "+msg+formatFields(keysAndValues))
	a.flushLocked(100 * time.Millisecond)
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

func (a *FiberAdapter) Panicw(msg string, keysAndValues ...any) {
	a.log(llog.LevelError, "[fiber] PANIC "+msg+formatFields(keysAndValues))
	a.flushLocked(100 * time.Millisecond)
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}

func formatFields(keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return ""
	}
	s := " "
	for i := 0; i < len(keysAndValues); i += 2 {
		if i > 0 {
			s += " "
		}
		if i+1 < len(keysAndValues) {
			s += fmt.Sprintf("%v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			s += fmt.Sprintf("%v", keysAndValues[i])
		}
	}
	return s
}
