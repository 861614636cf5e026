// Package compat adapts a llog.Logger to the logging interfaces
// expected by third-party network frameworks (gnet, fasthttp, Fiber),
// so a single low-latency pipeline can absorb their log traffic
// instead of each framework opening its own writer.
package compat

import (
	"fmt"

	"github.com/moradiya84/low-latency-logger"
)

// Builder provides a flexible way to create configured logger adapters
// for gnet, fasthttp, and Fiber. It can use an existing *llog.Logger or
// create a new one from a *llog.Config.
type Builder struct {
	logger *llog.Logger
	logCfg *llog.Config
	err    error
}

// NewBuilder creates a new adapter builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// If set, WithConfig is ignored.
func (b *Builder) WithLogger(l *llog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("llog/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new logger instance, used
// only if an existing logger was not provided via WithLogger.
func (b *Builder) WithConfig(cfg *llog.Config) *Builder {
	b.logCfg = cfg
	return b
}

func (b *Builder) getLogger() (*llog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.logger != nil {
		return b.logger, nil
	}

	l := llog.NewLogger()
	cfg := b.logCfg
	if cfg == nil {
		cfg = llog.DefaultConfig()
	}
	if err := l.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	if err := l.Start(); err != nil {
		return nil, err
	}

	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet logging.Logger-compatible adapter.
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp Logger-compatible adapter.
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// BuildFiber creates a Fiber v2.54.x CommonLogger-compatible adapter.
func (b *Builder) BuildFiber(opts ...FiberOption) (*FiberAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFiberAdapter(l, opts...), nil
}

// GetLogger returns the underlying *llog.Logger, initializing it if
// needed.
func (b *Builder) GetLogger() (*llog.Logger, error) {
	return b.getLogger()
}
