// FILE: builder.go
package llog

// Builder provides a fluent alternative to constructing a Config
// literal, for callers that prefer a chained setup over a struct.
type Builder struct {
	cfg *Config
	err error
}

// NewBuilder starts from the built-in defaults.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// Build validates the accumulated configuration and constructs a
// Logger from it. The first error recorded by any chained setter, if
// any, is returned here rather than at the call site that caused it.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.cfg.validate(); err != nil {
		return nil, err
	}
	l := NewLogger()
	if err := l.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}
	return l, nil
}

func (b *Builder) Level(level Level) *Builder {
	b.cfg.Level = level
	return b
}

func (b *Builder) LevelString(s string) *Builder {
	lvl, err := ParseLevel(s)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	b.cfg.Level = lvl
	return b
}

func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

func (b *Builder) Format(format string) *Builder {
	b.cfg.Format = format
	return b
}

func (b *Builder) Extension(ext string) *Builder {
	b.cfg.Extension = ext
	return b
}

func (b *Builder) QueueCapacity(capacity uint64) *Builder {
	b.cfg.QueueCapacity = capacity
	return b
}

func (b *Builder) MaxSizeMB(mb int64) *Builder {
	b.cfg.MaxSizeMB = mb
	return b
}

func (b *Builder) EnableStdout(enable bool) *Builder {
	b.cfg.EnableStdout = enable
	return b
}

func (b *Builder) DisableFile(disable bool) *Builder {
	b.cfg.DisableFile = disable
	return b
}

func (b *Builder) HeartbeatLevel(level int64) *Builder {
	b.cfg.HeartbeatLevel = level
	return b
}

func (b *Builder) HeartbeatIntervalS(seconds int64) *Builder {
	b.cfg.HeartbeatIntervalS = seconds
	return b
}
