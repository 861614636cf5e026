// FILE: default.go
package llog

import (
	"sync"
	"time"
)

var (
	defaultOnce   sync.Once
	defaultLogger *Logger
)

// Default returns the package-level Logger, lazily constructed with
// built-in defaults and started on first use.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = NewLogger()
		defaultLogger.Start()
	})
	return defaultLogger
}

// Init replaces the default logger's configuration and (re)starts it.
func Init(cfg *Config) error {
	d := Default()
	if err := d.ApplyConfig(cfg); err != nil {
		return err
	}
	return d.Start()
}

// InitWithDefaults is Init with the built-in defaults, for callers
// that only want to pick the log directory.
func InitWithDefaults(directory string) error {
	cfg := DefaultConfig()
	cfg.Directory = directory
	return Init(cfg)
}

// SaveConfig persists the default logger's current configuration.
func SaveConfig(path string) error {
	return Default().GetConfig().SaveConfig(path)
}

// LoadConfig loads and applies a configuration file to the default logger.
func LoadConfig(path string) error {
	return Default().ApplyConfigString(path)
}

func Trace(message string, args ...any) LogResult { return Default().Trace(message, args...) }
func Debug(message string, args ...any) LogResult { return Default().Debug(message, args...) }
func Info(message string, args ...any) LogResult  { return Default().Info(message, args...) }
func Warn(message string, args ...any) LogResult  { return Default().Warn(message, args...) }
func Error(message string, args ...any) LogResult { return Default().Error(message, args...) }
func Fatal(message string, args ...any) LogResult { return Default().Fatal(message, args...) }

func Flush(timeout ...time.Duration) error {
	d := 5 * time.Second
	if len(timeout) > 0 {
		d = timeout[0]
	}
	return Default().Flush(d)
}

func Shutdown(timeout ...time.Duration) error {
	return Default().Shutdown(timeout...)
}
