// FILE: config.go
package llog

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lixenwraith/config"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config holds all logger configuration values. A Config is immutable
// once handed to ApplyConfig: Logger stores it behind an
// atomic.Pointer and the consumer always reads a self-consistent
// snapshot for the duration of one drain iteration.
type Config struct {
	// Basic settings
	Level     Level  `toml:"level"`
	Name      string `toml:"name"`
	Directory string `toml:"directory"`
	Format    string `toml:"format"` // "txt", "json", or "raw"
	Extension string `toml:"extension"`

	// Core transport
	QueueCapacity          uint64 `toml:"queue_capacity"` // power of two, > 1
	SpinCount              int    `toml:"spin_count"`
	EnableThreadID         bool   `toml:"enable_thread_id"`
	EnableSourceLocation   bool   `toml:"enable_source_location"`
	TraceDepth             int64  `toml:"trace_depth"`

	// Formatting
	TimestampFormat string `toml:"timestamp_format"`

	// File sink size limits
	MaxSizeMB      int64 `toml:"max_size_mb"`
	MaxTotalSizeMB int64 `toml:"max_total_size_mb"`
	MinDiskFreeMB  int64 `toml:"min_disk_free_mb"`

	// Timers
	FlushIntervalMs    int64   `toml:"flush_interval_ms"`
	RetentionPeriodHrs float64 `toml:"retention_period_hrs"`
	RetentionCheckMins float64 `toml:"retention_check_mins"`

	// Disk check settings
	DiskCheckIntervalMs    int64 `toml:"disk_check_interval_ms"`
	EnableAdaptiveInterval bool  `toml:"enable_adaptive_interval"`
	EnablePeriodicSync     bool  `toml:"enable_periodic_sync"`
	MinCheckIntervalMs     int64 `toml:"min_check_interval_ms"`
	MaxCheckIntervalMs     int64 `toml:"max_check_interval_ms"`

	// Heartbeat configuration
	HeartbeatLevel     int64 `toml:"heartbeat_level"` // 0=off, 1=proc, 2=+disk, 3=+sys
	HeartbeatIntervalS int64 `toml:"heartbeat_interval_s"`

	// Stdout/console output settings
	EnableStdout bool   `toml:"enable_stdout"`
	StdoutTarget string `toml:"stdout_target"` // "stdout" or "stderr"
	DisableFile  bool   `toml:"disable_file"`

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"`
}

var defaultConfig = Config{
	Level:     LevelInfo,
	Name:      "llog",
	Directory: "./logs",
	Format:    "txt",
	Extension: "log",

	QueueCapacity:        65536,
	SpinCount:            1000,
	EnableThreadID:       true,
	EnableSourceLocation: true,
	TraceDepth:           0,

	TimestampFormat: time.RFC3339Nano,

	MaxSizeMB:      10,
	MaxTotalSizeMB: 50,
	MinDiskFreeMB:  100,

	FlushIntervalMs:    100,
	RetentionPeriodHrs: 0.0,
	RetentionCheckMins: 60.0,

	DiskCheckIntervalMs:    5000,
	EnableAdaptiveInterval: true,
	EnablePeriodicSync:     true,
	MinCheckIntervalMs:     100,
	MaxCheckIntervalMs:     60000,

	HeartbeatLevel:     0,
	HeartbeatIntervalS: 60,

	EnableStdout: false,
	StdoutTarget: "stdout",
	DisableFile:  false,

	InternalErrorsToStderr: true,
}

// DefaultConfig returns a copy of the built-in default configuration.
func DefaultConfig() *Config {
	c := defaultConfig
	return &c
}

// NewConfigFromFile loads configuration from a TOML or YAML file
// (selected by extension) and returns a validated Config. A missing
// file is not an error: defaults are used and validated as-is.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("llog: failed to read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("llog: failed to parse yaml config %s: %w", path, err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	loader := config.New()
	if err := loader.RegisterStruct("llog.", *cfg); err != nil {
		return nil, fmt.Errorf("llog: failed to register config struct: %w", err)
	}
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("llog: failed to load config from %s: %w", path, err)
	}
	if err := extractConfig(loader, "llog.", cfg); err != nil {
		return nil, fmt.Errorf("llog: failed to extract config values: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig persists cfg as a TOML file at path, for operators who
// reconfigure a running process and want to capture the result.
func (c *Config) SaveConfig(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("llog: failed to create config file %s: %w", path, err)
	}
	defer f.Close()
	// Wrapped under the "llog" table so the file round-trips through
	// NewConfigFromFile, which reads values back out via the same
	// "llog." prefix lixenwraith/config.RegisterStruct was given.
	wrapped := map[string]*Config{"llog": c}
	if err := toml.NewEncoder(f).Encode(wrapped); err != nil {
		return fmt.Errorf("llog: failed to encode config to %s: %w", path, err)
	}
	return nil
}

// NewConfigFromDefaults creates a Config with default values and
// applies a map of typed overrides via mapstructure, keyed by the
// struct's toml tags.
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "toml",
		Result:  cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("llog: failed to build override decoder: %w", err)
	}
	if err := decoder.Decode(overrides); err != nil {
		return nil, fmt.Errorf("llog: failed to apply overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// extractConfig pulls values out of a lixenwraith/config loader into
// cfg, using reflection over the toml tags the way the teacher's own
// loader integration does.
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("toml")
		if tag == "" {
			continue
		}
		val, found := loader.Get(prefix + tag)
		if !found {
			continue
		}
		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}
	return nil
}

func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(s)
	case reflect.Int8, reflect.Int64, reflect.Int:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case Level:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected integer, got %T", value)
		}
	case reflect.Uint64:
		switch v := value.(type) {
		case int64:
			field.SetUint(uint64(v))
		case uint64:
			field.SetUint(v)
		default:
			return fmt.Errorf("expected unsigned integer, got %T", value)
		}
	case reflect.Float64:
		f, ok := value.(float64)
		if !ok {
			return fmt.Errorf("expected float64, got %T", value)
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}
	return nil
}

// validate checks field- and cross-field invariants.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("llog: log name cannot be empty")
	}
	if c.Format != "txt" && c.Format != "json" && c.Format != "raw" {
		return fmt.Errorf("llog: invalid format: %q (use txt, json, or raw)", c.Format)
	}
	if strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("llog: extension should not start with dot: %s", c.Extension)
	}
	if strings.TrimSpace(c.TimestampFormat) == "" {
		return fmt.Errorf("llog: timestamp_format cannot be empty")
	}
	if c.StdoutTarget != "stdout" && c.StdoutTarget != "stderr" {
		return fmt.Errorf("llog: invalid stdout_target: %q (use stdout or stderr)", c.StdoutTarget)
	}
	if c.QueueCapacity < 2 || c.QueueCapacity&(c.QueueCapacity-1) != 0 {
		return fmt.Errorf("llog: queue_capacity must be a power of two greater than 1: %d", c.QueueCapacity)
	}
	if c.SpinCount <= 0 {
		return fmt.Errorf("llog: spin_count must be positive: %d", c.SpinCount)
	}
	if c.MaxSizeMB < 0 || c.MaxTotalSizeMB < 0 || c.MinDiskFreeMB < 0 {
		return fmt.Errorf("llog: size limits cannot be negative")
	}
	if c.FlushIntervalMs <= 0 || c.DiskCheckIntervalMs <= 0 ||
		c.MinCheckIntervalMs <= 0 || c.MaxCheckIntervalMs <= 0 {
		return fmt.Errorf("llog: interval settings must be positive")
	}
	if c.TraceDepth < 0 || c.TraceDepth > 10 {
		return fmt.Errorf("llog: trace_depth must be between 0 and 10: %d", c.TraceDepth)
	}
	if c.RetentionPeriodHrs < 0 || c.RetentionCheckMins < 0 {
		return fmt.Errorf("llog: retention settings cannot be negative")
	}
	if c.HeartbeatLevel < 0 || c.HeartbeatLevel > 3 {
		return fmt.Errorf("llog: heartbeat_level must be between 0 and 3: %d", c.HeartbeatLevel)
	}
	if c.MinCheckIntervalMs > c.MaxCheckIntervalMs {
		return fmt.Errorf("llog: min_check_interval_ms (%d) cannot exceed max_check_interval_ms (%d)",
			c.MinCheckIntervalMs, c.MaxCheckIntervalMs)
	}
	if c.HeartbeatLevel > 0 && c.HeartbeatIntervalS <= 0 {
		return fmt.Errorf("llog: heartbeat_interval_s must be positive when heartbeat is enabled: %d",
			c.HeartbeatIntervalS)
	}
	return nil
}

// Clone returns a deep copy (Config has no reference fields, so a
// value copy suffices).
func (c *Config) Clone() *Config {
	c2 := *c
	return &c2
}
