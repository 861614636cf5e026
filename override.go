// FILE: override.go
package llog

import (
	"strconv"

	"go.uber.org/multierr"
)

// ApplyOverride parses a set of "key=value" strings against a copy of
// the Logger's current Config. If every row parses, the copy is
// applied via ApplyConfig; otherwise nothing is applied and a combined
// error (via multierr) lists every row that failed, so one malformed
// row never hides the others.
func (l *Logger) ApplyOverride(overrides ...string) error {
	cfg := l.config.Load().Clone()

	var errs error
	for _, row := range overrides {
		key, value, err := parseKeyValue(row)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := applyConfigField(cfg, key, value); err != nil {
			errs = multierr.Append(errs, fmtErrorf("override %q: %w", row, err))
		}
	}
	if errs != nil {
		return errs
	}
	return l.ApplyConfig(cfg)
}

func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	case "level":
		lvl, err := ParseLevel(value)
		if err != nil {
			return err
		}
		cfg.Level = lvl
	case "name":
		cfg.Name = value
	case "directory":
		cfg.Directory = value
	case "format":
		cfg.Format = value
	case "extension":
		cfg.Extension = value
	case "timestamp_format":
		cfg.TimestampFormat = value
	case "enable_thread_id":
		return setBool(&cfg.EnableThreadID, value)
	case "enable_source_location":
		return setBool(&cfg.EnableSourceLocation, value)
	case "spin_count":
		return setInt(&cfg.SpinCount, value)
	case "queue_capacity":
		return setUint64(&cfg.QueueCapacity, value)
	case "max_size_mb":
		return setInt64(&cfg.MaxSizeMB, value)
	case "max_total_size_mb":
		return setInt64(&cfg.MaxTotalSizeMB, value)
	case "min_disk_free_mb":
		return setInt64(&cfg.MinDiskFreeMB, value)
	case "flush_interval_ms":
		return setInt64(&cfg.FlushIntervalMs, value)
	case "trace_depth":
		return setInt64(&cfg.TraceDepth, value)
	case "retention_period_hrs":
		return setFloat64(&cfg.RetentionPeriodHrs, value)
	case "retention_check_mins":
		return setFloat64(&cfg.RetentionCheckMins, value)
	case "disk_check_interval_ms":
		return setInt64(&cfg.DiskCheckIntervalMs, value)
	case "enable_adaptive_interval":
		return setBool(&cfg.EnableAdaptiveInterval, value)
	case "enable_periodic_sync":
		return setBool(&cfg.EnablePeriodicSync, value)
	case "min_check_interval_ms":
		return setInt64(&cfg.MinCheckIntervalMs, value)
	case "max_check_interval_ms":
		return setInt64(&cfg.MaxCheckIntervalMs, value)
	case "heartbeat_level":
		return setInt64(&cfg.HeartbeatLevel, value)
	case "heartbeat_interval_s":
		return setInt64(&cfg.HeartbeatIntervalS, value)
	case "enable_stdout":
		return setBool(&cfg.EnableStdout, value)
	case "stdout_target":
		cfg.StdoutTarget = value
	case "disable_file":
		return setBool(&cfg.DisableFile, value)
	case "internal_errors_to_stderr":
		return setBool(&cfg.InternalErrorsToStderr, value)
	default:
		return fmtErrorf("unknown config key %q", key)
	}
	return nil
}

func setBool(dst *bool, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmtErrorf("invalid bool %q: %w", value, err)
	}
	*dst = b
	return nil
}

func setInt(dst *int, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmtErrorf("invalid int %q: %w", value, err)
	}
	*dst = n
	return nil
}

func setInt64(dst *int64, value string) error {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmtErrorf("invalid int %q: %w", value, err)
	}
	*dst = n
	return nil
}

func setUint64(dst *uint64, value string) error {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return fmtErrorf("invalid uint %q: %w", value, err)
	}
	*dst = n
	return nil
}

func setFloat64(dst *float64, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmtErrorf("invalid float %q: %w", value, err)
	}
	*dst = f
	return nil
}
