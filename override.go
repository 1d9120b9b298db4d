// FILE: lixenwraith/rlog/override.go
package rlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/rlog/sanitizer"
)

// ApplyOverride applies string key-value overrides to the controller's current configuration.
// Each override should be in the format "key=value".
// The configuration is cloned before modification; nothing changes when any override fails.
//
// Example:
//
//	err := c.ApplyOverride(
//	    "file_path=/var/log/app/app.log",
//	    "level=info",
//	    "appender=file",
//	)
func (c *Controller) ApplyOverride(overrides ...string) error {
	cfg := c.Config()

	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	return c.ApplyConfig(cfg)
}

// ApplyConfig validates cfg and reconfigures the controller with it.
// Unflushed buffered lines carry over to the rebuilt appender.
func (c *Controller) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}
	cfg = cfg.Clone()
	kind, _ := ParseAppenderType(cfg.Appender)

	c.mu.Lock()
	defer c.mu.Unlock()

	var held string
	if buffered, ok := c.appender.(Buffered); ok {
		held = buffered.GetBuffer()
		buffered.ClearBuffer()
	}

	c.cfg = cfg
	c.configuration = newConfigurationFromConfig(cfg)
	c.appenderType = kind
	c.sanitizer = sanitizer.New().Policy(sanitizer.PolicyPreset(cfg.SanitizePolicy))
	c.level = Level(cfg.Level)
	c.canDeleteLogs = cfg.CanDeleteLogs
	c.loggingBeforeInit = cfg.LoggingBeforeInit
	c.piiEnabled.Store(cfg.PIIHashEnabled)
	c.args.Store(cfg.ArgsFormat)
	c.pii.Resize(int(cfg.PIICacheSize), time.Duration(cfg.PIICacheTTLS)*time.Second)

	c.replaceAppenderLocked(c.buildAppenderLocked(kind))
	if buffered, ok := c.appender.(Buffered); ok && held != "" {
		buffered.AppendToBuffer(held)
	}
	return nil
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("rlog: multiple configuration errors:")
	for i, err := range errors {
		errMsg := err.Error()
		// Remove "rlog: " prefix from individual errors to avoid duplication
		errMsg = strings.TrimPrefix(errMsg, "rlog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
// This is the core field mapping logic for string overrides.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	// File target
	case "file_path":
		cfg.FilePath = value
	case "max_file_size_mb":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_file_size_mb '%s': %w", value, err)
		}
		cfg.MaxFileSizeMB = intVal
	case "max_file_count":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_file_count '%s': %w", value, err)
		}
		cfg.MaxFileCount = intVal

	// Buffering
	case "buffer_size_mb":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for buffer_size_mb '%s': %w", value, err)
		}
		cfg.BufferSizeMB = intVal
	case "begin_sentinel":
		cfg.BeginSentinel = value
	case "end_sentinel":
		cfg.EndSentinel = value

	// Behavior
	case "level":
		// Accept both numeric and named values
		levelVal, err := ParseLevel(value)
		if err != nil {
			return fmtErrorf("invalid level value '%s': %w", value, err)
		}
		cfg.Level = int64(levelVal)
	case "appender":
		if _, err := ParseAppenderType(value); err != nil {
			return err
		}
		cfg.Appender = value
	case "file_writing_allowed":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for file_writing_allowed '%s': %w", value, err)
		}
		cfg.FileWritingAllowed = boolVal
	case "can_delete_logs":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for can_delete_logs '%s': %w", value, err)
		}
		cfg.CanDeleteLogs = boolVal
	case "logging_before_init":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for logging_before_init '%s': %w", value, err)
		}
		cfg.LoggingBeforeInit = boolVal
	case "sanitize_policy":
		cfg.SanitizePolicy = value
	case "args_format":
		cfg.ArgsFormat = value

	// PII redaction
	case "pii_hash_enabled":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for pii_hash_enabled '%s': %w", value, err)
		}
		cfg.PIIHashEnabled = boolVal
	case "pii_cache_size":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for pii_cache_size '%s': %w", value, err)
		}
		cfg.PIICacheSize = intVal
	case "pii_cache_ttl_s":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for pii_cache_ttl_s '%s': %w", value, err)
		}
		cfg.PIICacheTTLS = intVal

	// Internal error handling
	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}
