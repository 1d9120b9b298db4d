// FILE: lixenwraith/rlog/config.go
package rlog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"

	"github.com/lixenwraith/rlog/sanitizer"
)

// configPrefix is the TOML table holding rlog settings
const configPrefix = "rlog."

// Config holds all controller configuration values
type Config struct {
	// File target
	FilePath      string `toml:"file_path"`        // Active log file; directory and name are derived
	MaxFileSizeMB int64  `toml:"max_file_size_mb"` // Cap of the active file before rotation
	MaxFileCount  int64  `toml:"max_file_count"`   // Rotated files kept as name.1 .. name.N

	// Buffering
	BufferSizeMB  int64  `toml:"buffer_size_mb"` // In-memory buffer of the buffered appender
	BeginSentinel string `toml:"begin_sentinel"`
	EndSentinel   string `toml:"end_sentinel"`

	// Behavior
	Level              int64  `toml:"level"`    // 0=off .. 6=trace
	Appender           string `toml:"appender"` // basic_file, buffered, file, console, native
	FileWritingAllowed bool   `toml:"file_writing_allowed"`
	CanDeleteLogs      bool   `toml:"can_delete_logs"`
	LoggingBeforeInit  bool   `toml:"logging_before_init"` // Emit records before Init is called
	SanitizePolicy     string `toml:"sanitize_policy"`     // raw, txt, line
	ArgsFormat         string `toml:"args_format"`         // raw or txt rendering of logger args

	// PII redaction
	PIIHashEnabled bool  `toml:"pii_hash_enabled"`
	PIICacheSize   int64 `toml:"pii_cache_size"`  // Entries kept before eviction
	PIICacheTTLS   int64 `toml:"pii_cache_ttl_s"` // 0 keeps entries until evicted by size

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	FilePath:      DefaultFilePath,
	MaxFileSizeMB: DefaultMaxFileSizeMB,
	MaxFileCount:  DefaultMaxFileCount,

	BufferSizeMB:  DefaultBufferSizeMB,
	BeginSentinel: DefaultBeginSentinel,
	EndSentinel:   DefaultEndSentinel,

	Level:              int64(DefaultLevel),
	Appender:           DefaultAppender.String(),
	FileWritingAllowed: true,
	CanDeleteLogs:      true,
	LoggingBeforeInit:  true,
	SanitizePolicy:     string(sanitizer.PolicyRaw),
	ArgsFormat:         "raw",

	PIIHashEnabled: false,
	PIICacheSize:   DefaultPIICacheSize,
	PIICacheTTLS:   0,

	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [rlog] table of a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct(configPrefix, *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	// A missing file leaves defaults in place
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, configPrefix, cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides keyed by toml tag
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case Level:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if strings.TrimSpace(c.FilePath) == "" {
		return fmtErrorf("file_path cannot be empty")
	}
	if strings.HasSuffix(c.FilePath, "/") || strings.HasSuffix(c.FilePath, `\`) {
		return fmtErrorf("file_path must name a file, got directory '%s'", c.FilePath)
	}

	if c.MaxFileSizeMB <= 0 {
		return fmtErrorf("max_file_size_mb must be positive: %d", c.MaxFileSizeMB)
	}
	if c.MaxFileCount < 0 {
		return fmtErrorf("max_file_count cannot be negative: %d", c.MaxFileCount)
	}
	if c.BufferSizeMB < MinBufferSizeMB || c.BufferSizeMB > MaxBufferSizeMB {
		return fmtErrorf("buffer_size_mb must be between %d and %d: %d", MinBufferSizeMB, MaxBufferSizeMB, c.BufferSizeMB)
	}

	if c.BeginSentinel == "" || c.EndSentinel == "" {
		return fmtErrorf("sentinels cannot be empty")
	}
	if c.BeginSentinel == c.EndSentinel {
		return fmtErrorf("begin_sentinel and end_sentinel must differ")
	}

	if c.Level < int64(LevelOff) || c.Level > int64(LevelTrace) {
		return fmtErrorf("level must be between %d and %d: %d", LevelOff, LevelTrace, c.Level)
	}
	if _, err := ParseAppenderType(c.Appender); err != nil {
		return err
	}
	if !sanitizer.ValidPolicy(c.SanitizePolicy) {
		return fmtErrorf("invalid sanitize_policy: '%s' (use raw, txt, or line)", c.SanitizePolicy)
	}
	if c.ArgsFormat != "raw" && c.ArgsFormat != "txt" {
		return fmtErrorf("invalid args_format: '%s' (use raw or txt)", c.ArgsFormat)
	}

	if c.PIICacheSize <= 0 {
		return fmtErrorf("pii_cache_size must be positive: %d", c.PIICacheSize)
	}
	if c.PIICacheTTLS < 0 {
		return fmtErrorf("pii_cache_ttl_s cannot be negative: %d", c.PIICacheTTLS)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
