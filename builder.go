// FILE: lixenwraith/rlog/builder.go
package rlog

// Builder provides a fluent API for building controller configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg  *Config
	opts []Option
	err  error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Controller with the specified configuration.
func (b *Builder) Build() (*Controller, error) {
	if b.err != nil {
		return nil, b.err
	}
	return NewController(b.cfg, b.opts...)
}

// Config returns a copy of the configuration built so far.
func (b *Builder) Config() *Config {
	return b.cfg.Clone()
}

// FilePath sets the active log file.
func (b *Builder) FilePath(path string) *Builder {
	b.cfg.FilePath = path
	return b
}

// MaxFileSizeMB sets the active file cap.
func (b *Builder) MaxFileSizeMB(size int64) *Builder {
	b.cfg.MaxFileSizeMB = size
	return b
}

// MaxFileCount sets how many rotated files are kept.
func (b *Builder) MaxFileCount(count int64) *Builder {
	b.cfg.MaxFileCount = count
	return b
}

// BufferSizeMB sets the buffered appender capacity.
func (b *Builder) BufferSizeMB(size int64) *Builder {
	b.cfg.BufferSizeMB = size
	return b
}

// Sentinels sets the begin and end buffer tokens, given reversed.
func (b *Builder) Sentinels(begin, end string) *Builder {
	b.cfg.BeginSentinel = begin
	b.cfg.EndSentinel = end
	return b
}

// Level sets the log level.
func (b *Builder) Level(level Level) *Builder {
	b.cfg.Level = int64(level)
	return b
}

// LevelString sets the log level from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := ParseLevel(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = int64(levelVal)
	return b
}

// Appender selects the appender kind.
func (b *Builder) Appender(kind AppenderType) *Builder {
	b.cfg.Appender = kind.String()
	return b
}

// AppenderString selects the appender kind by config name.
func (b *Builder) AppenderString(name string) *Builder {
	if b.err != nil {
		return b
	}
	kind, err := ParseAppenderType(name)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Appender = kind.String()
	return b
}

// FileWritingAllowed toggles disk writes.
func (b *Builder) FileWritingAllowed(allowed bool) *Builder {
	b.cfg.FileWritingAllowed = allowed
	return b
}

// CanDeleteLogs gates log deletion.
func (b *Builder) CanDeleteLogs(allowed bool) *Builder {
	b.cfg.CanDeleteLogs = allowed
	return b
}

// LoggingBeforeInit allows records before Init.
func (b *Builder) LoggingBeforeInit(allowed bool) *Builder {
	b.cfg.LoggingBeforeInit = allowed
	return b
}

// SanitizePolicy sets the message sanitizing preset.
func (b *Builder) SanitizePolicy(policy string) *Builder {
	b.cfg.SanitizePolicy = policy
	return b
}

// ArgsFormat sets variadic argument rendering, raw or txt.
func (b *Builder) ArgsFormat(format string) *Builder {
	b.cfg.ArgsFormat = format
	return b
}

// PIIHash enables redaction with the given cache bounds.
func (b *Builder) PIIHash(enabled bool, cacheSize, ttlS int64) *Builder {
	b.cfg.PIIHashEnabled = enabled
	b.cfg.PIICacheSize = cacheSize
	b.cfg.PIICacheTTLS = ttlS
	return b
}

// InternalErrorsToStderr routes runtime diagnostics to stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// With adds controller options such as WithFileStoreProvider.
func (b *Builder) With(opts ...Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// Example usage:
// c, err := rlog.NewBuilder().
//
//	FilePath("/var/log/app/app.log").
//	LevelString("info").
//	Appender(rlog.AppenderFile).
//	MaxFileCount(3).
//	Build()
//
// if err == nil {
//
//	 defer c.Close()
//	 c.RootLogger().Info("controller ready")
//
// }
