// FILE: lixenwraith/rlog/controller.go
package rlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/rlog/formatter"
	"github.com/lixenwraith/rlog/sanitizer"
)

// Controller routes log calls from named loggers to the active appender.
// It owns level gating, the appender lifecycle and the file set.
type Controller struct {
	mu            sync.Mutex
	cfg           *Config
	configuration *Configuration
	appenderType  AppenderType
	appender      Appender
	provider      FileStoreProvider
	sanitizer     *sanitizer.Sanitizer
	stdout        io.Writer

	level             Level
	threadID          formatter.ThreadIDHandler
	canDeleteLogs     bool
	loggingBeforeInit bool

	piiEnabled atomic.Bool
	pii        *Redactor
	args       atomic.Value // Args rendering of the loggers, "raw" or "txt"

	state State

	loggersMu sync.Mutex
	loggers   map[string]*Logger
}

// Option configures a Controller at construction
type Option func(*Controller)

// WithFileStoreProvider replaces the os backed file store
func WithFileStoreProvider(p FileStoreProvider) Option {
	return func(c *Controller) {
		if p != nil {
			c.provider = p
		}
	}
}

// WithStdout sets the console appender's writer
func WithStdout(w io.Writer) Option {
	return func(c *Controller) {
		if w != nil {
			c.stdout = w
		}
	}
}

// WithPIIHashFunc replaces the digest used for PII tokens
func WithPIIHashFunc(h HashFunc) Option {
	return func(c *Controller) {
		c.pii.SetHashFunc(h)
	}
}

// NewController validates cfg and builds a controller with its first appender.
// A nil cfg uses DefaultConfig.
func NewController(cfg *Config, opts ...Option) (*Controller, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	kind, _ := ParseAppenderType(cfg.Appender)
	c := &Controller{
		cfg:               cfg,
		configuration:     newConfigurationFromConfig(cfg),
		appenderType:      kind,
		provider:          DefaultFileStoreProvider,
		sanitizer:         sanitizer.New().Policy(sanitizer.PolicyPreset(cfg.SanitizePolicy)),
		stdout:            os.Stdout,
		level:             Level(cfg.Level),
		canDeleteLogs:     cfg.CanDeleteLogs,
		loggingBeforeInit: cfg.LoggingBeforeInit,
		pii:               NewRedactor(int(cfg.PIICacheSize), time.Duration(cfg.PIICacheTTLS)*time.Second),
		loggers:           make(map[string]*Logger),
	}
	c.piiEnabled.Store(cfg.PIIHashEnabled)
	c.args.Store(cfg.ArgsFormat)

	for _, opt := range opts {
		opt(c)
	}

	c.appender = c.buildAppenderLocked(c.appenderType)
	return c, nil
}

// argsFormat returns how loggers render their variadic arguments
func (c *Controller) argsFormat() string {
	format, _ := c.args.Load().(string)
	return format
}

// newFormatter builds a formatter carrying the current thread-id handler
func (c *Controller) newFormatter() *formatter.Formatter {
	f := formatter.New(c.sanitizer).Type(c.cfg.ArgsFormat)
	f.SetThreadIDHandler(c.threadID)
	return f
}

func (c *Controller) buildAppenderLocked(kind AppenderType) Appender {
	return buildAppender(kind, appenderDeps{
		cfg:          c.configuration,
		store:        c.provider(),
		newFormatter: c.newFormatter,
		state:        &c.state,
		stdout:       c.stdout,
		internal:     c.internalLog,
	})
}

// replaceAppenderLocked closes the old appender before installing next
func (c *Controller) replaceAppenderLocked(next Appender) {
	if closer, ok := c.appender.(Closer); ok {
		closer.Close()
	}
	c.appender = next
}

// Log emits one record when logging is allowed and level passes the gate
func (c *Controller) Log(name string, level Level, file string, line int, function, message string) {
	if level <= LevelOff {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Closed.Load() || !c.loggingAllowedLocked() || level > c.level {
		return
	}
	c.appender.Append(Record{
		Logger:   name,
		Level:    level,
		File:     file,
		Line:     line,
		Function: function,
		Message:  message,
	})
}

func (c *Controller) loggingAllowedLocked() bool {
	return c.loggingBeforeInit || c.state.IsInitialized.Load()
}

// Init retargets the file set at path. Unflushed buffered lines survive the rebuild.
func (c *Controller) Init(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if path == "" {
		path = c.configuration.FullPath()
	}

	var held string
	if buffered, ok := c.appender.(Buffered); ok {
		held = buffered.GetBuffer()
		buffered.ClearBuffer()
	}

	c.configuration.SetFullPath(path)
	c.cfg.FilePath = path
	c.replaceAppenderLocked(c.buildAppenderLocked(c.appenderType))

	if buffered, ok := c.appender.(Buffered); ok && held != "" {
		buffered.AppendToBuffer(held)
	}
	c.state.IsInitialized.Store(true)
}

// SetAppenderType rebuilds the appender when kind differs from the current one
func (c *Controller) SetAppenderType(kind AppenderType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if kind == c.appenderType {
		return
	}
	c.flushLocked()
	c.appenderType = kind
	c.cfg.Appender = kind.String()
	c.replaceAppenderLocked(c.buildAppenderLocked(kind))
}

// AppenderType returns the kind of the active appender
func (c *Controller) AppenderType() AppenderType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appenderType
}

// SetBufferSize changes the buffer capacity, clamped to 1..5 MB, and rebuilds the appender
func (c *Controller) SetBufferSize(mb int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case mb > MaxBufferSizeMB:
		mb = MaxBufferSizeMB
	case mb < MinBufferSizeMB:
		mb = MinBufferSizeMB
	}
	if limit := c.configuration.MaxFileSizeMB(); mb > limit {
		mb = limit
	}
	if mb == c.configuration.BufferSizeMB() {
		return
	}
	c.flushLocked()

	c.configuration.SetBufferSizeMB(mb)
	c.cfg.BufferSizeMB = c.configuration.BufferSizeMB()
	c.replaceAppenderLocked(c.buildAppenderLocked(c.appenderType))
}

// BufferSize returns the buffer capacity in megabytes
func (c *Controller) BufferSize() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.configuration.BufferSizeMB()
}

// SetMaxNumberOfFiles changes how many rotated files are kept
func (c *Controller) SetMaxNumberOfFiles(n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configuration.SetMaxFileCount(n)
	c.cfg.MaxFileCount = c.configuration.MaxFileCount()
}

// MaxNumberOfFiles returns the rotated file count
func (c *Controller) MaxNumberOfFiles() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.configuration.MaxFileCount()
}

// SetFileWritingAllowed toggles disk writes for every appender
func (c *Controller) SetFileWritingAllowed(allowed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configuration.SetFileWritingAllowed(allowed)
	c.cfg.FileWritingAllowed = allowed
}

// FileWritingAllowed reports whether disk writes are enabled
func (c *Controller) FileWritingAllowed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.configuration.FileWritingAllowed()
}

// Flush forces a buffered appender to write; no-op for other kinds
func (c *Controller) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushLocked()
}

func (c *Controller) flushLocked() {
	if buffered, ok := c.appender.(Buffered); ok {
		buffered.FlushBuffer()
	}
}

// FlushBufferIfAllowed flushes a buffered appender, discarding its content when writing is disabled
func (c *Controller) FlushBufferIfAllowed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if buffered, ok := c.appender.(Buffered); ok {
		buffered.FlushBufferIfAllowed()
	}
}

// SetCanDeleteLogs gates DeleteLogs and DeleteMatchingLogs
func (c *Controller) SetCanDeleteLogs(allowed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.canDeleteLogs = allowed
	c.cfg.CanDeleteLogs = allowed
}

// CanDeleteLogs reports whether log deletion is permitted
func (c *Controller) CanDeleteLogs() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canDeleteLogs
}

// DeleteLogs removes the active file and every rotated file
func (c *Controller) DeleteLogs() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteLogsLocked()
}

func (c *Controller) deleteLogsLocked() error {
	if !c.canDeleteLogs {
		return fmtErrorf("log deletion is disabled")
	}
	// Release open handles so the files can go
	if closer, ok := c.appender.(Closer); ok {
		closer.Close()
	}
	n, err := deleteLogs(c.provider(), c.configuration.Directory(), c.configuration.FileName())
	c.state.TotalDeletions.Add(uint64(n))
	if err != nil {
		c.internalLog("failed to delete logs: %v", err)
	}
	return err
}

// DeleteMatchingLogs removes files in the log directory matching a '*' wildcard pattern
func (c *Controller) DeleteMatchingLogs(pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.canDeleteLogs {
		return fmtErrorf("log deletion is disabled")
	}
	if closer, ok := c.appender.(Closer); ok {
		closer.Close()
	}
	n, err := deleteMatchingLogs(c.provider(), c.configuration.Directory(), pattern)
	c.state.TotalDeletions.Add(uint64(n))
	if err != nil {
		c.internalLog("failed to delete logs matching '%s': %v", pattern, err)
	}
	return err
}

// DeleteLogsIfWritingNotAllowed drops buffered content and the file set when writing is disabled
func (c *Controller) DeleteLogsIfWritingNotAllowed() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.configuration.FileWritingAllowed() {
		return
	}
	if buffered, ok := c.appender.(Buffered); ok {
		buffered.ClearBuffer()
	}
	if c.canDeleteLogs {
		_ = c.deleteLogsLocked()
	}
}

// LogDirectory returns the directory holding the file set
func (c *Controller) LogDirectory() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.configuration.Directory()
}

// LogPath returns the active file path
func (c *Controller) LogPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.configuration.FullPath()
}

// SetLevel changes the gate
func (c *Controller) SetLevel(level Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = level
	c.cfg.Level = int64(level)
}

// Level returns the gate
func (c *Controller) Level() Level {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

// SetAppender installs a caller supplied appender; the previous one is flushed and closed
func (c *Controller) SetAppender(a Appender) {
	if a == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushLocked()
	a.SetThreadIDHandler(c.threadID)
	c.replaceAppenderLocked(a)
}

// Appender returns the active appender
func (c *Controller) Appender() Appender {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appender
}

// Buffered returns the active appender when it buffers, nil otherwise
func (c *Controller) Buffered() Buffered {
	c.mu.Lock()
	defer c.mu.Unlock()
	buffered, _ := c.appender.(Buffered)
	return buffered
}

// SetThreadIDHandler customizes the thread column for this and every future appender
func (c *Controller) SetThreadIDHandler(h formatter.ThreadIDHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.threadID = h
	c.appender.SetThreadIDHandler(h)
}

// ClearThreadIDHandler restores the goroutine id rendering
func (c *Controller) ClearThreadIDHandler() {
	c.SetThreadIDHandler(nil)
}

// SetPIIHashEnabled toggles PII redaction
func (c *Controller) SetPIIHashEnabled(enabled bool) {
	c.piiEnabled.Store(enabled)
}

// PIIHashEnabled reports whether PII redaction is on
func (c *Controller) PIIHashEnabled() bool {
	return c.piiEnabled.Load()
}

// ReplacePIIData returns the redaction token for text, or text itself when redaction is off
func (c *Controller) ReplacePIIData(text string) string {
	if text == "" {
		return ""
	}
	if !c.piiEnabled.Load() {
		return text
	}
	return c.pii.Replace(text)
}

// PIIDataList returns a copy of the cached text to token mappings
func (c *Controller) PIIDataList() map[string]string {
	return c.pii.List()
}

// SetLoggingBeforeInit allows records before Init is called
func (c *Controller) SetLoggingBeforeInit(allowed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loggingBeforeInit = allowed
	c.cfg.LoggingBeforeInit = allowed
}

// Initialized reports whether Init has run
func (c *Controller) Initialized() bool {
	return c.state.IsInitialized.Load()
}

// Config returns a copy of the controller's configuration
func (c *Controller) Config() *Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Clone()
}

// Stats returns a snapshot of the runtime counters
func (c *Controller) Stats() Stats {
	return c.state.snapshot()
}

// Close flushes, respecting the writing flag, and releases the appender. Later calls are no-ops.
func (c *Controller) Close() {
	if !c.state.Closed.CompareAndSwap(false, true) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if closer, ok := c.appender.(Closer); ok {
		closer.Close()
	}
	c.pii.Purge()
}

// internalLog handles writing internal diagnostics to stderr when enabled
func (c *Controller) internalLog(format string, args ...any) {
	if c.cfg == nil || !c.cfg.InternalErrorsToStderr {
		return
	}
	if len(format) == 0 || format[len(format)-1] != '\n' {
		format += "\n"
	}
	fmt.Fprintf(os.Stderr, "rlog: "+format, args...)
}
