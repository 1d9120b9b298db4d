// FILE: lixenwraith/rlog/logger.go
package rlog

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/rlog/formatter"
)

// Logger is a named source of records. Its own level is checked before the controller gate.
type Logger struct {
	name       string
	level      atomic.Int64
	controller *Controller
}

// GetLogger returns the logger registered under name, creating it at DEBUG.
// An empty name has no logger and returns nil.
func (c *Controller) GetLogger(name string) *Logger {
	if name == "" {
		return nil
	}
	return c.logger(name)
}

// RootLogger returns the logger with the empty name
func (c *Controller) RootLogger() *Logger {
	return c.logger("")
}

func (c *Controller) logger(name string) *Logger {
	c.loggersMu.Lock()
	defer c.loggersMu.Unlock()

	if l, ok := c.loggers[name]; ok {
		return l
	}
	l := &Logger{
		name:       name,
		controller: c,
	}
	l.level.Store(int64(DefaultLevel))
	c.loggers[name] = l
	return l
}

// Loggers returns the names of every registered logger
func (c *Controller) Loggers() []string {
	c.loggersMu.Lock()
	defer c.loggersMu.Unlock()

	names := make([]string, 0, len(c.loggers))
	for name := range c.loggers {
		names = append(names, name)
	}
	return names
}

// Name returns the logger's name
func (l *Logger) Name() string {
	return l.name
}

// Level returns the logger's own level
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// SetLevel changes the logger's own level
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int64(level))
}

// Enabled reports whether a record at level passes this logger
func (l *Logger) Enabled(level Level) bool {
	return level > LevelOff && level <= l.Level()
}

func (l *Logger) DebugEnabled() bool { return l.Enabled(LevelDebug) }
func (l *Logger) TraceEnabled() bool { return l.Enabled(LevelTrace) }

// Log sends a pre-rendered message with explicit source position
func (l *Logger) Log(level Level, file string, line int, function, message string) {
	if !l.Enabled(level) {
		return
	}
	l.controller.Log(l.name, level, file, line, function, trimMessage(message))
}

// log renders args and captures the caller two frames up
func (l *Logger) log(level Level, args ...any) {
	if !l.Enabled(level) {
		return
	}
	file, line, function := callerInfo(2)
	l.controller.Log(l.name, level, file, line, function, trimMessage(formatter.Sprint(l.controller.argsFormat(), args...)))
}

// logf renders a printf style message and captures the caller two frames up
func (l *Logger) logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	file, line, function := callerInfo(2)
	l.controller.Log(l.name, level, file, line, function, trimMessage(fmt.Sprintf(format, args...)))
}

func (l *Logger) Fatal(args ...any) { l.log(LevelFatal, args...) }
func (l *Logger) Error(args ...any) { l.log(LevelError, args...) }
func (l *Logger) Warn(args ...any)  { l.log(LevelWarning, args...) }
func (l *Logger) Info(args ...any)  { l.log(LevelInfo, args...) }
func (l *Logger) Debug(args ...any) { l.log(LevelDebug, args...) }
func (l *Logger) Trace(args ...any) { l.log(LevelTrace, args...) }

func (l *Logger) Fatalf(format string, args ...any) { l.logf(LevelFatal, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarning, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Tracef(format string, args ...any) { l.logf(LevelTrace, format, args...) }

// Controller returns the controller this logger writes through
func (l *Logger) Controller() *Controller {
	return l.controller
}

// PoolLogger adapts l to the pool diagnostics hook
func PoolLogger(l *Logger) func(format string, args ...any) {
	if l == nil {
		return func(string, ...any) {}
	}
	return func(format string, args ...any) {
		l.logf(LevelError, format, args...)
	}
}
