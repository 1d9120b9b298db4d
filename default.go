// FILE: lixenwraith/rlog/default.go
package rlog

import (
	"sync"

	"github.com/lixenwraith/rlog/formatter"
)

// Process-wide controller behind the package-level functions
var (
	instanceMu sync.Mutex
	instance   *Controller
)

// Instance returns the shared controller, creating it with DefaultConfig on first use
func Instance() *Controller {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance == nil {
		// DefaultConfig always validates
		instance, _ = NewController(nil)
	}
	return instance
}

// SetInstance replaces the shared controller; the previous one is closed
func SetInstance(c *Controller) {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance != nil && instance != c {
		instance.Close()
	}
	instance = c
}

// ResetInstance closes and drops the shared controller; the next Instance call creates a fresh one
func ResetInstance() {
	SetInstance(nil)
}

// GetLogger returns the named logger of the shared controller, nil for an empty name
func GetLogger(name string) *Logger {
	return Instance().GetLogger(name)
}

// RootLogger returns the root logger of the shared controller
func RootLogger() *Logger {
	return Instance().RootLogger()
}

// SetLevel sets a logger's own level; nil is ignored
func SetLevel(l *Logger, level Level) {
	if l == nil {
		return
	}
	l.SetLevel(level)
}

// GetLevel returns a logger's own level, LevelOff for nil
func GetLevel(l *Logger) Level {
	if l == nil {
		return LevelOff
	}
	return l.Level()
}

// Log sends a pre-rendered message through l; nil is ignored
func Log(l *Logger, level Level, file string, line int, function, message string) {
	if l == nil {
		return
	}
	l.Log(level, file, line, function, message)
}

// Flush forces the shared controller's buffer to disk
func Flush() {
	Instance().Flush()
}

// Initialize points the shared controller at path
func Initialize(path string) {
	Instance().Init(path)
}

// SetThreadIDHandler installs a thread-id hook on the shared controller
func SetThreadIDHandler(h formatter.ThreadIDHandler) {
	Instance().SetThreadIDHandler(h)
}

// ClearThreadIDHandler restores the default thread-id rendering
func ClearThreadIDHandler() {
	Instance().ClearThreadIDHandler()
}

// ReplacePIIData redacts text through the shared controller
func ReplacePIIData(text string) string {
	return Instance().ReplacePIIData(text)
}
