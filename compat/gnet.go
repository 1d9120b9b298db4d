// FILE: lixenwraith/rlog/compat/gnet.go
package compat

import (
	"fmt"
	"os"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/lixenwraith/rlog"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps an rlog.Logger to implement the gnet logging.Logger interface
type GnetAdapter struct {
	logger       *rlog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *rlog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	emit(a.logger, rlog.LevelDebug, gnetSource, format, args...)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	emit(a.logger, rlog.LevelInfo, gnetSource, format, args...)
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	emit(a.logger, rlog.LevelWarning, gnetSource, format, args...)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	emit(a.logger, rlog.LevelError, gnetSource, format, args...)
}

// Fatalf logs at fatal level, flushes the buffer and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	emit(a.logger, rlog.LevelFatal, gnetSource, format, args...)

	// Ensure log is on disk before exit
	a.logger.Controller().Flush()

	if a.fatalHandler != nil {
		a.fatalHandler(fmt.Sprintf(format, args...))
	}
}
