// FILE: lixenwraith/rlog/appender.go
package rlog

import (
	"io"
	"strings"

	"github.com/lixenwraith/rlog/formatter"
)

// Appender takes a record, formats it and durably emits it
type Appender interface {
	Append(r Record)
	SetThreadIDHandler(h formatter.ThreadIDHandler)
}

// Optional appender capabilities discovered by the controller
type (
	// Buffered appenders hold lines in memory until flushed
	Buffered interface {
		Appender
		FlushBuffer()
		FlushBufferIfAllowed()
		GetBuffer() string
		ClearBuffer()
		AppendToBuffer(line string)
	}

	// Closer releases files; buffered appenders flush first
	Closer interface {
		Close()
	}
)

// AppenderType selects which concrete appender the controller builds
type AppenderType int

const (
	AppenderBasicFile AppenderType = iota
	AppenderBuffered
	AppenderFile
	AppenderConsole
	AppenderNative // Platform log; syslog where available, console otherwise
)

// String returns the config name of the appender type
func (t AppenderType) String() string {
	switch t {
	case AppenderBasicFile:
		return "basic_file"
	case AppenderBuffered:
		return "buffered"
	case AppenderFile:
		return "file"
	case AppenderConsole:
		return "console"
	case AppenderNative:
		return "native"
	default:
		return "unknown"
	}
}

// ParseAppenderType converts a config name to an AppenderType
func ParseAppenderType(s string) (AppenderType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic_file", "basicfile", "basic":
		return AppenderBasicFile, nil
	case "buffered":
		return AppenderBuffered, nil
	case "file":
		return AppenderFile, nil
	case "console", "console_log", "consolelog":
		return AppenderConsole, nil
	case "native", "syslog":
		return AppenderNative, nil
	default:
		return 0, fmtErrorf("invalid appender: '%s' (use basic_file, buffered, file, console, or native)", s)
	}
}

// appenderDeps carries what every appender build needs
type appenderDeps struct {
	cfg          *Configuration
	store        FileStore
	newFormatter func() *formatter.Formatter
	state        *State
	stdout       io.Writer
	internal     func(format string, args ...any)
}

// buildAppender constructs the appender variant for kind
func buildAppender(kind AppenderType, d appenderDeps) Appender {
	switch kind {
	case AppenderBasicFile:
		return newBasicFileAppender(d.cfg, d.store, d.newFormatter(), d.state)
	case AppenderFile:
		return newFileAppender(d.cfg, d.store, d.newFormatter(), d.state)
	case AppenderConsole:
		return newConsoleAppender(d.cfg, d.store, d.newFormatter(), d.state, d.stdout)
	case AppenderNative:
		return newNativeAppender(d)
	default:
		return newBufferedAppender(d.cfg, d.store, d.newFormatter(), d.state)
	}
}
