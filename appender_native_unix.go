// FILE: lixenwraith/rlog/appender_native_unix.go

//go:build !windows && !plan9

package rlog

import (
	"log/syslog"
	"strings"
	"sync"

	"github.com/lixenwraith/rlog/formatter"
)

// NativeAppender forwards lines to the system log daemon
type NativeAppender struct {
	mu        sync.Mutex
	w         *syslog.Writer
	formatter *formatter.Formatter
	state     *State
}

// newNativeAppender dials syslog and falls back to the console appender when it is unreachable
func newNativeAppender(d appenderDeps) Appender {
	w, err := syslog.New(syslog.LOG_USER|syslog.LOG_INFO, internalLoggerName)
	if err != nil {
		if d.internal != nil {
			d.internal("syslog unavailable, using console appender: %v", err)
		}
		return newConsoleAppender(d.cfg, d.store, d.newFormatter(), d.state, d.stdout)
	}
	return &NativeAppender{w: w, formatter: d.newFormatter(), state: d.state}
}

// Append writes one line at the syslog severity matching r.Level
func (a *NativeAppender) Append(r Record) {
	a.mu.Lock()
	defer a.mu.Unlock()

	line := strings.TrimRight(string(a.formatter.Format(r.formatterRecord())), "\n")
	var err error
	switch r.Level {
	case LevelFatal:
		err = a.w.Crit(line)
	case LevelError:
		err = a.w.Err(line)
	case LevelWarning:
		err = a.w.Warning(line)
	case LevelInfo:
		err = a.w.Info(line)
	default:
		err = a.w.Debug(line)
	}
	a.state.TotalLogsProcessed.Add(1)
	if err == nil {
		a.state.TotalBytesWritten.Add(uint64(len(line)))
	}
}

func (a *NativeAppender) SetThreadIDHandler(h formatter.ThreadIDHandler) {
	a.mu.Lock()
	a.formatter.SetThreadIDHandler(h)
	a.mu.Unlock()
}

// Close disconnects from the daemon
func (a *NativeAppender) Close() {
	a.mu.Lock()
	_ = a.w.Close()
	a.mu.Unlock()
}
