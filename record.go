// FILE: lixenwraith/rlog/record.go
package rlog

import (
	"time"

	"github.com/lixenwraith/rlog/formatter"
)

// Record is one log event on its way to an appender
type Record struct {
	Logger   string
	Level    Level
	File     string
	Line     int
	Function string
	Message  string
	Time     time.Time // Zero means "now" at format time
}

// formatterRecord converts to the formatter's representation
func (r Record) formatterRecord() formatter.Record {
	return formatter.Record{
		Time:     r.Time,
		Level:    int64(r.Level),
		File:     r.File,
		Line:     r.Line,
		Logger:   r.Logger,
		Function: r.Function,
		Message:  r.Message,
	}
}
