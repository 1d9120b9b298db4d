// FILE: lixenwraith/rlog/appender_console.go
package rlog

import (
	"io"
	"os"
	"sync"

	"github.com/lixenwraith/rlog/formatter"
)

// ConsoleAppender echoes each line to a console writer and keeps the rotated file set
type ConsoleAppender struct {
	mu        sync.Mutex
	cfg       *Configuration
	out       io.Writer
	file      *FileAppender
	formatter *formatter.Formatter
	state     *State
}

func newConsoleAppender(cfg *Configuration, store FileStore, f *formatter.Formatter, state *State, out io.Writer) *ConsoleAppender {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleAppender{
		cfg:       cfg,
		out:       out,
		file:      newFileAppender(cfg, store, f, state),
		formatter: f,
		state:     state,
	}
}

// Append formats once, prints the line and writes it to the active file
func (a *ConsoleAppender) Append(r Record) {
	a.mu.Lock()
	line := a.formatter.Format(r.formatterRecord())
	if a.cfg.FileWritingAllowed() {
		_, _ = a.out.Write(line)
	}
	a.mu.Unlock()

	a.state.TotalLogsProcessed.Add(1)
	a.file.writeLine(line)
}

func (a *ConsoleAppender) SetThreadIDHandler(h formatter.ThreadIDHandler) {
	a.mu.Lock()
	a.formatter.SetThreadIDHandler(h)
	a.mu.Unlock()
}

// Close releases the file
func (a *ConsoleAppender) Close() {
	a.file.Close()
}
