// FILE: lixenwraith/rlog/appender_file.go
package rlog

import (
	"sync"

	"github.com/lixenwraith/rlog/formatter"
)

// BasicFileAppender appends every line to a fixed file in the log directory.
// It never rotates.
type BasicFileAppender struct {
	mu        sync.Mutex
	cfg       *Configuration
	store     FileStore
	formatter *formatter.Formatter
	state     *State
	directory string
	opened    bool
}

func newBasicFileAppender(cfg *Configuration, store FileStore, f *formatter.Formatter, state *State) *BasicFileAppender {
	return &BasicFileAppender{
		cfg:       cfg,
		store:     store,
		formatter: f,
		state:     state,
		directory: cfg.Directory(),
	}
}

// Append writes one formatted line
func (a *BasicFileAppender) Append(r Record) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.TotalLogsProcessed.Add(1)
	if !a.cfg.FileWritingAllowed() {
		a.state.DroppedLogs.Add(1)
		return
	}
	if !a.opened {
		if err := a.store.Open(a.directory, BasicFileName); err != nil {
			return
		}
		a.opened = true
	}
	line := a.formatter.Format(r.formatterRecord())
	if err := a.store.Write(line); err != nil {
		return
	}
	_ = a.store.Flush()
	a.state.TotalBytesWritten.Add(uint64(len(line)))
}

func (a *BasicFileAppender) SetThreadIDHandler(h formatter.ThreadIDHandler) {
	a.mu.Lock()
	a.formatter.SetThreadIDHandler(h)
	a.mu.Unlock()
}

// Close releases the file
func (a *BasicFileAppender) Close() {
	a.mu.Lock()
	_ = a.store.Close()
	a.opened = false
	a.mu.Unlock()
}

// FileAppender writes each line straight through a continuous Rollover
type FileAppender struct {
	mu        sync.Mutex
	cfg       *Configuration
	rollover  *Rollover
	formatter *formatter.Formatter
	state     *State
}

func newFileAppender(cfg *Configuration, store FileStore, f *formatter.Formatter, state *State) *FileAppender {
	return &FileAppender{
		cfg:       cfg,
		rollover:  newRollover(cfg, store, f, false, state),
		formatter: f,
		state:     state,
	}
}

// Append writes one formatted line, rotating when the file is full
func (a *FileAppender) Append(r Record) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.TotalLogsProcessed.Add(1)
	if !a.cfg.FileWritingAllowed() {
		a.state.DroppedLogs.Add(1)
		return
	}
	a.rollover.Write(a.formatter.Format(r.formatterRecord()))
}

// writeLine sends an already formatted line through the rollover
func (a *FileAppender) writeLine(line []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.cfg.FileWritingAllowed() {
		a.state.DroppedLogs.Add(1)
		return
	}
	a.rollover.Write(line)
}

func (a *FileAppender) SetThreadIDHandler(h formatter.ThreadIDHandler) {
	a.mu.Lock()
	a.formatter.SetThreadIDHandler(h)
	a.mu.Unlock()
}

// Close releases the file
func (a *FileAppender) Close() {
	a.mu.Lock()
	a.rollover.Close()
	a.mu.Unlock()
}
