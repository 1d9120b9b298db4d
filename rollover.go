// FILE: lixenwraith/rlog/rollover.go
package rlog

import (
	"bytes"

	"github.com/lixenwraith/rlog/formatter"
)

// Rollover appends text to the active log file and rotates the file set
// (name -> name.1 -> ... -> name.N) whenever a write would exceed the size cap.
// It is not safe for concurrent use; the owning appender serializes access.
type Rollover struct {
	cfg       *Configuration
	store     FileStore
	formatter *formatter.Formatter
	state     *State
	batch     bool

	directory    string
	fileName     string
	maxSizeBytes int64

	opened       bool
	writtenBytes int64
}

// NewRollover creates a rollover writer over store. Batch mode opens and closes the file on
// every call and trusts the on-disk size; continuous mode keeps the file open and tracks
// the written byte count.
func NewRollover(cfg *Configuration, store FileStore, f *formatter.Formatter, batch bool) *Rollover {
	return newRollover(cfg, store, f, batch, nil)
}

func newRollover(cfg *Configuration, store FileStore, f *formatter.Formatter, batch bool, state *State) *Rollover {
	if f == nil {
		f = formatter.New()
	}
	if state == nil {
		state = &State{}
	}
	r := &Rollover{
		cfg:          cfg,
		store:        store,
		formatter:    f,
		state:        state,
		batch:        batch,
		directory:    cfg.Directory(),
		fileName:     cfg.FileName(),
		maxSizeBytes: cfg.MaxFileSizeBytes(),
	}
	return r
}

// Write writes all of text
func (r *Rollover) Write(text []byte) {
	r.WriteRange(text, 0, len(text))
}

// WriteRange writes text[start:start+length]
func (r *Rollover) WriteRange(text []byte, start, length int) {
	if start < 0 || length <= 0 || start >= len(text) {
		return
	}
	if start+length > len(text) {
		length = len(text) - start
	}
	chunk := text[start : start+length]

	if r.batch {
		r.batchWrite(chunk)
	} else {
		r.continuousWrite(chunk)
	}
}

// Close releases the open file, if any
func (r *Rollover) Close() {
	_ = r.store.Close()
	r.opened = false
	r.writtenBytes = 0
}

// Path returns the directory and file name this rollover writes to
func (r *Rollover) Path() (string, string) {
	return r.directory, r.fileName
}

func (r *Rollover) batchWrite(chunk []byte) {
	if err := r.store.Open(r.directory, r.fileName); err != nil {
		return
	}
	size := r.store.Size(r.directory, r.fileName)
	r.fillAndRotate(chunk, size, false)
	_ = r.store.Close()
	r.opened = false
}

func (r *Rollover) continuousWrite(chunk []byte) {
	if !r.opened {
		if err := r.store.Open(r.directory, r.fileName); err != nil {
			return
		}
		r.opened = true
		r.writtenBytes = r.store.Size(r.directory, r.fileName)
	}

	n := int64(len(chunk))
	switch {
	case r.writtenBytes+n <= r.maxSizeBytes:
		r.write(chunk)
		r.writtenBytes += n
	case n <= r.maxSizeBytes:
		// Chunk goes to the fresh file, split again only when warning lines took its room
		size := r.doRollover()
		if !r.opened {
			return
		}
		r.writtenBytes = r.fillAndRotate(chunk, size, true)
	default:
		r.writtenBytes = r.fillAndRotate(chunk, r.writtenBytes, false)
	}
	_ = r.store.Flush()
}

// fillAndRotate writes chunk into an active file currently holding size bytes. Whenever the
// rest would overflow, the complete lines that fit are written and the file is rotated.
// Lines are never split. rotated tells whether the active file was just rotated in.
// Returns the resulting active file size.
func (r *Rollover) fillAndRotate(chunk []byte, size int64, rotated bool) int64 {
	for size+int64(len(chunk)) > r.maxSizeBytes {
		fit := 0
		if remaining := r.maxSizeBytes - size; remaining > 0 {
			fit = lastLineThatFits(chunk, remaining)
		}
		if fit == 0 && (rotated || size == 0) {
			// A single line longer than a whole file
			break
		}
		if fit > 0 {
			r.write(chunk[:fit])
			chunk = chunk[fit:]
		}
		size = r.doRollover()
		if !r.opened {
			return 0
		}
		rotated = true
	}
	if len(chunk) > 0 {
		r.write(chunk)
		size += int64(len(chunk))
	}
	return size
}

// lastLineThatFits returns the length of the longest prefix of chunk that ends with '\n'
// and is at most capacity bytes, 0 when none
func lastLineThatFits(chunk []byte, capacity int64) int {
	limit := len(chunk)
	if capacity < int64(limit) {
		limit = int(capacity)
	}
	if i := bytes.LastIndexByte(chunk[:limit], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// doRollover rotates the file set and reopens the active file truncated.
// Delete and rename failures do not abort rotation; they are written as warning
// lines at the head of the new file. Returns the bytes written to the new file.
func (r *Rollover) doRollover() int64 {
	_ = r.store.Close()
	r.opened = false

	dir, name := r.directory, r.fileName
	maxCount := r.cfg.MaxFileCount()
	var warnings [][]byte

	for _, n := range residualSuffixes(r.store, dir, name, maxCount) {
		if err := r.store.Delete(dir, suffixedName(name, n)); err != nil {
			warnings = append(warnings, r.warning("Error while deleting: "+suffixedName(name, n)))
		}
	}

	if maxCount > 0 {
		oldest := suffixedName(name, maxCount)
		if err := r.store.Delete(dir, oldest); err != nil {
			warnings = append(warnings, r.warning("Error while deleting: "+oldest))
		}

		for i := maxCount; i > 0; i-- {
			from := name
			if i-1 != 0 {
				from = suffixedName(name, i-1)
			}
			to := suffixedName(name, i)
			if err := r.store.Rename(dir, from, to); err != nil {
				warnings = append(warnings, r.warning("Error while renaming: "+to))
			}
		}
	}

	if err := r.store.OpenOverwrite(dir, name); err != nil {
		return 0
	}
	r.opened = true
	r.state.TotalRotations.Add(1)

	var written int64
	for _, w := range warnings {
		r.write(w)
		written += int64(len(w))
	}
	r.state.TotalWarnings.Add(uint64(len(warnings)))
	return written
}

// warning formats a rotation failure with the store's last error
func (r *Rollover) warning(msg string) []byte {
	file, line, function := callerInfo(1)
	return r.formatter.Format(formatter.Record{
		Level:    int64(LevelWarning),
		File:     file,
		Line:     line,
		Logger:   internalLoggerName,
		Function: function,
		Message:  msg + " - " + r.store.LastError(),
	})
}

func (r *Rollover) write(p []byte) {
	if err := r.store.Write(p); err != nil {
		return
	}
	r.state.TotalBytesWritten.Add(uint64(len(p)))
}
