// FILE: lixenwraith/rlog/buffered.go
package rlog

import (
	"bytes"
	"sync"

	"github.com/lixenwraith/rlog/formatter"
)

// BufferedAppender accumulates formatted lines in memory and hands them to a batch
// Rollover as one write. The buffer is framed by the begin and end sentinels so crash-dump
// tooling can locate it; content is kept apart from the framing and the frame is only
// assembled by Snapshot.
type BufferedAppender struct {
	mu        sync.Mutex
	cfg       *Configuration
	rollover  *Rollover
	formatter *formatter.Formatter
	state     *State

	begin   string
	end     string
	content bytes.Buffer
	limit   int
}

// NewBufferedAppender creates a buffered appender writing through store
func NewBufferedAppender(cfg *Configuration, store FileStore, f *formatter.Formatter) *BufferedAppender {
	return newBufferedAppender(cfg, store, f, nil)
}

func newBufferedAppender(cfg *Configuration, store FileStore, f *formatter.Formatter, state *State) *BufferedAppender {
	if f == nil {
		f = formatter.New()
	}
	if state == nil {
		state = &State{}
	}
	// Sentinels are configured reversed so the literal token lives only in the buffer
	b := &BufferedAppender{
		cfg:       cfg,
		rollover:  newRollover(cfg, store, f, true, state),
		formatter: f,
		state:     state,
		begin:     reverseString(cfg.BeginSentinel()),
		end:       reverseString(cfg.EndSentinel()),
	}
	b.limit = int(cfg.BufferSizeMB()*bytesPerMB) + len(b.begin) + len(b.end)
	b.content.Grow(int(cfg.BufferSizeMB() * bytesPerMB))
	return b
}

// Append formats r and buffers the line
func (b *BufferedAppender) Append(r Record) {
	b.mu.Lock()
	line := b.formatter.Format(r.formatterRecord())
	b.appendLocked(line)
	b.mu.Unlock()
	b.state.TotalLogsProcessed.Add(1)
}

// AppendToBuffer buffers an already formatted line, flushing first when it would reach capacity
func (b *BufferedAppender) AppendToBuffer(line string) {
	b.mu.Lock()
	b.appendLocked([]byte(line))
	b.mu.Unlock()
}

func (b *BufferedAppender) appendLocked(line []byte) {
	if b.sizeLocked()+len(line) >= b.limit {
		b.flushIfAllowedLocked()
	}
	b.content.Write(line)
}

// sizeLocked is the framed size: sentinels plus content
func (b *BufferedAppender) sizeLocked() int {
	return len(b.begin) + b.content.Len() + len(b.end)
}

// FlushBuffer writes the buffered content to disk regardless of the writing flag
func (b *BufferedAppender) FlushBuffer() {
	b.mu.Lock()
	b.flushLocked()
	b.mu.Unlock()
}

func (b *BufferedAppender) flushLocked() {
	if b.content.Len() == 0 {
		return
	}
	b.rollover.Write(b.content.Bytes())
	b.state.TotalFlushes.Add(1)
	b.content.Reset()
}

// FlushBufferIfAllowed flushes when writing is allowed, otherwise discards the content
func (b *BufferedAppender) FlushBufferIfAllowed() {
	b.mu.Lock()
	b.flushIfAllowedLocked()
	b.mu.Unlock()
}

func (b *BufferedAppender) flushIfAllowedLocked() {
	if b.cfg.FileWritingAllowed() {
		b.flushLocked()
		return
	}
	if n := b.content.Len(); n > 0 {
		b.state.DroppedLogs.Add(uint64(bytes.Count(b.content.Bytes(), []byte{'\n'})))
	}
	b.content.Reset()
}

// GetBuffer returns the unflushed content without the sentinels
func (b *BufferedAppender) GetBuffer() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content.String()
}

// ClearBuffer drops the unflushed content
func (b *BufferedAppender) ClearBuffer() {
	b.mu.Lock()
	b.content.Reset()
	b.mu.Unlock()
}

// Snapshot returns the whole framed buffer as external tooling sees it
func (b *BufferedAppender) Snapshot() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.begin + b.content.String() + b.end
}

// Capacity returns the framed size at which an append triggers a flush
func (b *BufferedAppender) Capacity() int {
	return b.limit
}

// SetThreadIDHandler changes how the thread column renders
func (b *BufferedAppender) SetThreadIDHandler(h formatter.ThreadIDHandler) {
	b.mu.Lock()
	b.formatter.SetThreadIDHandler(h)
	b.mu.Unlock()
}

// Close flushes, respecting the writing flag, and releases the file
func (b *BufferedAppender) Close() {
	b.mu.Lock()
	b.flushIfAllowedLocked()
	b.rollover.Close()
	b.mu.Unlock()
}
