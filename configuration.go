// FILE: lixenwraith/rlog/configuration.go
package rlog

import (
	"strings"
	"sync"
	"sync/atomic"
)

// Configuration is the live file-target view shared by the controller and its appenders.
// The controller is its only writer.
type Configuration struct {
	mu            sync.RWMutex
	fullPath      string
	directory     string
	fileName      string
	maxFileSizeMB int64
	maxFileCount  int64
	bufferSizeMB  int64
	beginSentinel string
	endSentinel   string

	writingAllowed atomic.Bool
}

// NewConfiguration builds a Configuration. The buffer never exceeds one file's worth.
func NewConfiguration(fullPath string, maxFileSizeMB, maxFileCount, bufferSizeMB int64, beginSentinel, endSentinel string) *Configuration {
	if bufferSizeMB > maxFileSizeMB {
		bufferSizeMB = maxFileSizeMB
	}
	c := &Configuration{
		maxFileSizeMB: maxFileSizeMB,
		maxFileCount:  maxFileCount,
		bufferSizeMB:  bufferSizeMB,
		beginSentinel: beginSentinel,
		endSentinel:   endSentinel,
	}
	c.setFullPathLocked(fullPath)
	c.writingAllowed.Store(true)
	return c
}

// newConfigurationFromConfig derives the runtime view from a validated Config
func newConfigurationFromConfig(cfg *Config) *Configuration {
	c := NewConfiguration(cfg.FilePath, cfg.MaxFileSizeMB, cfg.MaxFileCount, cfg.BufferSizeMB,
		cfg.BeginSentinel, cfg.EndSentinel)
	c.writingAllowed.Store(cfg.FileWritingAllowed)
	return c
}

// splitPath splits on the last separator; a bare file name lives in the working directory
func splitPath(fullPath string) (dir, name string) {
	i := strings.LastIndexAny(fullPath, `/\`)
	if i < 0 {
		return ".", fullPath
	}
	if i == 0 {
		return fullPath[:1], fullPath[1:]
	}
	return fullPath[:i], fullPath[i+1:]
}

func (c *Configuration) setFullPathLocked(fullPath string) {
	c.fullPath = fullPath
	c.directory, c.fileName = splitPath(fullPath)
}

// SetFullPath replaces the file target and re-derives directory and file name
func (c *Configuration) SetFullPath(fullPath string) {
	c.mu.Lock()
	c.setFullPathLocked(fullPath)
	c.mu.Unlock()
}

// FullPath returns the active file path as configured
func (c *Configuration) FullPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fullPath
}

// Directory returns the directory holding the log file set
func (c *Configuration) Directory() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.directory
}

// FileName returns the base name of the active log file
func (c *Configuration) FileName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fileName
}

// MaxFileSizeMB returns the active file cap in megabytes
func (c *Configuration) MaxFileSizeMB() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxFileSizeMB
}

// MaxFileSizeBytes returns the active file cap in bytes
func (c *Configuration) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB() * bytesPerMB
}

// MaxFileCount returns the number of rotated files kept
func (c *Configuration) MaxFileCount() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxFileCount
}

// SetMaxFileCount changes the number of rotated files kept
func (c *Configuration) SetMaxFileCount(n int64) {
	if n < 0 {
		n = 0
	}
	c.mu.Lock()
	c.maxFileCount = n
	c.mu.Unlock()
}

// BufferSizeMB returns the buffered appender capacity in megabytes
func (c *Configuration) BufferSizeMB() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bufferSizeMB
}

// SetBufferSizeMB changes the buffer capacity, bounded by the file cap
func (c *Configuration) SetBufferSizeMB(mb int64) {
	c.mu.Lock()
	if mb > c.maxFileSizeMB {
		mb = c.maxFileSizeMB
	}
	c.bufferSizeMB = mb
	c.mu.Unlock()
}

// BeginSentinel returns the configured begin token
func (c *Configuration) BeginSentinel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.beginSentinel
}

// EndSentinel returns the configured end token
func (c *Configuration) EndSentinel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endSentinel
}

// FileWritingAllowed reports whether appenders may write to disk
func (c *Configuration) FileWritingAllowed() bool {
	return c.writingAllowed.Load()
}

// SetFileWritingAllowed toggles disk writes
func (c *Configuration) SetFileWritingAllowed(allowed bool) {
	c.writingAllowed.Store(allowed)
}
