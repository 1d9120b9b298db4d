// FILE: lixenwraith/rlog/configuration_test.go
package rlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		dir  string
		name string
	}{
		{"app.log", ".", "app.log"},
		{"logs/app.log", "logs", "app.log"},
		{"/var/log/app/app.log", "/var/log/app", "app.log"},
		{"/app.log", "/", "app.log"},
		{`C:\logs\app.log`, `C:\logs`, "app.log"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			dir, name := splitPath(tt.path)
			assert.Equal(t, tt.dir, dir)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestConfigurationClampsBuffer(t *testing.T) {
	c := NewConfiguration("logs/app.log", 2, 3, 5, "B", "E")

	assert.Equal(t, int64(2), c.BufferSizeMB())
	assert.Equal(t, 2*bytesPerMB, c.MaxFileSizeBytes())

	c.SetBufferSizeMB(1)
	assert.Equal(t, int64(1), c.BufferSizeMB())
	c.SetBufferSizeMB(4)
	assert.Equal(t, int64(2), c.BufferSizeMB())
}

func TestConfigurationSetters(t *testing.T) {
	c := NewConfiguration("logs/app.log", 1, 3, 1, "B", "E")
	assert.True(t, c.FileWritingAllowed())

	c.SetFullPath("/tmp/other/run.log")
	assert.Equal(t, "/tmp/other/run.log", c.FullPath())
	assert.Equal(t, "/tmp/other", c.Directory())
	assert.Equal(t, "run.log", c.FileName())

	c.SetMaxFileCount(-4)
	assert.Equal(t, int64(0), c.MaxFileCount())
	c.SetMaxFileCount(9)
	assert.Equal(t, int64(9), c.MaxFileCount())

	c.SetFileWritingAllowed(false)
	assert.False(t, c.FileWritingAllowed())
	assert.Equal(t, "B", c.BeginSentinel())
	assert.Equal(t, "E", c.EndSentinel())
}

func TestConfigurationFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FilePath = "out/x.log"
	cfg.FileWritingAllowed = false

	c := newConfigurationFromConfig(cfg)
	assert.Equal(t, "out", c.Directory())
	assert.Equal(t, "x.log", c.FileName())
	assert.False(t, c.FileWritingAllowed())
	assert.Equal(t, cfg.MaxFileCount, c.MaxFileCount())
}
