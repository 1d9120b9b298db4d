// FILE: lixenwraith/rlog/state_test.go
package rlog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateSnapshot(t *testing.T) {
	var s State
	s.IsInitialized.Store(true)
	s.TotalLogsProcessed.Add(3)
	s.TotalBytesWritten.Add(120)
	s.TotalRotations.Add(1)
	s.TotalWarnings.Add(2)
	s.TotalFlushes.Add(4)
	s.DroppedLogs.Add(5)
	s.TotalDeletions.Add(6)

	assert.Equal(t, Stats{
		Initialized:   true,
		LogsProcessed: 3,
		BytesWritten:  120,
		Rotations:     1,
		Warnings:      2,
		Flushes:       4,
		DroppedLogs:   5,
		Deletions:     6,
	}, s.snapshot())
}

func TestStateConcurrentCounters(t *testing.T) {
	var s State
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s.TotalLogsProcessed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(16000), s.snapshot().LogsProcessed)
}

func TestControllerStateAfterClose(t *testing.T) {
	c, _ := createTestController(t, nil)
	assert.True(t, c.Initialized())

	c.Close()
	assert.True(t, c.state.Closed.Load())
	assert.True(t, c.Stats().Initialized, "close keeps the initialized flag")
}
