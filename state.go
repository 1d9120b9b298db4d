// FILE: lixenwraith/rlog/state.go
package rlog

import (
	"sync/atomic"
)

// State holds the runtime counters shared by a controller and the appenders it builds
type State struct {
	IsInitialized atomic.Bool // Init has been called at least once
	Closed        atomic.Bool

	TotalLogsProcessed atomic.Uint64 // Records handed to an appender
	TotalBytesWritten  atomic.Uint64 // Bytes handed to a file store
	TotalRotations     atomic.Uint64 // Completed rollovers
	TotalWarnings      atomic.Uint64 // Delete/rename failures reported during rollover
	TotalFlushes       atomic.Uint64 // Buffer flushes that reached the file
	DroppedLogs        atomic.Uint64 // Lines discarded because writing was not allowed
	TotalDeletions     atomic.Uint64 // Files removed by DeleteLogs and DeleteMatchingLogs
}

// Stats is a point-in-time copy of State
type Stats struct {
	Initialized   bool
	LogsProcessed uint64
	BytesWritten  uint64
	Rotations     uint64
	Warnings      uint64
	Flushes       uint64
	DroppedLogs   uint64
	Deletions     uint64
}

// snapshot copies the counters
func (s *State) snapshot() Stats {
	return Stats{
		Initialized:   s.IsInitialized.Load(),
		LogsProcessed: s.TotalLogsProcessed.Load(),
		BytesWritten:  s.TotalBytesWritten.Load(),
		Rotations:     s.TotalRotations.Load(),
		Warnings:      s.TotalWarnings.Load(),
		Flushes:       s.TotalFlushes.Load(),
		DroppedLogs:   s.DroppedLogs.Load(),
		Deletions:     s.TotalDeletions.Load(),
	}
}
