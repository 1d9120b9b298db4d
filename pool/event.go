// FILE: lixenwraith/rlog/pool/event.go
package pool

import (
	"sync"
	"time"
)

// Event is a signal that goroutines wait on. An auto-reset event releases one waiter per Set
// and clears itself; a manual-reset event stays signaled until Reset.
type Event struct {
	mu        sync.Mutex
	cond      *sync.Cond
	signaled  bool
	autoReset bool
}

// NewEvent creates an unsignaled event
func NewEvent(autoReset bool) *Event {
	e := &Event{autoReset: autoReset}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// Set signals the event
func (e *Event) Set() {
	e.mu.Lock()
	e.signaled = true
	if e.autoReset {
		e.cond.Signal()
	} else {
		e.cond.Broadcast()
	}
	e.mu.Unlock()
}

// Reset clears the signal
func (e *Event) Reset() {
	e.mu.Lock()
	e.signaled = false
	e.mu.Unlock()
}

// IsSet reports the signal without consuming it
func (e *Event) IsSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.signaled
}

// Wait blocks until the event is signaled
func (e *Event) Wait() {
	e.mu.Lock()
	for !e.signaled {
		e.cond.Wait()
	}
	e.consumeLocked()
	e.mu.Unlock()
}

// TimedWait waits at most ms milliseconds and reports whether the event was signaled.
// A negative timeout returns false at once; zero polls.
func (e *Event) TimedWait(ms int) bool {
	if ms < 0 {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.signaled {
		e.consumeLocked()
		return true
	}
	if ms == 0 {
		return false
	}

	timeout := time.Duration(ms) * time.Millisecond
	deadline := time.Now().Add(timeout)
	timer := time.AfterFunc(timeout, func() {
		e.mu.Lock()
		e.cond.Broadcast()
		e.mu.Unlock()
	})
	defer timer.Stop()

	for !e.signaled && time.Now().Before(deadline) {
		e.cond.Wait()
	}
	if !e.signaled {
		return false
	}
	e.consumeLocked()
	return true
}

func (e *Event) consumeLocked() {
	if e.autoReset {
		e.signaled = false
	}
}
