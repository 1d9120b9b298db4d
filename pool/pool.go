// FILE: lixenwraith/rlog/pool/pool.go
package pool

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrPoolStopped is returned when submitting to a pool that was shut down
var ErrPoolStopped = errors.New("pool: pool is stopped")

// Pool runs tasks on an elastic set of worker goroutines. Urgent tasks are dequeued before
// normal ones; each queue is FIFO. Workers above the minimum exit after the expiry period idle.
type Pool struct {
	min    int
	max    int
	expiry time.Duration
	opts   options

	mu     sync.Mutex
	cond   *sync.Cond
	normal []job
	urgent []job
	live   int // Started workers that have not exited
	idle   int // Workers waiting for work
	active int // Workers executing a task

	stopped  atomic.Bool
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a pool and starts min workers. max is at least 1 and min is bounded by max.
// A non-positive expiry keeps every worker alive until shutdown.
func New(min, max int, expiry time.Duration, opts ...Option) *Pool {
	if max < 1 {
		max = 1
	}
	if min < 0 {
		min = 0
	}
	if min > max {
		min = max
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	p := &Pool{min: min, max: max, expiry: expiry, opts: o}
	p.cond = sync.NewCond(&p.mu)

	p.mu.Lock()
	for i := 0; i < min; i++ {
		p.spawnLocked()
	}
	p.mu.Unlock()
	return p
}

// Enqueue queues task. A blocking enqueue returns once the task has run, or once it was
// dropped by ClearQueue or Shutdown.
func (p *Pool) Enqueue(task Task, blocking, urgent bool) error {
	if task == nil {
		return nil
	}

	p.mu.Lock()
	if p.stopped.Load() {
		p.mu.Unlock()
		return ErrPoolStopped
	}

	j := job{task: task}
	if blocking {
		j.done = NewEvent(false)
	}
	if urgent {
		p.urgent = append(p.urgent, j)
	} else {
		p.normal = append(p.normal, j)
	}

	// Signaled workers stay counted as idle until they wake, so queued tasks beyond the
	// idle count need a new worker
	if p.idle > 0 {
		p.cond.Signal()
	}
	if len(p.urgent)+len(p.normal) > p.idle && p.live < p.max {
		p.spawnLocked()
	}
	p.mu.Unlock()

	if blocking {
		j.done.Wait()
	}
	return nil
}

// Submit queues a normal task without waiting
func (p *Pool) Submit(task Task) error {
	return p.Enqueue(task, false, false)
}

// SubmitUrgent queues a task ahead of every normal task without waiting
func (p *Pool) SubmitUrgent(task Task) error {
	return p.Enqueue(task, false, true)
}

// SubmitAndWait queues a normal task and waits for it to finish
func (p *Pool) SubmitAndWait(task Task) error {
	return p.Enqueue(task, true, false)
}

// SubmitFunc queues fn as a normal task
func (p *Pool) SubmitFunc(fn func()) error {
	return p.Submit(TaskFunc(fn))
}

// ClearQueue discards every task not yet started
func (p *Pool) ClearQueue() {
	p.mu.Lock()
	dropped := p.takeQueuedLocked()
	p.mu.Unlock()

	for _, j := range dropped {
		j.release()
	}
}

func (p *Pool) takeQueuedLocked() []job {
	dropped := make([]job, 0, len(p.urgent)+len(p.normal))
	dropped = append(dropped, p.urgent...)
	dropped = append(dropped, p.normal...)
	p.urgent = nil
	p.normal = nil
	return dropped
}

// QueueSize returns the number of tasks waiting in both queues
func (p *Pool) QueueSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.urgent) + len(p.normal)
}

// Len returns the number of live workers
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// Active returns the number of workers executing a task
func (p *Pool) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Stopped reports whether Shutdown was called
func (p *Pool) Stopped() bool {
	return p.stopped.Load()
}

// Shutdown drops queued tasks, lets running tasks finish and waits for every worker to exit.
// It must not be called from inside a task.
func (p *Pool) Shutdown() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopped.Store(true)
		dropped := p.takeQueuedLocked()
		p.cond.Broadcast()
		p.mu.Unlock()

		for _, j := range dropped {
			j.release()
		}
		p.wg.Wait()
	})
}

// Close shuts the pool down
func (p *Pool) Close() error {
	p.Shutdown()
	return nil
}

func (p *Pool) spawnLocked() {
	p.live++
	p.wg.Add(1)
	go p.worker()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	p.mu.Lock()
	for {
		j, ok := p.nextLocked()
		if !ok {
			p.live--
			p.mu.Unlock()
			return
		}
		p.active++
		p.mu.Unlock()

		// Shutdown may have raced in after the dequeue
		if !p.stopped.Load() {
			p.run(j.task)
		}
		j.release()

		p.mu.Lock()
		p.active--
	}
}

// nextLocked waits for the next task, urgent first. It returns false when the worker should
// exit: on shutdown, or after the expiry period idle while above the minimum.
func (p *Pool) nextLocked() (job, bool) {
	var deadline time.Time
	for {
		if p.stopped.Load() {
			return job{}, false
		}
		if len(p.urgent) > 0 {
			j := p.urgent[0]
			p.urgent[0] = job{}
			p.urgent = p.urgent[1:]
			return j, true
		}
		if len(p.normal) > 0 {
			j := p.normal[0]
			p.normal[0] = job{}
			p.normal = p.normal[1:]
			return j, true
		}

		if p.expiry <= 0 || p.live <= p.min {
			deadline = time.Time{}
			p.idle++
			p.cond.Wait()
			p.idle--
			continue
		}

		if deadline.IsZero() {
			deadline = time.Now().Add(p.expiry)
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return job{}, false
		}
		p.waitFor(remaining)
	}
}

// waitFor waits on the queue condition for at most d
func (p *Pool) waitFor(d time.Duration) {
	timer := time.AfterFunc(d, func() {
		p.mu.Lock()
		p.cond.Broadcast()
		p.mu.Unlock()
	})
	p.idle++
	p.cond.Wait()
	p.idle--
	timer.Stop()
}

// run executes task; a panic is reported and the worker keeps going
func (p *Pool) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			name := taskName(task)
			switch {
			case p.opts.name != "" && name != "":
				p.opts.logf("pool %s: task %s panicked: %v", p.opts.name, name, r)
			case p.opts.name != "":
				p.opts.logf("pool %s: task panicked: %v", p.opts.name, r)
			case name != "":
				p.opts.logf("task %s panicked: %v", name, r)
			default:
				p.opts.logf("task panicked: %v", r)
			}
		}
	}()
	task.Execute()
}
