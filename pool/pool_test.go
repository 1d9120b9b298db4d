// FILE: lixenwraith/rlog/pool/pool_test.go
package pool

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder collects task ids in execution order
type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) task(id string) Task {
	return TaskFunc(func() {
		r.mu.Lock()
		r.order = append(r.order, id)
		r.mu.Unlock()
	})
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// gate blocks the pool's only worker until released
func gate(t *testing.T, p *Pool) (release func()) {
	t.Helper()
	started := make(chan struct{})
	hold := make(chan struct{})
	require.NoError(t, p.Submit(TaskFunc(func() {
		close(started)
		<-hold
	})))
	<-started
	return func() { close(hold) }
}

func TestSingleWorkerRunsInSubmissionOrder(t *testing.T) {
	p := New(1, 1, 0)
	defer p.Shutdown()

	rec := &recorder{}
	require.NoError(t, p.Submit(rec.task("a")))
	require.NoError(t, p.Submit(rec.task("b")))
	require.NoError(t, p.SubmitAndWait(rec.task("c")))

	assert.Equal(t, []string{"a", "b", "c"}, rec.snapshot())
}

func TestUrgentRunsBeforeNormal(t *testing.T) {
	p := New(1, 1, 0)
	defer p.Shutdown()

	release := gate(t, p)

	rec := &recorder{}
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Submit(rec.task(fmt.Sprintf("n%d", i))))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, p.SubmitUrgent(rec.task(fmt.Sprintf("u%d", i))))
	}
	assert.Equal(t, 5, p.QueueSize())

	release()
	require.NoError(t, p.SubmitAndWait(rec.task("last")))

	assert.Equal(t, []string{"u0", "u1", "n0", "n1", "n2", "last"}, rec.snapshot())
}

func TestBlockingEnqueueWaitsForCompletion(t *testing.T) {
	p := New(0, 2, time.Second)
	defer p.Shutdown()

	for i := 0; i < 20; i++ {
		var done atomic.Bool
		require.NoError(t, p.Enqueue(TaskFunc(func() {
			time.Sleep(time.Millisecond)
			done.Store(true)
		}), true, i%2 == 0))
		assert.True(t, done.Load(), "iteration %d", i)
	}
}

func TestGrowsToMax(t *testing.T) {
	p := New(0, 4, 0)
	defer p.Shutdown()

	var running atomic.Int32
	hold := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(4)
	for i := 0; i < 4; i++ {
		require.NoError(t, p.Submit(TaskFunc(func() {
			running.Add(1)
			wg.Done()
			<-hold
		})))
	}
	wg.Wait()

	assert.Equal(t, int32(4), running.Load())
	assert.Equal(t, 4, p.Len())
	assert.Equal(t, 4, p.Active())

	// Fifth task waits for a free worker
	require.NoError(t, p.Submit(TaskFunc(func() {})))
	assert.Equal(t, 4, p.Len())

	close(hold)
}

func TestBackToBackSubmitsGrowPastIdleWorker(t *testing.T) {
	p := New(1, 4, time.Minute)
	defer p.Shutdown()

	// Let the minimum worker park as idle
	require.NoError(t, p.SubmitAndWait(TaskFunc(func() {})))

	for i := 0; i < 20; i++ {
		var wg sync.WaitGroup
		wg.Add(2)
		var together atomic.Int32
		meet := func() {
			wg.Done()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				together.Add(1)
			case <-time.After(2 * time.Second):
			}
		}

		finished := make(chan struct{}, 2)
		for j := 0; j < 2; j++ {
			require.NoError(t, p.Submit(TaskFunc(func() {
				meet()
				finished <- struct{}{}
			})))
		}
		<-finished
		<-finished
		require.Equal(t, int32(2), together.Load(), "iteration %d", i)
	}
}

func TestIdleWorkersExpireDownToMin(t *testing.T) {
	p := New(1, 3, 50*time.Millisecond)
	defer p.Shutdown()

	hold := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Submit(TaskFunc(func() {
			wg.Done()
			<-hold
		})))
	}
	wg.Wait()
	assert.Equal(t, 3, p.Len())
	close(hold)

	assert.Eventually(t, func() bool { return p.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	// Remaining worker still serves
	var ran atomic.Bool
	require.NoError(t, p.SubmitAndWait(TaskFunc(func() { ran.Store(true) })))
	assert.True(t, ran.Load())
}

func TestClearQueue(t *testing.T) {
	p := New(1, 1, 0)
	defer p.Shutdown()

	release := gate(t, p)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Submit(TaskFunc(func() { ran.Add(1) })))
	}
	assert.Equal(t, 5, p.QueueSize())

	p.ClearQueue()
	assert.Equal(t, 0, p.QueueSize())

	release()
	require.NoError(t, p.SubmitAndWait(TaskFunc(func() {})))
	assert.Equal(t, int32(0), ran.Load())
}

func TestShutdownDropsQueuedTasks(t *testing.T) {
	p := New(1, 1, 0)

	release := gate(t, p)

	var ran atomic.Int32
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Submit(TaskFunc(func() { ran.Add(1) })))
	}

	// A blocked submitter is released when its task is dropped
	waiterDone := make(chan struct{})
	go func() {
		_ = p.SubmitAndWait(TaskFunc(func() { ran.Add(1) }))
		close(waiterDone)
	}()
	require.Eventually(t, func() bool { return p.QueueSize() == 4 }, time.Second, 5*time.Millisecond)

	shutdownDone := make(chan struct{})
	go func() {
		p.Shutdown()
		close(shutdownDone)
	}()

	<-waiterDone
	release()
	<-shutdownDone

	assert.Equal(t, int32(0), ran.Load())
	assert.Equal(t, 0, p.Len())
	assert.True(t, p.Stopped())
	assert.ErrorIs(t, p.Submit(TaskFunc(func() {})), ErrPoolStopped)
	assert.ErrorIs(t, p.SubmitAndWait(TaskFunc(func() {})), ErrPoolStopped)
	assert.NoError(t, p.Close())
}

func TestPanickingTaskDoesNotKillWorker(t *testing.T) {
	var mu sync.Mutex
	var reports []string
	p := New(1, 1, 0,
		WithName("workers"),
		WithLogger(func(format string, args ...any) {
			mu.Lock()
			reports = append(reports, fmt.Sprintf(format, args...))
			mu.Unlock()
		}),
	)
	defer p.Shutdown()

	require.NoError(t, p.SubmitAndWait(Named("boom", func() { panic("kaboom") })))

	var ran atomic.Bool
	require.NoError(t, p.SubmitAndWait(TaskFunc(func() { ran.Store(true) })))
	assert.True(t, ran.Load())
	assert.Equal(t, 1, p.Len())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reports, 1)
	assert.Contains(t, reports[0], "workers")
	assert.Contains(t, reports[0], "boom")
	assert.Contains(t, reports[0], "kaboom")
}

func TestNewBounds(t *testing.T) {
	p := New(5, 0, 0)
	defer p.Shutdown()
	assert.Equal(t, 1, p.Len())

	require.NoError(t, p.Enqueue(nil, true, false))
}

func TestConcurrentSubmitters(t *testing.T) {
	p := New(2, 8, 20*time.Millisecond)
	defer p.Shutdown()

	var count atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = p.Enqueue(TaskFunc(func() { count.Add(1) }), i%10 == 0, g%2 == 0)
			}
		}(g)
	}
	wg.Wait()

	assert.Eventually(t, func() bool { return count.Load() == 800 }, 5*time.Second, 10*time.Millisecond)
}
