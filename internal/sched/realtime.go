package sched

import (
	"container/heap"
	"sync"
	"time"
)

const defaultDispatchBuffer = 64

// Realtime schedules callbacks against the wall clock but never runs them
// itself: due callbacks are queued on Dispatch for the owning loop to
// execute. A single driver goroutine releases callbacks in fire-time order,
// and callbacks with equal fire times in the order they were scheduled. A
// callback whose timer was stopped after being queued but before being
// drained is skipped.
type Realtime struct {
	mu    sync.Mutex
	seq   uint64
	tasks taskQueue

	wake  chan struct{}
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewRealtime returns a Realtime scheduler with a dispatch queue of the given
// capacity; zero uses a sensible default. Close stops its driver goroutine.
func NewRealtime(buffer int) *Realtime {
	if buffer <= 0 {
		buffer = defaultDispatchBuffer
	}
	r := &Realtime{
		wake:  make(chan struct{}, 1),
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}

type realtimeTimer struct {
	r    *Realtime
	task *task
}

// Stop reports whether it kept the callback from running.
func (t realtimeTimer) Stop() bool {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	if t.task.fired || t.task.stopped {
		return false
	}
	t.task.stopped = true
	if t.task.index >= 0 {
		heap.Remove(&t.r.tasks, t.task.index)
	}
	return true
}

// After arranges for fn to be queued on Dispatch once d has elapsed.
// Negative delays are treated as zero.
func (r *Realtime) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	r.mu.Lock()
	r.seq++
	tk := &task{at: time.Now().Add(d), seq: r.seq, fn: fn}
	heap.Push(&r.tasks, tk)
	head := r.tasks[0] == tk
	r.mu.Unlock()

	if head {
		select {
		case r.wake <- struct{}{}:
		default:
		}
	}
	return realtimeTimer{r: r, task: tk}
}

// run moves due tasks onto the dispatch queue, one at a time and in heap
// order, until Close.
func (r *Realtime) run() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		r.mu.Lock()
		var due *task
		wait := time.Duration(-1)
		if r.tasks.Len() > 0 {
			next := r.tasks[0]
			if wait = time.Until(next.at); wait <= 0 {
				heap.Pop(&r.tasks)
				due = next
			}
		}
		r.mu.Unlock()

		if due != nil {
			select {
			case r.queue <- r.guard(due):
			case <-r.done:
				return
			}
			continue
		}

		var expired <-chan time.Time
		if wait > 0 {
			timer.Reset(wait)
			expired = timer.C
		}
		select {
		case <-r.wake:
		case <-expired:
		case <-r.done:
			return
		}
	}
}

// guard wraps a popped task so a Stop that lands before the owning loop
// drains it still wins.
func (r *Realtime) guard(tk *task) func() {
	return func() {
		r.mu.Lock()
		if tk.stopped {
			r.mu.Unlock()
			return
		}
		tk.fired = true
		r.mu.Unlock()
		tk.fn()
	}
}

// Now returns the wall clock.
func (r *Realtime) Now() time.Time {
	return time.Now()
}

// Pending returns the number of callbacks not yet handed to Dispatch.
func (r *Realtime) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tasks.Len()
}

// Dispatch yields callbacks ready to run on the owning loop.
func (r *Realtime) Dispatch() <-chan func() {
	return r.queue
}

// Done is closed once the scheduler is closed.
func (r *Realtime) Done() <-chan struct{} {
	return r.done
}

// Drain runs every callback currently queued and returns how many ran.
func (r *Realtime) Drain() int {
	ran := 0
	for {
		select {
		case fn := <-r.queue:
			fn()
			ran++
		default:
			return ran
		}
	}
}

// Close stops the driver goroutine. Callbacks not yet queued are dropped.
func (r *Realtime) Close() {
	r.once.Do(func() { close(r.done) })
}
