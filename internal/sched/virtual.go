package sched

import (
	"container/heap"
	"time"
)

// Virtual is a deterministic scheduler for tests. Time only moves when
// Advance is called; callbacks with equal fire times run in the order they
// were scheduled.
type Virtual struct {
	now   time.Time
	seq   uint64
	queue taskQueue
}

// NewVirtual returns a Virtual clock starting at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

type task struct {
	at      time.Time
	seq     uint64
	fn      func()
	index   int
	stopped bool
	fired   bool
}

type virtualTimer struct {
	v    *Virtual
	task *task
}

func (t virtualTimer) Stop() bool {
	if t.task.fired || t.task.stopped {
		return false
	}
	t.task.stopped = true
	if t.task.index >= 0 {
		heap.Remove(&t.v.queue, t.task.index)
	}
	return true
}

// After schedules fn at Now()+d. Negative delays are treated as zero.
func (v *Virtual) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	v.seq++
	tk := &task{at: v.now.Add(d), seq: v.seq, fn: fn}
	heap.Push(&v.queue, tk)
	return virtualTimer{v: v, task: tk}
}

// Now returns the virtual time.
func (v *Virtual) Now() time.Time {
	return v.now
}

// Pending returns the number of scheduled callbacks.
func (v *Virtual) Pending() int {
	return v.queue.Len()
}

// Advance moves the clock forward by d, running every callback due on the
// way, including ones scheduled by callbacks inside the window. The clock
// reads each callback's fire time while it runs.
func (v *Virtual) Advance(d time.Duration) int {
	return v.AdvanceTo(v.now.Add(d))
}

// AdvanceTo is Advance with an absolute deadline.
func (v *Virtual) AdvanceTo(deadline time.Time) int {
	ran := 0
	for v.queue.Len() > 0 {
		next := v.queue[0]
		if next.at.After(deadline) {
			break
		}
		heap.Pop(&v.queue)
		next.fired = true
		if next.at.After(v.now) {
			v.now = next.at
		}
		next.fn()
		ran++
	}
	if deadline.After(v.now) {
		v.now = deadline
	}
	return ran
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	tk := x.(*task)
	tk.index = len(*q)
	*q = append(*q, tk)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	tk := old[n-1]
	old[n-1] = nil
	tk.index = -1
	*q = old[:n-1]
	return tk
}
