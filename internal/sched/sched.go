// Package sched provides delayed-task schedulers: a virtual clock driven by
// tests and a realtime scheduler whose callbacks are handed to a single
// owning loop.
package sched

import (
	"sync"
	"time"
)

// Timer is a pending callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call prevented the
	// callback from running.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
	Now() time.Time
}

// Group tracks the timers of one logical run so they can be cancelled
// together.
type Group struct {
	sched Scheduler

	mu     sync.Mutex
	timers []Timer
}

// NewGroup returns a Group issuing timers on s.
func NewGroup(s Scheduler) *Group {
	return &Group{sched: s}
}

// After schedules fn on the underlying scheduler and tracks the timer.
func (g *Group) After(d time.Duration, fn func()) Timer {
	t := g.sched.After(d, fn)
	g.mu.Lock()
	g.timers = append(g.timers, t)
	g.mu.Unlock()
	return t
}

// Now returns the scheduler's clock.
func (g *Group) Now() time.Time {
	return g.sched.Now()
}

// CancelAll stops every tracked timer and returns how many were still pending.
func (g *Group) CancelAll() int {
	g.mu.Lock()
	timers := g.timers
	g.timers = nil
	g.mu.Unlock()

	stopped := 0
	for _, t := range timers {
		if t.Stop() {
			stopped++
		}
	}
	return stopped
}

// Len returns the number of timers issued since the last CancelAll.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.timers)
}
