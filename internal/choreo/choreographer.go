package choreo

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/cardfly/internal/anim"
	"github.com/five82/cardfly/internal/sched"
	"github.com/five82/cardfly/internal/state"
)

var (
	ErrRunActive = errors.New("choreography already running")
	ErrNotPlaced = errors.New("item not placed in grid")
	ErrStopped   = errors.New("choreographer stopped")
)

// Policy decides what Run does while a run is still in flight.
type Policy int

const (
	// Restart cancels pending timers, resets the store and starts over.
	Restart Policy = iota
	// Reject refuses the call with ErrRunActive.
	Reject
)

// ParsePolicy maps a config value to a Policy; empty means Restart.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "restart":
		return Restart, nil
	case "reject":
		return Reject, nil
	}
	return Restart, fmt.Errorf("unknown reentry policy %q", s)
}

func (p Policy) String() string {
	if p == Reject {
		return "reject"
	}
	return "restart"
}

// Phase is the lifecycle of the choreographer.
type Phase int

const (
	Idle Phase = iota
	Running
	Settled
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Settled:
		return "settled"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Options configure a Choreographer.
type Options struct {
	// Unit is the wall duration of one time unit; zero means one second.
	Unit   time.Duration
	Policy Policy
	// Strict panics on programmer errors such as a rejected re-entry.
	Strict   bool
	Logger   *log.Logger
	OnSettle func()
}

// Choreographer drives the entrance sequence against a store. It must be used
// from the goroutine that runs the scheduler's callbacks.
type Choreographer struct {
	store  *state.Store
	clock  sched.Scheduler
	timers *sched.Group
	opts   Options
	log    *log.Logger

	phase       Phase
	gen         uint64
	startedAt   time.Time
	revealed    map[int]bool
	unsubscribe func()
}

// New wires a Choreographer to store and s. Nothing is scheduled until Run.
func New(store *state.Store, s sched.Scheduler, opts Options) *Choreographer {
	if opts.Unit <= 0 {
		opts.Unit = time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Choreographer{
		store:    store,
		clock:    s,
		timers:   sched.NewGroup(s),
		opts:     opts,
		log:      logger.With("component", "choreo"),
		revealed: make(map[int]bool),
	}
	c.unsubscribe = store.Subscribe(c.observe)
	return c
}

// Run starts one entrance sequence. A settled screen is reset and replayed;
// a running one follows the configured Policy.
func (c *Choreographer) Run() error {
	switch c.phase {
	case Stopped:
		return ErrStopped
	case Running:
		if c.opts.Policy == Reject {
			if c.opts.Strict {
				panic(ErrRunActive)
			}
			c.log.Warn("run rejected", "reason", ErrRunActive)
			return ErrRunActive
		}
		cancelled := c.timers.CancelAll()
		c.log.Info("restarting run", "cancelled", cancelled)
		fallthrough
	case Settled:
		if err := c.store.Reset(); err != nil {
			return fmt.Errorf("reset store: %w", err)
		}
	}

	c.gen++
	gen := c.gen
	c.phase = Running
	c.startedAt = c.clock.Now()
	clear(c.revealed)

	n := c.store.Len()
	plan := Plan(n)
	c.log.Info("run started", "run", gen, "items", n, "steps", len(plan), "unit", c.opts.Unit)
	for _, step := range plan {
		c.timers.After(c.scale(step.Delay), func() { c.apply(gen, step) })
	}
	return nil
}

// Stop cancels pending timers and disposes of the store. Callbacks that
// slip through are dropped.
func (c *Choreographer) Stop() {
	if c.phase == Stopped {
		return
	}
	cancelled := c.timers.CancelAll()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.store.Dispose()
	c.phase = Stopped
	c.log.Info("stopped", "cancelled", cancelled)
}

// Tap selects the color of a placed item and returns it.
func (c *Choreographer) Tap(index int) (state.Item, error) {
	item, err := c.store.Item(index)
	if err != nil {
		return state.Item{}, err
	}
	if !item.PlacedInGrid {
		return item, fmt.Errorf("tap item %d: %w", index, ErrNotPlaced)
	}
	if err := c.store.SelectColor(item.Color, anim.Default()); err != nil {
		return item, fmt.Errorf("select %s: %w", item.Name, err)
	}
	c.log.Debug("color selected", "item", index, "name", item.Name)
	return item, nil
}

// Phase reports the current lifecycle phase.
func (c *Choreographer) Phase() Phase {
	return c.phase
}

// Elapsed returns the unit time since the current run started.
func (c *Choreographer) Elapsed() time.Duration {
	if c.phase == Idle {
		return 0
	}
	wall := c.clock.Now().Sub(c.startedAt)
	return time.Duration(float64(wall) * float64(time.Second) / float64(c.opts.Unit))
}

// Progress returns how far the current run is through its timeline, in [0,1].
func (c *Choreographer) Progress() float64 {
	switch c.phase {
	case Idle:
		return 0
	case Settled:
		return 1
	}
	p := float64(c.Elapsed()) / float64(Timeline(c.store.Len()))
	return min(max(p, 0), 1)
}

func (c *Choreographer) scale(d time.Duration) time.Duration {
	return anim.ScaleDuration(d, c.opts.Unit)
}

func (c *Choreographer) live(gen uint64) bool {
	return gen == c.gen && c.phase == Running
}

func (c *Choreographer) apply(gen uint64, step Step) {
	if !c.live(gen) {
		c.log.Debug("dropped stale step", "run", gen, "delay", step.Delay)
		return
	}
	var err error
	switch step.Kind {
	case StageStep:
		err = c.store.SetStageFlag(step.Stage, true, step.Transition)
		c.log.Debug("stage", "name", step.Stage, "delay", step.Delay)
	case ItemStep:
		err = c.store.SetItemFlag(step.Index, step.Flag, true, step.Transition)
		c.log.Debug("item", "index", step.Index, "flag", step.Flag, "position", step.Position, "delay", step.Delay)
	}
	c.report(err)
}

// observe follows grid placements: the first time an item lands in the grid
// during a run, its label reveal is scheduled.
func (c *Choreographer) observe(ch state.Change) {
	if ch.Kind != state.ItemChanged || ch.Flag != state.PlacedInGrid || !ch.Value {
		return
	}
	if c.phase != Running || c.revealed[ch.Index] {
		return
	}
	c.revealed[ch.Index] = true
	gen, index := c.gen, ch.Index
	c.timers.After(c.scale(RevealDelay), func() { c.reveal(gen, index) })
}

func (c *Choreographer) reveal(gen uint64, index int) {
	if !c.live(gen) {
		c.log.Debug("dropped stale reveal", "run", gen, "index", index)
		return
	}
	if err := c.store.SetItemFlag(index, state.LabelRevealed, true, anim.Default()); err != nil {
		c.report(err)
		return
	}
	c.report(c.store.SetItemFlag(index, state.HiddenFromSource, true, anim.Default()))
	c.log.Debug("revealed", "index", index)

	if c.store.Snapshot().Settled() {
		c.phase = Settled
		c.log.Info("run settled", "run", gen, "elapsed", c.Elapsed())
		if c.opts.OnSettle != nil {
			c.opts.OnSettle()
		}
	}
}

func (c *Choreographer) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, state.ErrDisposed):
		c.log.Debug("dropped write to disposed store")
	default:
		c.log.Error("choreography write failed", "err", err)
	}
}
