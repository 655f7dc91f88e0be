package state

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/five82/cardfly/internal/anim"
	"github.com/five82/cardfly/internal/catalog"
)

var (
	ErrIndexOutOfRange = errors.New("item index out of range")
	ErrUnknownFlag     = errors.New("unknown flag")
	ErrDisposed        = errors.New("store disposed")
)

// Flag names one per-item animation flag. Flags become true in declaration
// order during a run.
type Flag int

const (
	Rotated Flag = iota
	PlacedInGrid
	LabelRevealed
	HiddenFromSource
)

// ItemFlags lists the per-item flags in lifecycle order.
var ItemFlags = []Flag{Rotated, PlacedInGrid, LabelRevealed, HiddenFromSource}

func (f Flag) String() string {
	switch f {
	case Rotated:
		return "rotated"
	case PlacedInGrid:
		return "placedInGrid"
	case LabelRevealed:
		return "labelRevealed"
	case HiddenFromSource:
		return "hiddenFromSource"
	default:
		return fmt.Sprintf("flag(%d)", int(f))
	}
}

// Stage names one screen-level flag.
type Stage int

const (
	CardEntered Stage = iota
	HeaderRevealed
	TrayRaised
	GridCollapsed
)

// AllStages lists the stage flags.
var AllStages = []Stage{CardEntered, HeaderRevealed, TrayRaised, GridCollapsed}

func (s Stage) String() string {
	switch s {
	case CardEntered:
		return "cardEntered"
	case HeaderRevealed:
		return "headerRevealed"
	case TrayRaised:
		return "trayRaised"
	case GridCollapsed:
		return "gridCollapsed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Item is one color swatch and its animation lifecycle.
type Item struct {
	ID    string
	Name  string
	Label string
	Color string

	Rotated          bool
	PlacedInGrid     bool
	LabelRevealed    bool
	HiddenFromSource bool
}

// Flag reads one per-item flag.
func (it Item) Flag(f Flag) bool {
	switch f {
	case Rotated:
		return it.Rotated
	case PlacedInGrid:
		return it.PlacedInGrid
	case LabelRevealed:
		return it.LabelRevealed
	case HiddenFromSource:
		return it.HiddenFromSource
	}
	return false
}

func (it *Item) setFlag(f Flag, v bool) bool {
	switch f {
	case Rotated:
		it.Rotated = v
	case PlacedInGrid:
		it.PlacedInGrid = v
	case LabelRevealed:
		it.LabelRevealed = v
	case HiddenFromSource:
		it.HiddenFromSource = v
	default:
		return false
	}
	return true
}

// Stages holds the screen-level flags.
type Stages struct {
	CardEntered    bool
	HeaderRevealed bool
	TrayRaised     bool
	GridCollapsed  bool
}

// Get reads one stage flag.
func (s Stages) Get(st Stage) bool {
	switch st {
	case CardEntered:
		return s.CardEntered
	case HeaderRevealed:
		return s.HeaderRevealed
	case TrayRaised:
		return s.TrayRaised
	case GridCollapsed:
		return s.GridCollapsed
	}
	return false
}

func (s *Stages) set(st Stage, v bool) bool {
	switch st {
	case CardEntered:
		s.CardEntered = v
	case HeaderRevealed:
		s.HeaderRevealed = v
	case TrayRaised:
		s.TrayRaised = v
	case GridCollapsed:
		s.GridCollapsed = v
	default:
		return false
	}
	return true
}

// Snapshot is a point-in-time copy of the store for rendering.
type Snapshot struct {
	Items         []Item
	Stages        Stages
	SelectedColor string
	Version       uint64
	Disposed      bool
}

// Settled reports whether every item has reached its grid slot and left the
// staging stack.
func (s Snapshot) Settled() bool {
	if len(s.Items) == 0 {
		return false
	}
	for _, it := range s.Items {
		if !it.HiddenFromSource {
			return false
		}
	}
	return true
}

// ChangeKind says which part of the store a Change touched.
type ChangeKind int

const (
	ItemChanged ChangeKind = iota
	StageChanged
	ColorChanged
	StoreReset
)

// Change describes one write. Transition is how the view should animate it.
type Change struct {
	Version    uint64
	Kind       ChangeKind
	Index      int
	Flag       Flag
	Stage      Stage
	Value      bool
	Color      string
	Transition anim.Transition
}

// Observer receives changes after the write has been applied.
type Observer func(Change)

// Options tune store behaviour.
type Options struct {
	// Strict panics on programmer errors instead of returning them.
	Strict bool
	// SelectedColor seeds the card color; empty uses the catalog default.
	SelectedColor string
}

// Store owns the swatches, the stage flags and the selected card color.
// Observers are called synchronously, outside the lock, in subscription order.
type Store struct {
	mu        sync.RWMutex
	catalog   []catalog.Swatch
	items     []Item
	stages    Stages
	selected  string
	version   uint64
	disposed  bool
	strict    bool
	observers map[int]Observer
	nextObs   int
}

// New builds an initialized store over swatches.
func New(swatches []catalog.Swatch, opts Options) *Store {
	s := &Store{
		catalog:   append([]catalog.Swatch(nil), swatches...),
		strict:    opts.Strict,
		observers: make(map[int]Observer),
	}
	s.selected = opts.SelectedColor
	if s.selected == "" {
		if sw, ok := catalog.Lookup(catalog.DefaultSelection); ok {
			s.selected = sw.Hex
		}
	}
	s.Initialize()
	return s
}

// Initialize repopulates the items from the catalog with fresh ids and clears
// every flag. The selected color is kept. A disposed store stays disposed and
// is left untouched.
func (s *Store) Initialize() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.items = make([]Item, len(s.catalog))
	for i, sw := range s.catalog {
		s.items[i] = Item{
			ID:    uuid.NewString(),
			Name:  sw.Name,
			Label: sw.Label,
			Color: sw.Hex,
		}
	}
	s.stages = Stages{}
	change := s.bumpLocked(Change{Kind: StoreReset})
	s.mu.Unlock()

	s.notify(change)
}

// Reset clears every flag but keeps item identities.
func (s *Store) Reset() error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	for i := range s.items {
		for _, f := range ItemFlags {
			s.items[i].setFlag(f, false)
		}
	}
	s.stages = Stages{}
	change := s.bumpLocked(Change{Kind: StoreReset})
	s.mu.Unlock()

	s.notify(change)
	return nil
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// SetItemFlag writes one flag on the item at index. Flag ordering is not
// enforced here.
func (s *Store) SetItemFlag(index int, flag Flag, value bool, tr anim.Transition) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	if index < 0 || index >= len(s.items) {
		n := len(s.items)
		s.mu.Unlock()
		return s.fail(fmt.Errorf("set %s on item %d of %d: %w", flag, index, n, ErrIndexOutOfRange))
	}
	if !s.items[index].setFlag(flag, value) {
		s.mu.Unlock()
		return s.fail(fmt.Errorf("set %s on item %d: %w", flag, index, ErrUnknownFlag))
	}
	change := s.bumpLocked(Change{Kind: ItemChanged, Index: index, Flag: flag, Value: value, Transition: tr})
	s.mu.Unlock()

	s.notify(change)
	return nil
}

// SetStageFlag writes one screen-level flag.
func (s *Store) SetStageFlag(stage Stage, value bool, tr anim.Transition) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	if !s.stages.set(stage, value) {
		s.mu.Unlock()
		return s.fail(fmt.Errorf("set %s: %w", stage, ErrUnknownFlag))
	}
	change := s.bumpLocked(Change{Kind: StageChanged, Stage: stage, Value: value, Transition: tr})
	s.mu.Unlock()

	s.notify(change)
	return nil
}

// SelectColor sets the card color. It may be called at any time.
func (s *Store) SelectColor(color string, tr anim.Transition) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	s.selected = color
	change := s.bumpLocked(Change{Kind: ColorChanged, Color: color, Transition: tr})
	s.mu.Unlock()

	s.notify(change)
	return nil
}

// Item returns a copy of the item at index.
func (s *Store) Item(index int) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.items) {
		return Item{}, s.fail(fmt.Errorf("item %d of %d: %w", index, len(s.items), ErrIndexOutOfRange))
	}
	return s.items[index], nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Stages:        s.stages,
		SelectedColor: s.selected,
		Version:       s.version,
		Disposed:      s.disposed,
	}
	if len(s.items) > 0 {
		snap.Items = make([]Item, len(s.items))
		copy(snap.Items, s.items)
	}
	return snap
}

// Subscribe registers fn for every subsequent change. The returned function
// removes it.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Dispose marks the store torn down. Later writes fail with ErrDisposed and
// observers are dropped.
func (s *Store) Dispose() {
	s.mu.Lock()
	s.disposed = true
	clear(s.observers)
	s.mu.Unlock()
}

// Disposed reports whether Dispose has been called.
func (s *Store) Disposed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.disposed
}

func (s *Store) bumpLocked(c Change) Change {
	s.version++
	c.Version = s.version
	return c
}

func (s *Store) notify(c Change) {
	s.mu.RLock()
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	observers := make([]Observer, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		observers = append(observers, s.observers[id])
	}
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(c)
	}
}

func (s *Store) fail(err error) error {
	if s.strict {
		panic(err)
	}
	return err
}
