package choreo

import (
	"time"

	"github.com/five82/cardfly/internal/anim"
	"github.com/five82/cardfly/internal/state"
)

// Timing of the entrance sequence in unit time (one unit == time.Second
// before scaling).
const (
	BaseDelay   = 300 * time.Millisecond
	GridDelay   = 900 * time.Millisecond
	GridStagger = 100 * time.Millisecond
	RevealDelay = 110 * time.Millisecond

	HeaderDuration   = 700 * time.Millisecond
	CollapseDuration = 800 * time.Millisecond

	SpringResponse = 1300 * time.Millisecond
	SpringDamping  = 0.7
	SpringBlend    = 700 * time.Millisecond
)

// StepKind says what a Step writes.
type StepKind int

const (
	StageStep StepKind = iota
	ItemStep
)

// Step is one scheduled write of the entrance sequence.
type Step struct {
	Kind       StepKind
	Delay      time.Duration
	Stage      state.Stage
	Index      int // target item for ItemStep
	Position   int // loop position for ItemStep
	Flag       state.Flag
	Transition anim.Transition
}

// entranceSpring is the interactive spring used by the card drop and the tray.
func entranceSpring() anim.Transition {
	return anim.InteractiveSpring(SpringResponse, SpringDamping, SpringBlend)
}

// ItemDelay is the delay for loop position i.
func ItemDelay(i int) time.Duration {
	return GridDelay + time.Duration(i)*GridStagger
}

// ReverseIndex maps loop position i to the item it animates. Later items sit
// on top of the staging stack, so the walk runs back to front.
func ReverseIndex(n, i int) int {
	return (n - 1) - i
}

// Plan returns the fixed schedule for n items, ordered by delay with ties in
// issue order. The reveal writes are not part of the plan; they follow each
// grid placement.
func Plan(n int) []Step {
	steps := []Step{
		{Kind: StageStep, Delay: 0, Stage: state.HeaderRevealed, Transition: anim.EaseInOutOver(HeaderDuration)},
		{Kind: StageStep, Delay: BaseDelay, Stage: state.CardEntered, Transition: entranceSpring()},
		{Kind: StageStep, Delay: BaseDelay, Stage: state.TrayRaised, Transition: entranceSpring()},
		{Kind: StageStep, Delay: BaseDelay, Stage: state.GridCollapsed, Transition: anim.EaseInOutOver(CollapseDuration)},
	}
	for i := 0; i < n; i++ {
		r := ReverseIndex(n, i)
		delay := ItemDelay(i)
		steps = append(steps,
			Step{Kind: ItemStep, Delay: delay, Index: r, Position: i, Flag: state.Rotated, Transition: anim.Default()},
			Step{Kind: ItemStep, Delay: delay, Index: r, Position: i, Flag: state.PlacedInGrid, Transition: anim.Default()},
		)
	}
	return steps
}

// Timeline is the unit-time length of a full run over n items, from
// activation to the last reveal.
func Timeline(n int) time.Duration {
	if n <= 0 {
		return BaseDelay
	}
	return ItemDelay(n-1) + RevealDelay
}
