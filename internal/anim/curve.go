package anim

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// CurveKind selects the timing function of a transition.
type CurveKind int

const (
	Linear CurveKind = iota
	EaseInOut
	Spring
)

func (k CurveKind) String() string {
	switch k {
	case EaseInOut:
		return "easeInOut"
	case Spring:
		return "spring"
	default:
		return "linear"
	}
}

// Curve describes how progress advances over a transition. Response, Damping
// and Blend only apply to Spring.
type Curve struct {
	Kind     CurveKind
	Response time.Duration
	Damping  float64
	Blend    time.Duration
}

// Transition is the "animate this change" intent attached to a state write.
// Durations are in unit time until Scale is applied.
type Transition struct {
	Curve    Curve
	Duration time.Duration
}

// DefaultDuration matches the platform default used for unqualified animations.
const DefaultDuration = 350 * time.Millisecond

// springSettleFactor is how many responses a spring runs before it is
// considered at rest.
const springSettleFactor = 1.5

const springFPS = 120

// Default is ease-in-out over DefaultDuration.
func Default() Transition {
	return EaseInOutOver(DefaultDuration)
}

// EaseInOutOver returns an ease-in-out transition of duration d.
func EaseInOutOver(d time.Duration) Transition {
	return Transition{Curve: Curve{Kind: EaseInOut}, Duration: d}
}

// InteractiveSpring returns a critically-underdamped spring. Duration is the
// settle time derived from the response.
func InteractiveSpring(response time.Duration, damping float64, blend time.Duration) Transition {
	return Transition{
		Curve: Curve{
			Kind:     Spring,
			Response: response,
			Damping:  damping,
			Blend:    blend,
		},
		Duration: time.Duration(float64(response) * springSettleFactor),
	}
}

// Instant reports whether the transition completes immediately.
func (t Transition) Instant() bool {
	return t.Duration <= 0
}

// Scale converts unit-time durations to wall time, where one unit lasts unit.
func (t Transition) Scale(unit time.Duration) Transition {
	t.Duration = ScaleDuration(t.Duration, unit)
	t.Curve.Response = ScaleDuration(t.Curve.Response, unit)
	t.Curve.Blend = ScaleDuration(t.Curve.Blend, unit)
	return t
}

// ScaleDuration maps a unit-time duration d (one unit == time.Second) onto a
// clock where one unit lasts unit.
func ScaleDuration(d, unit time.Duration) time.Duration {
	if unit == time.Second {
		return d
	}
	return time.Duration(int64(d) / int64(time.Millisecond) * int64(unit) / 1000)
}

// Progress returns the eased progress of tr after elapsed. The result is 0
// before the start and exactly 1 once the transition is over; springs may
// overshoot 1 in between.
func Progress(tr Transition, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		if tr.Instant() {
			return 1
		}
		return 0
	}
	if tr.Instant() || elapsed >= tr.Duration {
		return 1
	}
	t := float64(elapsed) / float64(tr.Duration)
	switch tr.Curve.Kind {
	case EaseInOut:
		return easeInOutCubic(t)
	case Spring:
		return springProgress(tr.Curve, elapsed)
	default:
		return t
	}
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// springProgress integrates a unit step response with harmonica.
func springProgress(c Curve, elapsed time.Duration) float64 {
	if c.Response <= 0 {
		return 1
	}
	omega := 2 * math.Pi / c.Response.Seconds()
	spring := harmonica.NewSpring(harmonica.FPS(springFPS), omega, c.Damping)

	steps := int(elapsed.Seconds() * springFPS)
	pos, vel := 0.0, 0.0
	for i := 0; i < steps; i++ {
		pos, vel = spring.Update(pos, vel, 1)
	}
	return pos
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
