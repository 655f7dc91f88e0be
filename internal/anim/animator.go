package anim

import (
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type tween struct {
	from  float64
	to    float64
	start time.Time
	tr    Transition
	// prev is the motion this tween replaced. It keeps playing and fades
	// out over tr.Curve.Blend.
	prev *tween
}

func (tw tween) value(now time.Time) float64 {
	v := Lerp(tw.from, tw.to, Progress(tw.tr, now.Sub(tw.start)))
	w := tw.blendWeight(now)
	if w >= 1 {
		return v
	}
	return Lerp(tw.prev.value(now), v, w)
}

// blendWeight is how much of this tween, as opposed to prev, shows at now.
func (tw tween) blendWeight(now time.Time) float64 {
	blend := tw.tr.Curve.Blend
	if tw.prev == nil || blend <= 0 {
		return 1
	}
	elapsed := now.Sub(tw.start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= blend {
		return 1
	}
	return float64(elapsed) / float64(blend)
}

func (tw tween) done(now time.Time) bool {
	end := tw.tr.Duration
	if tw.prev != nil && tw.tr.Curve.Blend > end {
		end = tw.tr.Curve.Blend
	}
	return now.Sub(tw.start) >= end
}

// Animator tracks keyed scalar properties and interpolates them toward their
// targets. Retargeting a property mid-flight starts from its current value;
// a spring with a blend duration also hands over the old motion's velocity
// by cross-fading from it. An Animator is not safe for concurrent use.
type Animator struct {
	tweens map[string]tween
}

// NewAnimator returns an empty Animator.
func NewAnimator() *Animator {
	return &Animator{tweens: make(map[string]tween)}
}

// Set snaps key to v without animating.
func (a *Animator) Set(key string, v float64) {
	a.tweens[key] = tween{from: v, to: v}
}

// Animate moves key toward target using tr, starting at now.
func (a *Animator) Animate(key string, target float64, tr Transition, now time.Time) {
	next := tween{from: target, to: target, start: now, tr: tr}
	if tr.Instant() {
		a.tweens[key] = next
		return
	}
	if cur, ok := a.tweens[key]; ok {
		next.from = cur.value(now)
		if tr.Curve.Kind == Spring && tr.Curve.Blend > 0 && !cur.done(now) {
			if cur.blendWeight(now) >= 1 {
				cur.prev = nil
			}
			next.prev = &cur
		}
	}
	a.tweens[key] = next
}

// Value returns the interpolated value of key at now; unknown keys read 0.
func (a *Animator) Value(key string, now time.Time) float64 {
	tw, ok := a.tweens[key]
	if !ok {
		return 0
	}
	return tw.value(now)
}

// Target returns the value key is heading to.
func (a *Animator) Target(key string) float64 {
	return a.tweens[key].to
}

// Active reports whether any property is still moving at now.
func (a *Animator) Active(now time.Time) bool {
	for _, tw := range a.tweens {
		if !tw.done(now) {
			return true
		}
	}
	return false
}

// Reset forgets every property.
func (a *Animator) Reset() {
	clear(a.tweens)
}

// Blend mixes two hex colors in Lab space; t is clamped to [0,1]. Unparseable
// input returns to unchanged.
func Blend(from, to string, t float64) string {
	switch {
	case t <= 0:
		return from
	case t >= 1:
		return to
	}
	a, err := colorful.Hex(from)
	if err != nil {
		return to
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return to
	}
	return a.BlendLab(b, t).Clamped().Hex()
}
