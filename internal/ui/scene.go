package ui

import (
	"fmt"
	"time"

	"github.com/five82/cardfly/internal/anim"
	"github.com/five82/cardfly/internal/sched"
	"github.com/five82/cardfly/internal/state"
)

const cardColorKey = "card.color"

// scene turns store changes into interpolated view properties. Every flag
// maps to a 0..1 property that animates with the transition attached to the
// write. It lives behind a pointer so the value-typed Model shares it.
type scene struct {
	anim  *anim.Animator
	clock sched.Scheduler
	unit  time.Duration
	items int

	cardFrom string
	cardTo   string

	unsubscribe func()
}

func newScene(store *state.Store, clock sched.Scheduler, unit time.Duration) *scene {
	if unit <= 0 {
		unit = time.Second
	}
	sc := &scene{
		anim:  anim.NewAnimator(),
		clock: clock,
		unit:  unit,
	}
	sc.sync(store.Snapshot())
	sc.unsubscribe = store.Subscribe(sc.observe)
	return sc
}

func stageKey(st state.Stage) string {
	return "stage." + st.String()
}

func itemKey(index int, f state.Flag) string {
	return fmt.Sprintf("item.%d.%s", index, f)
}

func level(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// sync snaps every property to the snapshot without animating.
func (sc *scene) sync(snap state.Snapshot) {
	sc.anim.Reset()
	sc.items = len(snap.Items)
	for _, st := range state.AllStages {
		sc.anim.Set(stageKey(st), level(snap.Stages.Get(st)))
	}
	for i, it := range snap.Items {
		for _, f := range state.ItemFlags {
			sc.anim.Set(itemKey(i, f), level(it.Flag(f)))
		}
	}
	sc.cardFrom, sc.cardTo = snap.SelectedColor, snap.SelectedColor
	sc.anim.Set(cardColorKey, 1)
}

func (sc *scene) observe(ch state.Change) {
	now := sc.clock.Now()
	tr := ch.Transition.Scale(sc.unit)
	switch ch.Kind {
	case state.StageChanged:
		sc.anim.Animate(stageKey(ch.Stage), level(ch.Value), tr, now)
	case state.ItemChanged:
		sc.anim.Animate(itemKey(ch.Index, ch.Flag), level(ch.Value), tr, now)
	case state.ColorChanged:
		sc.cardFrom = sc.cardColor(now)
		sc.cardTo = ch.Color
		sc.anim.Set(cardColorKey, 0)
		sc.anim.Animate(cardColorKey, 1, tr, now)
	case state.StoreReset:
		for _, st := range state.AllStages {
			sc.anim.Set(stageKey(st), 0)
		}
		for i := range sc.items {
			for _, f := range state.ItemFlags {
				sc.anim.Set(itemKey(i, f), 0)
			}
		}
	}
}

func (sc *scene) stage(st state.Stage, now time.Time) float64 {
	return sc.anim.Value(stageKey(st), now)
}

func (sc *scene) item(index int, f state.Flag, now time.Time) float64 {
	return sc.anim.Value(itemKey(index, f), now)
}

func (sc *scene) cardColor(now time.Time) string {
	return anim.Blend(sc.cardFrom, sc.cardTo, sc.anim.Value(cardColorKey, now))
}

func (sc *scene) active(now time.Time) bool {
	return sc.anim.Active(now)
}

func (sc *scene) close() {
	if sc.unsubscribe != nil {
		sc.unsubscribe()
		sc.unsubscribe = nil
	}
}
