// Package state holds the swatch store shared by the choreographer and the
// color picker screen.
//
// # Overview
//
// The Store is the single source of truth for the screen. It owns:
//
//   - the six catalog swatches as Items, each with four animation flags
//   - the four screen-level Stage flags
//   - the selected card color
//
// The choreographer is the only writer of flags; the screen only reads them,
// except for SelectColor which a tap may call at any time.
//
// # Flag Lifecycle
//
// Per item the flags turn true in this order within one run:
//
//	Rotated → PlacedInGrid → LabelRevealed → HiddenFromSource
//
// The store does not police the order. Reset clears every flag for the next
// run; Initialize additionally assigns fresh item ids.
//
// # Change Notification
//
// Every successful write bumps a version counter and is delivered to
// observers as a Change carrying the anim.Transition requested by the writer:
//
//	store.Subscribe(func(c state.Change) {
//		if c.Kind == state.ItemChanged && c.Flag == state.PlacedInGrid {
//			// animate the swatch into its grid slot using c.Transition
//		}
//	})
//
// Observers run synchronously on the writer's goroutine, after the lock is
// released, so an observer may write to the store again. The version counter
// gives a total order of writes, which is how tests compare flags that flip at
// the same instant.
//
// # Concurrency Model
//
// All writes are expected on one owning loop (the Bubble Tea update loop in
// the application). The store still guards its fields with a sync.RWMutex so
// renderers on other goroutines can take snapshots safely.
//
// # Error Handling
//
// Out-of-range indexes and unknown flags return wrapped ErrIndexOutOfRange or
// ErrUnknownFlag. With Options.Strict they panic instead. Writes after
// Dispose return ErrDisposed and never reach observers; callers treat that as
// a stale callback and drop it.
package state
