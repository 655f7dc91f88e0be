// Package ui renders the card color screen with Bubble Tea.
//
// # Screen
//
// The screen is a fixed-width column centered in the terminal:
//
//	top bar         back arrow, title, profile badge
//	card            drops in and unfolds; recolors when a swatch is chosen
//	header          "Choose a color" and "View all" slide in from both edges
//	tray            rises from the bottom; holds the staging stack and grid
//	footer          timeline progress, phase, key help or status
//
// The staging stack shows one chip per swatch. Chips shrink and dim when the
// grid collapses, flip when rotated and fade once hidden from the source.
// The grid has two columns; a swatch grows into its slot when placed and its
// label fades in when revealed.
//
// # Animation
//
// The model never reads flags directly to decide what to draw. A scene
// subscribes to the store and maps every flag to a 0..1 property in an
// anim.Animator, animated with the transition attached to the write and
// scaled to the configured time unit. Rendering samples those properties at
// the scheduler's current time, so the same model renders correctly against
// the wall clock or a virtual clock in tests.
//
// # Event Loop
//
// All store writes happen on the Bubble Tea loop. Scheduler callbacks are
// delivered as dispatchMsg values read from the Dispatcher channel, and key
// handlers call the choreographer directly. While anything is moving the
// model ticks at the configured frame interval; once the scene is still and
// the run has settled, ticking stops until the next change.
//
// # Keys
//
//	arrows, hjkl   move the grid cursor
//	enter, space   choose the color under the cursor
//	1-6            choose a color directly
//	r              replay the entrance (re-entry policy applies)
//	T              cycle theme (saved to prefs)
//	a              toggle the activity overlay (tail of the log file)
//	?              toggle help
//	q, ctrl+c      quit; pending timers are cancelled and the store disposed
//
// Choosing a color saves it to prefs so the next launch starts with it.
package ui
