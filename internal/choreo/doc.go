// Package choreo sequences the entrance animation of the color picker screen.
//
// A run is a fixed list of timed writes (see Plan) handed to a
// sched.Scheduler:
//
//	0.0  headerRevealed   ease-in-out 0.7
//	0.3  cardEntered      interactive spring
//	0.3  trayRaised       interactive spring
//	0.3  gridCollapsed    ease-in-out 0.8
//	0.9  rotated[5], placedInGrid[5]
//	1.0  rotated[4], placedInGrid[4]
//	...
//	1.4  rotated[0], placedInGrid[0]
//
// Items are walked back to front because the last swatch sits on top of the
// staging stack. Each grid placement then schedules, 0.11 units later, the
// label reveal followed by hiding the staging copy. A full run over six
// swatches settles at 1.51 units.
//
// Every callback carries the generation of the run that issued it, so
// callbacks surviving a restart or Stop are dropped instead of mutating the
// store.
package choreo
