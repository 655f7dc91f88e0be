// Package app is the composition root for cardfly.
//
// Run loads the TOML config and the prefs file, opens the log file, builds
// the store seeded with the preferred card color, a realtime scheduler and a
// choreographer, then hands them to the Bubble Tea screen:
//
//	Run()
//	  ├─> config.Load()      speed, frame rate, re-entry policy, strict, logging
//	  ├─> logging.Open()     file logger (the terminal belongs to the TUI)
//	  ├─> prefs.Load()       theme and last chosen color
//	  ├─> state.New()        six swatches, all flags false
//	  ├─> sched.NewRealtime  timers delivered on the UI loop
//	  ├─> choreo.New()       entrance sequence bound to store and scheduler
//	  └─> ui.Run()           blocks until quit or context cancellation
//
// Command line overrides in Options win over the config file: a positive
// Speed replaces the configured speed and Strict forces strict mode on.
//
// Whatever way the screen exits, the choreographer is stopped, the
// scheduler closed and the log file released before Run returns.
package app
