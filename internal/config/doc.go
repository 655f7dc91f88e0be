// Package config loads cardfly's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/cardfly/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Missing or empty fields fall back to defaults
//
// # TOML Format
//
//	speed = 1.0              # animation speed; one time unit lasts 1s/speed
//	frame_rate = 60          # redraw rate while animating
//	reentry = "restart"      # or "reject": what replay does mid-run
//	strict = false           # panic on programmer errors
//	log_file = "~/.local/state/cardfly/cardfly.log"   # "" disables logging
//	log_level = "info"       # debug, info, warn, error
//
// Speed is clamped to [0.1, 10] and frame_rate to [10, 120]. Tilde expansion
// is performed for the config and log paths.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than a
// missing file, TOML parse errors, and unknown reentry or log_level values.
package config
