// Package prefs persists the two choices a cardfly user makes on the color
// picker screen: the terminal theme cycled with the theme key and the name
// of the last swatch tapped onto the card.
//
// Preferences live in ~/.config/cardfly/prefs.toml and are written through
// Update after every theme change or successful tap. Load never fails: a
// missing or malformed file yields Defaults, a blank theme falls back to
// Dracula, and a selected color that no longer names a catalog swatch falls
// back to catalog.DefaultSelection so the card always opens on a color the
// tray can show.
package prefs
