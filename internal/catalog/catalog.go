// Package catalog holds the fixed set of card color swatches offered on the
// color picker screen.
package catalog

import "strings"

// Swatch is one selectable card color.
type Swatch struct {
	Name  string // asset name, also used in prefs
	Label string // hex code printed under the grid swatch
	Hex   string // display color
}

// DefaultSelection is the card color shown before the user picks one.
const DefaultSelection = "Pink"

// Background is the screen backdrop; faded swatches blend toward it.
const Background = "#17191F"

var swatches = []Swatch{
	{Name: "Green", Label: "#1565348", Hex: "#156534"},
	{Name: "Violet", Label: "#DAA4FF", Hex: "#DAA4FF"},
	{Name: "Yellow", Label: "#FFD90A", Hex: "#FFD90A"},
	{Name: "Pink", Label: "#FE9EC4", Hex: "#FE9EC4"},
	{Name: "Orange", Label: "#FB3272", Hex: "#FB3272"},
	{Name: "Blue", Label: "#4460EE", Hex: "#4460EE"},
}

// Swatches returns a copy of the catalog in display order.
func Swatches() []Swatch {
	out := make([]Swatch, len(swatches))
	copy(out, swatches)
	return out
}

// Lookup finds a swatch by name, case-insensitively.
func Lookup(name string) (Swatch, bool) {
	name = strings.TrimSpace(name)
	for _, s := range swatches {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Swatch{}, false
}

// ByHex finds the swatch whose display color matches hex.
func ByHex(hex string) (Swatch, bool) {
	hex = strings.TrimSpace(hex)
	for _, s := range swatches {
		if strings.EqualFold(s.Hex, hex) {
			return s, true
		}
	}
	return Swatch{}, false
}
