package ui

import (
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// segment is styled text anchored at a column. Columns may be negative or
// past the line end; compose clips what falls outside.
type segment struct {
	x    int
	text string
}

// compose lays segments on one line of the given width. Gaps are filled with
// bg so that lipgloss resets between segments do not leave holes in the
// background. Overlapping segments are clipped in column order.
func compose(width int, bg string, segs ...segment) string {
	slices.SortStableFunc(segs, func(a, b segment) int { return a.x - b.x })

	fill := lipgloss.NewStyle().Background(lipgloss.Color(bg))
	var b strings.Builder
	col := 0
	for _, s := range segs {
		text, x := s.text, s.x
		if x < col {
			text = ansi.TruncateLeft(text, col-x, "")
			x = col
		}
		if x >= width {
			break
		}
		if x > col {
			b.WriteString(fill.Render(strings.Repeat(" ", x-col)))
			col = x
		}
		w := ansi.StringWidth(text)
		if col+w > width {
			text = ansi.Truncate(text, width-col, "")
			w = ansi.StringWidth(text)
		}
		b.WriteString(text)
		col += w
	}
	if col < width {
		b.WriteString(fill.Render(strings.Repeat(" ", width-col)))
	}
	return b.String()
}

// blank returns an empty line of the given width and background.
func blank(width int, bg string) string {
	return compose(width, bg)
}

// block renders n cells of solid color.
func block(n int, color string) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render(strings.Repeat(" ", n))
}

// ink picks a readable text color for the given background.
func ink(bg string) string {
	c, err := colorful.Hex(bg)
	if err != nil {
		return "#FFFFFF"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#111111"
	}
	return "#FFFFFF"
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

func round(v float64) int {
	return int(math.Round(v))
}
