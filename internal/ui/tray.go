package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cardfly/internal/anim"
	"github.com/five82/cardfly/internal/state"
)

// renderTray renders the tray region. The tray rises from the bottom edge;
// rows it has not reached yet show the screen backdrop.
func (m Model) renderTray(snap state.Snapshot, now time.Time) []string {
	lines := m.trayLines(snap, now)
	p := clamp01(m.scene.stage(state.TrayRaised, now))
	offset := round((1 - p) * trayHeight)

	out := make([]string, trayHeight)
	for y := range out {
		if y < offset {
			out[y] = blank(ScreenWidth, m.theme.Screen)
			continue
		}
		out[y] = lines[y-offset]
	}
	return out
}

func (m Model) trayLines(snap state.Snapshot, now time.Time) []string {
	bg := m.theme.Tray
	lines := []string{blank(ScreenWidth, bg), m.renderStack(snap, now), blank(ScreenWidth, bg)}
	for r := range gridRows {
		swatches, labels := m.renderGridRow(snap, r, now)
		lines = append(lines, swatches, labels)
		if r < gridRows-1 {
			lines = append(lines, blank(ScreenWidth, bg))
		}
	}
	return lines
}

// renderStack renders the staging stack. Collapsing the grid shrinks and
// dims the stack; each chip flips when rotated and fades out once its
// swatch has left for the grid.
func (m Model) renderStack(snap state.Snapshot, now time.Time) string {
	bg := m.theme.Tray
	collapse := clamp01(m.scene.stage(state.GridCollapsed, now))
	x0 := (ScreenWidth - len(snap.Items)*stackSlot) / 2

	segs := make([]segment, 0, len(snap.Items))
	for i, it := range snap.Items {
		hidden := clamp01(m.scene.item(i, state.HiddenFromSource, now))
		if hidden >= 1 {
			continue
		}
		turn := m.scene.item(i, state.Rotated, now)
		width := float64(stackChip) * (1 - 0.5*collapse) * math.Abs(math.Cos(math.Pi*turn))
		cells := round(width)
		if cells <= 0 {
			continue
		}

		color := it.Color
		if turn > 0.5 {
			// back face
			color = anim.Blend(color, "#FFFFFF", 0.2)
		}
		color = anim.Blend(color, bg, clamp01(0.4*collapse+0.6*hidden))
		x := x0 + i*stackSlot + (stackSlot-cells)/2
		segs = append(segs, segment{x: x, text: block(cells, color)})
	}
	return compose(ScreenWidth, bg, segs...)
}

// renderGridRow renders one row of the two-column grid: the swatch line and
// the label line below it.
func (m Model) renderGridRow(snap state.Snapshot, row int, now time.Time) (string, string) {
	bg := m.theme.Tray
	styles := m.theme.Styles().On(bg)

	var swatches, labels []segment
	for c := range gridCols {
		i := row*gridCols + c
		if i >= len(snap.Items) {
			break
		}
		it := snap.Items[i]
		x := gridLeft + c*(tileWidth+tileGap)

		placed := clamp01(m.scene.item(i, state.PlacedInGrid, now))
		if placed > 0 {
			w := round(tileWidth * placed)
			color := anim.Blend(bg, it.Color, placed)
			swatches = append(swatches, segment{x: x + (tileWidth-w)/2, text: block(w, color)})
			if i == m.cursor {
				swatches = append(swatches, segment{x: x - 2, text: styles.AccentText.Bold(true).Render("›")})
			}
		}

		reveal := clamp01(m.scene.item(i, state.LabelRevealed, now))
		if reveal < 0.05 {
			continue
		}
		labelStyle := lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color(anim.Blend(bg, m.theme.Text, reveal)))
		text := labelStyle.Render(fmt.Sprintf("%d %s", i+1, it.Label))
		if strings.EqualFold(snap.SelectedColor, it.Color) {
			text += styles.SuccessText.Render(" ✓")
		}
		labels = append(labels, segment{x: x, text: text})
	}
	return compose(ScreenWidth, bg, swatches...), compose(ScreenWidth, bg, labels...)
}
