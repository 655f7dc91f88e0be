package ui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/cardfly/internal/state"
)

const cardInner = cardWidth - 4

// cardFace renders the card at full size in the given color.
func cardFace(color string) []string {
	face := lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(ink(color))).
		Width(cardWidth).
		Height(cardHeight).
		Padding(1, 2)

	body := strings.Join([]string{
		spread("cardfly", "◖◗"),
		"",
		"•••• •••• •••• 4242",
		"",
		spread("CARD HOLDER", "12/29"),
	}, "\n")
	return strings.Split(face.Render(body), "\n")
}

// spread pads between left and right to fill the card's inner width.
func spread(left, right string) string {
	gap := cardInner - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderCard renders the card region. Entering drops the card from above
// while it unfolds around its horizontal axis.
func (m Model) renderCard(now time.Time) []string {
	out := make([]string, cardHeight)
	for y := range out {
		out[y] = blank(ScreenWidth, m.theme.Screen)
	}

	p := m.scene.stage(state.CardEntered, now)
	if p <= 0 {
		return out
	}

	face := cardFace(m.scene.cardColor(now))
	h := len(face)
	rows := round(math.Abs(math.Sin(p*math.Pi/2)) * float64(h))
	rows = min(max(rows, 1), h)

	x := (ScreenWidth - cardWidth) / 2
	top := round(-(1-clamp01(p))*float64(h)) + (h-rows)/2
	for i := range rows {
		y := top + i
		if y < 0 || y >= cardHeight {
			continue
		}
		src := min(h-1, i*h/rows)
		out[y] = compose(ScreenWidth, m.theme.Screen, segment{x: x, text: face[src]})
	}
	return out
}
