package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/cardfly/internal/anim"
	"github.com/five82/cardfly/internal/state"
)

// renderTopBar renders the back arrow, title and profile badge.
func (m Model) renderTopBar() string {
	styles := m.theme.Styles().On(m.theme.Screen)
	back := styles.Text.Render("‹")
	title := styles.MutedText.Render("Card color")
	badge := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Accent)).
		Foreground(lipgloss.Color(m.theme.Screen)).
		Bold(true).
		Render(" JD ")

	titleX := (ScreenWidth - ansi.StringWidth(title)) / 2
	badgeX := ScreenWidth - headerInset - ansi.StringWidth(badge)
	return compose(ScreenWidth, m.theme.Screen,
		segment{x: headerInset, text: back},
		segment{x: titleX, text: title},
		segment{x: badgeX, text: badge},
	)
}

// renderHeader renders "Choose a color" and "View all", which slide in from
// opposite edges as the header is revealed.
func (m Model) renderHeader(now time.Time) string {
	p := m.scene.stage(state.HeaderRevealed, now)
	if p <= 0 {
		return blank(ScreenWidth, m.theme.Screen)
	}

	styles := m.theme.Styles().On(m.theme.Screen)
	left := styles.Title.Render("Choose a color")
	right := styles.AccentText.Render("View all")
	lw := ansi.StringWidth(left)
	rw := ansi.StringWidth(right)

	lx := round(anim.Lerp(float64(-lw), headerInset, p))
	rx := round(anim.Lerp(ScreenWidth, float64(ScreenWidth-headerInset-rw), p))
	return compose(ScreenWidth, m.theme.Screen,
		segment{x: lx, text: left},
		segment{x: rx, text: right},
	)
}
