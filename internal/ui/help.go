package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/cardfly/internal/choreo"
)

// renderFooter renders the timeline progress line and the help or status
// line under the tray.
func (m Model) renderFooter() []string {
	styles := m.theme.Styles().On(m.theme.Screen)

	phase := m.choreo.Phase()
	var phaseText string
	switch phase {
	case choreo.Running:
		phaseText = styles.AccentText.Render(phase.String())
	case choreo.Settled:
		phaseText = styles.SuccessText.Render(phase.String())
	case choreo.Stopped:
		phaseText = styles.DangerText.Render(phase.String())
	default:
		phaseText = styles.FaintText.Render(phase.String())
	}
	bar := m.progress.ViewAs(m.choreo.Progress())
	progressLine := compose(ScreenWidth, m.theme.Screen,
		segment{x: headerInset, text: bar},
		segment{x: headerInset + ansi.StringWidth(bar) + 1, text: phaseText},
	)

	bottom := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.status != "" {
		bottom = styles.WarningText.Render(m.status)
	}
	return []string{progressLine, compose(ScreenWidth, m.theme.Screen, segment{x: headerInset, text: bottom})}
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	full := m.help
	full.ShowAll = true
	full.Width = modalWidth - 6
	b.WriteString(full.View(m.keys))

	return m.overlay(b.String())
}

// overlay centers a modal over the whole terminal.
func (m Model) overlay(content string) string {
	modal := m.theme.Styles().Modal.Width(modalWidth).Render(content)
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)),
	)
}
