package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cardfly/internal/logtail"
)

type activityTickMsg time.Time

func activityTickCmd() tea.Cmd {
	return tea.Tick(ActivityRefresh, func(t time.Time) tea.Msg {
		return activityTickMsg(t)
	})
}

// refreshActivity rereads the log tail into the activity viewport, keeping
// the view pinned to the newest line.
func (m *Model) refreshActivity() {
	var content string
	lines, err := logtail.Read(m.logFile, ActivityLines)
	switch {
	case m.logFile == "":
		content = "Logging is disabled (log_file is empty)."
	case err != nil:
		content = fmt.Sprintf("Activity unavailable: %v", err)
	case len(lines) == 0:
		content = "No activity yet."
	default:
		content = strings.Join(lines, "\n")
	}
	m.activity.SetContent(content)
	m.activity.GotoBottom()
}

// resizeActivity fits the viewport inside the modal.
func (m *Model) resizeActivity() {
	m.activity.Width = modalWidth - 6
	m.activity.Height = max(m.height-10, 5)
}

// renderActivity renders the activity overlay.
func (m Model) renderActivity() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Activity"))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render(m.logFile))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(m.activity.View())

	return m.overlay(b.String())
}
