package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/cardfly/internal/choreo"
	"github.com/five82/cardfly/internal/prefs"
	"github.com/five82/cardfly/internal/sched"
	"github.com/five82/cardfly/internal/state"
)

// panel is the overlay currently shown above the screen.
type panel int

const (
	panelNone panel = iota
	panelHelp
	panelActivity
)

// Dispatcher hands scheduler callbacks to the UI loop. sched.Realtime
// implements it.
type Dispatcher interface {
	Dispatch() <-chan func()
	Done() <-chan struct{}
}

// Options configures the UI.
type Options struct {
	Store         *state.Store
	Choreographer *choreo.Choreographer
	Clock         sched.Scheduler
	// Dispatcher is optional; without it scheduled callbacks must be run by
	// the caller.
	Dispatcher    Dispatcher
	Unit          time.Duration
	FrameInterval time.Duration
	ThemeName     string
	PrefsPath     string
	LogFile       string
	Logger        *log.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store      *state.Store
	choreo     *choreo.Choreographer
	clock      sched.Scheduler
	dispatcher Dispatcher
	scene      *scene
	prefsPath  string
	logFile    string
	frame      time.Duration
	log        *log.Logger

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	progress progress.Model
	activity viewport.Model
	width    int
	height   int
	ready    bool
	open     panel
	cursor   int
	status   string
	ticking  bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	frame := opts.FrameInterval
	if frame <= 0 {
		frame = time.Second / 60
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = defaultTheme().Name
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		store:      opts.Store,
		choreo:     opts.Choreographer,
		clock:      opts.Clock,
		dispatcher: opts.Dispatcher,
		scene:      newScene(opts.Store, opts.Clock, opts.Unit),
		prefsPath:  prefsPath,
		logFile:    opts.LogFile,
		frame:      frame,
		log:        logger.With("component", "ui"),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		activity:   viewport.New(modalWidth-6, 10),
	}
	m.applyTheme(GetTheme(themeName))
	m.cursor = m.selectedIndex()
	return m
}

// applyTheme swaps the theme and restyles the bubbles that carry colors.
func (m *Model) applyTheme(t Theme) {
	m.theme = t
	m.progress = progress.New(
		progress.WithSolidFill(t.Accent),
		progress.WithWidth(progressWidth),
		progress.WithoutPercentage(),
	)
	m.progress.EmptyColor = t.Faint

	styles := t.Styles().On(t.Screen)
	m.help.Styles.ShortKey = styles.MutedText
	m.help.Styles.ShortDesc = styles.FaintText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = t.Styles().WarningText
	m.help.Styles.FullDesc = t.Styles().Text
	m.help.Styles.FullSeparator = t.Styles().FaintText
	m.help.Width = ScreenWidth - 2*headerInset
}

func (m Model) selectedIndex() int {
	snap := m.store.Snapshot()
	for i, it := range snap.Items {
		if strings.EqualFold(it.Color, snap.SelectedColor) {
			return i
		}
	}
	return 0
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{startCmd()}
	if m.dispatcher != nil {
		cmds = append(cmds, listenCmd(m.dispatcher))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeActivity()
		return m, nil

	case startMsg:
		return m.replay()

	case dispatchMsg:
		msg()
		tick := m.ensureTicking()
		return m, tea.Batch(listenCmd(m.dispatcher), tick)

	case frameMsg:
		now := m.clock.Now()
		if m.scene.active(now) || m.choreo.Phase() == choreo.Running {
			return m, frameCmd(m.frame)
		}
		m.ticking = false
		return m, nil

	case activityTickMsg:
		if m.open != panelActivity {
			return m, nil
		}
		m.refreshActivity()
		return m, activityTickCmd()
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.open {
	case panelHelp:
		return m.renderHelp()
	case panelActivity:
		return m.renderActivity()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.open {
	case panelHelp:
		// Any key closes help
		m.open = panelNone
		return m, nil
	case panelActivity:
		switch {
		case key.Matches(msg, m.keys.Activity), key.Matches(msg, m.keys.Escape):
			m.open = panelNone
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.open = panelHelp
		return m, nil

	case key.Matches(msg, m.keys.Activity):
		m.open = panelActivity
		m.refreshActivity()
		return m, activityTickCmd()

	case key.Matches(msg, m.keys.CycleTheme):
		m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
		m.savePrefs(func(p *prefs.Prefs) { p.Theme = m.theme.Name })
		return m, nil

	case key.Matches(msg, m.keys.Replay):
		return m.replay()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-gridCols)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(gridCols)
	case key.Matches(msg, m.keys.Left):
		if m.cursor%gridCols > 0 {
			m.moveCursor(-1)
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%gridCols < gridCols-1 {
			m.moveCursor(1)
		}

	case key.Matches(msg, m.keys.Tap):
		return m.tap(m.cursor)

	case key.Matches(msg, m.keys.Pick):
		if i, ok := pickIndex(msg.String()); ok && i < m.store.Len() {
			m.cursor = i
			return m.tap(i)
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next >= 0 && next < m.store.Len() {
		m.cursor = next
	}
}

// replay starts a run, or restarts one according to the re-entry policy.
func (m Model) replay() (tea.Model, tea.Cmd) {
	if err := m.choreo.Run(); err != nil {
		switch {
		case errors.Is(err, choreo.ErrRunActive):
			m.status = "Still animating"
		default:
			m.status = fmt.Sprintf("Replay failed: %v", err)
			m.log.Error("replay failed", "err", err)
		}
		return m, nil
	}
	cmd := m.ensureTicking()
	return m, cmd
}

// tap chooses the color at index for the card.
func (m Model) tap(index int) (tea.Model, tea.Cmd) {
	item, err := m.choreo.Tap(index)
	if err != nil {
		switch {
		case errors.Is(err, choreo.ErrNotPlaced):
			m.status = fmt.Sprintf("%s is not in the grid yet", item.Name)
		default:
			m.status = fmt.Sprintf("Tap failed: %v", err)
			m.log.Error("tap failed", "index", index, "err", err)
		}
		return m, nil
	}
	m.savePrefs(func(p *prefs.Prefs) { p.SelectedColor = item.Name })
	cmd := m.ensureTicking()
	return m, cmd
}

func (m *Model) savePrefs(fn func(*prefs.Prefs)) {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Update(m.prefsPath, fn); err != nil {
		m.log.Warn("save prefs failed", "path", m.prefsPath, "err", err)
	}
}

// quit stops the choreography before leaving so no timer outlives the
// screen.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.choreo.Stop()
	m.scene.close()
	return m, tea.Quit
}

// ensureTicking starts the frame loop if it is not already running.
func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return frameCmd(m.frame)
}

// renderMain renders the phone screen centered in the terminal.
func (m Model) renderMain() string {
	now := m.clock.Now()
	snap := m.store.Snapshot()

	lines := make([]string, 0, 32)
	lines = append(lines, m.renderTopBar(), blank(ScreenWidth, m.theme.Screen))
	lines = append(lines, m.renderCard(now)...)
	lines = append(lines, blank(ScreenWidth, m.theme.Screen), m.renderHeader(now))
	lines = append(lines, m.renderTray(snap, now)...)
	lines = append(lines, m.renderFooter()...)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		strings.Join(lines, "\n"),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)),
	)
}

// Messages

type startMsg struct{}

type frameMsg time.Time

// dispatchMsg carries one scheduler callback onto the UI loop.
type dispatchMsg func()

// Commands

func startCmd() tea.Cmd {
	return func() tea.Msg { return startMsg{} }
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func listenCmd(d Dispatcher) tea.Cmd {
	if d == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case fn := <-d.Dispatch():
			return dispatchMsg(fn)
		case <-d.Done():
			return nil
		}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled. The choreographer is stopped either way.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	opts.Choreographer.Stop()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
