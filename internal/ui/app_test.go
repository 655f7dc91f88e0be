package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cardfly/internal/catalog"
	"github.com/five82/cardfly/internal/choreo"
	"github.com/five82/cardfly/internal/prefs"
	"github.com/five82/cardfly/internal/sched"
	"github.com/five82/cardfly/internal/state"
)

type harness struct {
	clock  *sched.Virtual
	store  *state.Store
	choreo *choreo.Choreographer
	prefs  string
}

func newHarness(t *testing.T, opts Options) (Model, *harness) {
	t.Helper()
	h := &harness{
		clock: sched.NewVirtual(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)),
		store: state.New(catalog.Swatches(), state.Options{}),
		prefs: filepath.Join(t.TempDir(), "prefs.toml"),
	}
	h.choreo = choreo.New(h.store, h.clock, choreo.Options{})

	opts.Store = h.store
	opts.Choreographer = h.choreo
	opts.Clock = h.clock
	opts.PrefsPath = h.prefs
	m := New(opts)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	return m, h
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// settle starts a run and advances past every animation.
func settle(t *testing.T, m Model, h *harness) Model {
	t.Helper()
	m = update(t, m, startMsg{})
	h.clock.Advance(4 * time.Second)
	if got := h.choreo.Phase(); got != choreo.Settled {
		t.Fatalf("phase = %v, want settled", got)
	}
	return m
}

func TestView_BeforeReady(t *testing.T) {
	h := &harness{
		clock: sched.NewVirtual(time.Now()),
		store: state.New(catalog.Swatches(), state.Options{}),
	}
	h.choreo = choreo.New(h.store, h.clock, choreo.Options{})
	m := New(Options{Store: h.store, Choreographer: h.choreo, Clock: h.clock})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestView_InitialScreenHidesChoreographedParts(t *testing.T) {
	m, _ := newHarness(t, Options{})

	view := m.View()
	if !strings.Contains(view, "Card color") {
		t.Fatalf("top bar missing from view:\n%s", view)
	}
	for _, hidden := range []string{"Choose a color", "View all", "#FE9EC4", "cardfly"} {
		if strings.Contains(view, hidden) {
			t.Fatalf("view shows %q before the run:\n%s", hidden, view)
		}
	}
	if !strings.Contains(view, "idle") {
		t.Fatalf("view missing idle phase:\n%s", view)
	}
}

func TestView_SettledScreenShowsEverything(t *testing.T) {
	m, h := newHarness(t, Options{})
	m = settle(t, m, h)

	view := m.View()
	wants := []string{"Choose a color", "View all", "cardfly", "4242", "settled", "4 #FE9EC4 ✓"}
	for _, sw := range catalog.Swatches() {
		wants = append(wants, sw.Label)
	}
	for _, want := range wants {
		if !strings.Contains(view, want) {
			t.Fatalf("settled view missing %q:\n%s", want, view)
		}
	}
}

func TestView_LabelsAppearInRevealOrder(t *testing.T) {
	m, h := newHarness(t, Options{})
	m = update(t, m, startMsg{})

	// Position 0 visits index 5 (Blue); its label is revealed at 1.01 and
	// fully faded in by 1.36. Index 0 (Green) is still unlabeled.
	h.clock.Advance(1400 * time.Millisecond)
	now := h.clock.Now()
	if got := m.scene.item(5, state.LabelRevealed, now); got != 1 {
		t.Fatalf("Blue label = %v at 1.4s, want 1", got)
	}
	if got := m.scene.item(0, state.LabelRevealed, now); got != 0 {
		t.Fatalf("Green label = %v at 1.4s, want 0", got)
	}
	if got := m.scene.item(0, state.PlacedInGrid, now); got != 0 {
		t.Fatalf("Green placement = %v at the instant it lands, want 0", got)
	}

	h.clock.Advance(4 * time.Second)
	view := m.View()
	if !strings.Contains(view, "6 #4460EE") || !strings.Contains(view, "1 #1565348") {
		t.Fatalf("labels missing once settled:\n%s", view)
	}
}

func TestTap_BeforePlacedSetsStatus(t *testing.T) {
	m, h := newHarness(t, Options{})
	m = press(t, m, "2")

	if !strings.Contains(m.status, "Violet is not in the grid yet") {
		t.Fatalf("status = %q, want not-in-grid message", m.status)
	}
	if got := h.store.Snapshot().SelectedColor; got != "#FE9EC4" {
		t.Fatalf("SelectedColor = %q, want unchanged #FE9EC4", got)
	}
	if !strings.Contains(m.View(), "not in the grid yet") {
		t.Fatalf("status not rendered")
	}

	m = press(t, m, "j")
	if m.status != "" {
		t.Fatalf("status = %q, want cleared by next key", m.status)
	}
}

func TestTap_SelectsAndSavesPrefs(t *testing.T) {
	m, h := newHarness(t, Options{})
	m = settle(t, m, h)
	m = press(t, m, "6")

	if m.cursor != 5 {
		t.Fatalf("cursor = %d, want 5", m.cursor)
	}
	if got := h.store.Snapshot().SelectedColor; got != "#4460EE" {
		t.Fatalf("SelectedColor = %q, want #4460EE", got)
	}
	if got := prefs.Load(h.prefs).SelectedColor; got != "Blue" {
		t.Fatalf("saved SelectedColor = %q, want Blue", got)
	}
}

func TestTap_EnterUsesCursor(t *testing.T) {
	m, h := newHarness(t, Options{})
	m = settle(t, m, h)
	m = press(t, m, "h", "enter")

	if got := h.store.Snapshot().SelectedColor; got != "#FFD90A" {
		t.Fatalf("SelectedColor = %q, want Yellow #FFD90A", got)
	}
}

func TestCursorMovement(t *testing.T) {
	m, _ := newHarness(t, Options{})
	if m.cursor != 3 {
		t.Fatalf("initial cursor = %d, want 3 (Pink)", m.cursor)
	}

	steps := []struct {
		key  string
		want int
	}{
		{"h", 2},
		{"h", 2},
		{"j", 4},
		{"j", 4},
		{"l", 5},
		{"l", 5},
		{"k", 3},
		{"k", 1},
		{"k", 1},
	}
	for i, step := range steps {
		m = press(t, m, step.key)
		if m.cursor != step.want {
			t.Fatalf("step %d (%s): cursor = %d, want %d", i, step.key, m.cursor, step.want)
		}
	}
}

func TestCardColorBlendsOnTap(t *testing.T) {
	m, h := newHarness(t, Options{})
	m = settle(t, m, h)
	m = press(t, m, "6")

	if got := m.scene.cardColor(h.clock.Now()); got != "#FE9EC4" {
		t.Fatalf("card color at tap = %q, want previous #FE9EC4", got)
	}
	h.clock.Advance(150 * time.Millisecond)
	mid := m.scene.cardColor(h.clock.Now())
	if mid == "#FE9EC4" || mid == "#4460EE" {
		t.Fatalf("card color mid-transition = %q, want a blend", mid)
	}
	h.clock.Advance(time.Second)
	if got := m.scene.cardColor(h.clock.Now()); got != "#4460EE" {
		t.Fatalf("card color after transition = %q, want #4460EE", got)
	}
}

func TestReplay_RestartsFromSettled(t *testing.T) {
	m, h := newHarness(t, Options{})
	m = settle(t, m, h)
	m = press(t, m, "r")

	if got := h.choreo.Phase(); got != choreo.Running {
		t.Fatalf("phase = %v, want running", got)
	}
	for i, it := range h.store.Snapshot().Items {
		for _, f := range state.ItemFlags {
			if it.Flag(f) {
				t.Fatalf("item %d flag %v still set after replay", i, f)
			}
		}
	}
	if strings.Contains(m.View(), "Choose a color") {
		t.Fatalf("header still visible right after replay")
	}
}

func TestQuit_StopsChoreographer(t *testing.T) {
	m, h := newHarness(t, Options{})
	m = update(t, m, startMsg{})

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("quit returned nil cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit cmd did not produce tea.QuitMsg")
	}
	if got := h.choreo.Phase(); got != choreo.Stopped {
		t.Fatalf("phase = %v, want stopped", got)
	}
	if !h.store.Disposed() {
		t.Fatalf("store not disposed after quit")
	}
	if ran := h.clock.Advance(2 * time.Second); ran != 0 {
		t.Fatalf("%d timers fired after quit, want 0", ran)
	}
}

func TestCycleTheme_SavesPrefs(t *testing.T) {
	m, h := newHarness(t, Options{})
	m = press(t, m, "T")

	if m.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", m.theme.Name)
	}
	saved := prefs.Load(h.prefs)
	if saved.Theme != "Slate" {
		t.Fatalf("saved Theme = %q, want Slate", saved.Theme)
	}
	if saved.SelectedColor != "Pink" {
		t.Fatalf("saved SelectedColor = %q, want Pink kept", saved.SelectedColor)
	}
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newHarness(t, Options{})
	m = press(t, m, "?")
	if m.open != panelHelp {
		t.Fatalf("open = %v, want help", m.open)
	}
	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") || !strings.Contains(view, "Replay") {
		t.Fatalf("help overlay missing content:\n%s", view)
	}

	m = press(t, m, "x")
	if m.open != panelNone {
		t.Fatalf("open = %v, want none after any key", m.open)
	}
}

func TestActivityOverlay(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "cardfly.log")
	if err := os.WriteFile(logFile, []byte("12:00:00 INFO cardfly: run started\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, _ := newHarness(t, Options{LogFile: logFile})
	next, cmd := m.Update(keyMsg("a"))
	m = next.(Model)
	if m.open != panelActivity {
		t.Fatalf("open = %v, want activity", m.open)
	}
	if cmd == nil {
		t.Fatalf("activity overlay did not schedule a refresh")
	}
	if view := m.View(); !strings.Contains(view, "run started") {
		t.Fatalf("activity overlay missing log line:\n%s", view)
	}

	m = press(t, m, "esc")
	if m.open != panelNone {
		t.Fatalf("open = %v, want none after esc", m.open)
	}
	if _, cmd := m.Update(activityTickMsg(time.Now())); cmd != nil {
		t.Fatalf("closed overlay kept refreshing")
	}
}

func TestActivityOverlay_LoggingDisabled(t *testing.T) {
	m, _ := newHarness(t, Options{})
	m = press(t, m, "a")
	if view := m.View(); !strings.Contains(view, "Logging is disabled") {
		t.Fatalf("activity overlay missing disabled notice:\n%s", view)
	}
}

func TestFrameLoop_StopsWhenStill(t *testing.T) {
	m, h := newHarness(t, Options{})

	next, cmd := m.Update(startMsg{})
	m = next.(Model)
	if cmd == nil || !m.ticking {
		t.Fatalf("start did not begin ticking")
	}

	next, cmd = m.Update(frameMsg(h.clock.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("frame loop stopped while running")
	}

	h.clock.Advance(4 * time.Second)
	next, cmd = m.Update(frameMsg(h.clock.Now()))
	m = next.(Model)
	if cmd != nil || m.ticking {
		t.Fatalf("frame loop kept ticking after settle")
	}

	if _, cmd := m.Update(keyMsg("r")); cmd == nil {
		t.Fatalf("replay did not restart ticking")
	}
}

func TestDispatchMsg_RunsCallback(t *testing.T) {
	m, _ := newHarness(t, Options{})
	ran := false
	m = update(t, m, dispatchMsg(func() { ran = true }))
	if !ran {
		t.Fatalf("dispatched callback did not run")
	}
}
