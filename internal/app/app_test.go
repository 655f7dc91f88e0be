package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/cardfly/internal/choreo"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestNewSession_WiresConfigAndPrefs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	logFile := filepath.Join(dir, "state", "cardfly.log")
	configPath := filepath.Join(dir, "config.toml")
	writeFile(t, configPath, "speed = 2.0\nreentry = \"reject\"\nlog_file = \""+logFile+"\"\n")
	prefsPath := filepath.Join(dir, "prefs.toml")
	writeFile(t, prefsPath, "theme = \"Slate\"\nselected_color = \"Blue\"\n")

	s, err := newSession(Options{ConfigPath: configPath, PrefsPath: prefsPath})
	if err != nil {
		t.Fatalf("newSession returned error: %v", err)
	}
	defer s.close()

	if got := s.cfg.TimeUnit(); got != 500*time.Millisecond {
		t.Fatalf("TimeUnit = %v, want 500ms", got)
	}
	if got := s.store.Snapshot().SelectedColor; got != "#4460EE" {
		t.Fatalf("SelectedColor = %q, want #4460EE", got)
	}
	if s.prefs.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", s.prefs.Theme)
	}
	if s.choreo.Phase() != choreo.Idle {
		t.Fatalf("Phase = %v, want idle", s.choreo.Phase())
	}
	if _, err := os.Stat(logFile); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}

func TestNewSession_OverridesWin(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	configPath := filepath.Join(dir, "config.toml")
	writeFile(t, configPath, "speed = 2.0\nlog_file = \"\"\n")

	s, err := newSession(Options{
		ConfigPath: configPath,
		PrefsPath:  filepath.Join(dir, "prefs.toml"),
		Speed:      4,
		Strict:     true,
	})
	if err != nil {
		t.Fatalf("newSession returned error: %v", err)
	}
	defer s.close()

	if s.cfg.Speed != 4 {
		t.Fatalf("Speed = %v, want 4", s.cfg.Speed)
	}
	if !s.cfg.Strict {
		t.Fatalf("Strict = false, want true")
	}
	if got := s.store.Snapshot().SelectedColor; got != "#FE9EC4" {
		t.Fatalf("SelectedColor = %q, want default Pink", got)
	}
}

func TestNewSession_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	configPath := filepath.Join(dir, "config.toml")
	writeFile(t, configPath, "reentry = \"sometimes\"\n")

	_, err := newSession(Options{ConfigPath: configPath})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("newSession error = %v, want load config error", err)
	}
}

func TestSessionClose_Idempotent(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	configPath := filepath.Join(dir, "config.toml")
	writeFile(t, configPath, "log_file = \"\"\n")

	s, err := newSession(Options{ConfigPath: configPath, PrefsPath: filepath.Join(dir, "prefs.toml")})
	if err != nil {
		t.Fatalf("newSession returned error: %v", err)
	}
	if err := s.choreo.Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	s.choreo.Stop()
	s.close()

	if !s.store.Disposed() {
		t.Fatalf("store not disposed after close")
	}
	if err := s.choreo.Run(); err != choreo.ErrStopped {
		t.Fatalf("Run after close = %v, want ErrStopped", err)
	}
}
