package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Speed != defaultSpeed {
		t.Fatalf("Speed = %v, want %v", cfg.Speed, defaultSpeed)
	}
	if cfg.FrameRate != defaultFrameRate {
		t.Fatalf("FrameRate = %d, want %d", cfg.FrameRate, defaultFrameRate)
	}
	if cfg.Reentry != "restart" {
		t.Fatalf("Reentry = %q, want restart", cfg.Reentry)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.TimeUnit() != time.Second {
		t.Fatalf("TimeUnit = %v, want 1s", cfg.TimeUnit())
	}
}

func TestLoad_ParsesConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
speed = 2.0
frame_rate = 30
reentry = "  Reject "
strict = true
log_file = "  ~/logs/cardfly.log  "
log_level = "DEBUG"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Speed != 2 || cfg.TimeUnit() != 500*time.Millisecond {
		t.Fatalf("Speed = %v TimeUnit = %v, want 2 and 500ms", cfg.Speed, cfg.TimeUnit())
	}
	if cfg.FrameRate != 30 {
		t.Fatalf("FrameRate = %d, want 30", cfg.FrameRate)
	}
	if cfg.Reentry != "reject" || !cfg.Strict || cfg.LogLevel != "debug" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
}

func TestLoad_EmptyLogFileDisablesLogging(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`log_file = ""`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogFile != "" {
		t.Fatalf("LogFile = %q, want empty", cfg.LogFile)
	}
}

func TestLoad_ClampsOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("speed = 500.0\nframe_rate = 1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Speed != maxSpeed {
		t.Fatalf("Speed = %v, want %v", cfg.Speed, maxSpeed)
	}
	if cfg.FrameRate != minFrameRate {
		t.Fatalf("FrameRate = %d, want %d", cfg.FrameRate, minFrameRate)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad toml", `speed = [`, "parse config"},
		{"bad reentry", `reentry = "sometimes"`, "invalid reentry"},
		{"bad level", `log_level = "loud"`, "invalid log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestWithSpeedAndFrameInterval(t *testing.T) {
	cfg := Default()
	if got := cfg.WithSpeed(0).Speed; got != defaultSpeed {
		t.Fatalf("WithSpeed(0).Speed = %v, want unchanged", got)
	}
	if got := cfg.WithSpeed(0.01).Speed; got != minSpeed {
		t.Fatalf("WithSpeed(0.01).Speed = %v, want %v", got, minSpeed)
	}
	if got := cfg.FrameInterval(); got != time.Second/60 {
		t.Fatalf("FrameInterval = %v, want %v", got, time.Second/60)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
