package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the runtime settings for cardfly.
type Config struct {
	Speed     float64
	FrameRate int
	Reentry   string
	Strict    bool
	LogFile   string
	LogLevel  string
}

const (
	defaultConfigPath = "~/.config/cardfly/config.toml"
	defaultLogFile    = "~/.local/state/cardfly/cardfly.log"
	defaultLogLevel   = "info"
	defaultReentry    = "restart"
	defaultSpeed      = 1.0
	defaultFrameRate  = 60

	minSpeed     = 0.1
	maxSpeed     = 10.0
	minFrameRate = 10
	maxFrameRate = 120
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Speed:     defaultSpeed,
		FrameRate: defaultFrameRate,
		Reentry:   defaultReentry,
		LogFile:   mustExpand(defaultLogFile),
		LogLevel:  defaultLogLevel,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Speed     float64 `toml:"speed"`
		FrameRate int     `toml:"frame_rate"`
		Reentry   string  `toml:"reentry"`
		Strict    bool    `toml:"strict"`
		LogFile   *string `toml:"log_file"`
		LogLevel  string  `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.Speed > 0 {
		cfg.Speed = raw.Speed
	}
	if raw.FrameRate > 0 {
		cfg.FrameRate = raw.FrameRate
	}
	if r := strings.ToLower(strings.TrimSpace(raw.Reentry)); r != "" {
		cfg.Reentry = r
	}
	cfg.Strict = raw.Strict
	if lvl := strings.ToLower(strings.TrimSpace(raw.LogLevel)); lvl != "" {
		cfg.LogLevel = lvl
	}
	// An explicit empty log_file disables logging.
	if raw.LogFile != nil {
		cfg.LogFile = strings.TrimSpace(*raw.LogFile)
		if cfg.LogFile != "" {
			cfg.LogFile = mustExpand(cfg.LogFile)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the application cannot run with.
func (c Config) Validate() error {
	switch c.Reentry {
	case "restart", "reject":
	default:
		return fmt.Errorf("invalid reentry %q (want restart or reject)", c.Reentry)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// WithSpeed returns a copy with speed overridden and clamped.
func (c Config) WithSpeed(speed float64) Config {
	if speed > 0 {
		c.Speed = speed
		c.normalize()
	}
	return c
}

// TimeUnit is the wall duration of one animation time unit.
func (c Config) TimeUnit() time.Duration {
	speed := c.Speed
	if speed <= 0 {
		speed = defaultSpeed
	}
	return time.Duration(float64(time.Second) / speed)
}

// FrameInterval is the redraw cadence while animations are in flight.
func (c Config) FrameInterval() time.Duration {
	fps := c.FrameRate
	if fps <= 0 {
		fps = defaultFrameRate
	}
	return time.Second / time.Duration(fps)
}

func (c *Config) normalize() {
	c.Speed = min(max(c.Speed, minSpeed), maxSpeed)
	c.FrameRate = min(max(c.FrameRate, minFrameRate), maxFrameRate)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
