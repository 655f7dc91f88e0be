package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/five82/cardfly/internal/catalog"
	"github.com/five82/cardfly/internal/choreo"
	"github.com/five82/cardfly/internal/config"
	"github.com/five82/cardfly/internal/logging"
	"github.com/five82/cardfly/internal/prefs"
	"github.com/five82/cardfly/internal/sched"
	"github.com/five82/cardfly/internal/state"
	"github.com/five82/cardfly/internal/ui"
)

// Options configure the cardfly application.
type Options struct {
	ConfigPath string
	PrefsPath  string  // empty uses default ~/.config/cardfly/prefs.toml
	Speed      float64 // zero keeps the configured speed
	Strict     bool    // forces strict mode on
}

// session holds everything one screen needs.
type session struct {
	cfg    config.Config
	prefs  prefs.Prefs
	base   *log.Logger
	log    *log.Logger
	closer io.Closer
	store  *state.Store
	clock  *sched.Realtime
	choreo *choreo.Choreographer
}

func newSession(opts Options) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.WithSpeed(opts.Speed)
	if opts.Strict {
		cfg.Strict = true
	}

	policy, err := choreo.ParsePolicy(cfg.Reentry)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	swatch, ok := catalog.Lookup(userPrefs.SelectedColor)
	if !ok {
		swatch, _ = catalog.Lookup(catalog.DefaultSelection)
	}

	store := state.New(catalog.Swatches(), state.Options{
		Strict:        cfg.Strict,
		SelectedColor: swatch.Hex,
	})
	clock := sched.NewRealtime(0)
	c := choreo.New(store, clock, choreo.Options{
		Unit:   cfg.TimeUnit(),
		Policy: policy,
		Strict: cfg.Strict,
		Logger: logger,
	})

	return &session{
		cfg:    cfg,
		prefs:  userPrefs,
		base:   logger,
		log:    logger.With("component", "app"),
		closer: closer,
		store:  store,
		clock:  clock,
		choreo: c,
	}, nil
}

// close tears the session down; it is safe after the UI already stopped the
// choreographer.
func (s *session) close() {
	s.choreo.Stop()
	s.clock.Close()
	if err := s.closer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "cardfly: close log: %v\n", err)
	}
}

// Run boots the cardfly TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	s.log.Info("starting",
		"speed", s.cfg.Speed,
		"reentry", s.cfg.Reentry,
		"strict", s.cfg.Strict,
		"color", s.prefs.SelectedColor,
		"theme", s.prefs.Theme,
	)

	err = ui.Run(ctx, ui.Options{
		Store:         s.store,
		Choreographer: s.choreo,
		Clock:         s.clock,
		Dispatcher:    s.clock,
		Unit:          s.cfg.TimeUnit(),
		FrameInterval: s.cfg.FrameInterval(),
		ThemeName:     s.prefs.Theme,
		PrefsPath:     opts.PrefsPath,
		LogFile:       s.cfg.LogFile,
		Logger:        s.base,
	})
	if err != nil {
		s.log.Error("ui exited", "err", err)
		return fmt.Errorf("run ui: %w", err)
	}
	s.log.Info("exited")
	return nil
}
