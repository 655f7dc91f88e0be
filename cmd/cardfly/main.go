package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/cardfly/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional)")
	speed := flag.Float64("speed", 0, "animation speed multiplier (optional, defaults to config)")
	strict := flag.Bool("strict", false, "panic on programmer errors")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Strict:     *strict,
	}
	if s := *speed; s > 0 {
		opts.Speed = s
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "cardfly: %v\n", err)
		return 1
	}
	return 0
}
