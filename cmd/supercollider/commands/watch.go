package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inful/supercollider/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Dest        string        `short:"d" name:"dest" help:"Output directory (overrides config dest)"`
	Adapters    []string      `short:"a" name:"adapter" help:"Adapters to run, in order (overrides config adapters)"`
	MetricsFile string        `name:"metrics-file" help:"Write Prometheus metrics after each run to this file"`
	Debounce    time.Duration `default:"300ms" help:"Quiet period after the last change before rebuilding"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(root.Config, w.Dest, w.Adapters, w.MetricsFile)
	if err != nil {
		return err
	}
	log := logger(g)

	rebuild := func(ctx context.Context) {
		if _, err := RunBuild(ctx, cfg, log, os.Stdout); err != nil {
			log.Warn("Rebuild failed", "error", err)
		}
	}
	rebuild(ctx)
	if ctx.Err() != nil {
		return nil
	}

	watcher, err := watch.New(cfg.Sources.All(), rebuild,
		watch.WithDebounce(w.Debounce),
		watch.WithIgnore(cfg.Dest),
		watch.WithLogger(log))
	if err != nil {
		return err
	}
	log.Info("Watching sources for changes", "roots", len(cfg.Sources.All()), "debounce", w.Debounce)
	return watcher.Run(ctx)
}
