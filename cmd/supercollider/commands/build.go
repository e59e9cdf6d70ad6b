package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/inful/supercollider/internal/config"
	"github.com/inful/supercollider/internal/foundation/errors"
	"github.com/inful/supercollider/internal/metrics"
	"github.com/inful/supercollider/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Dest        string   `short:"d" name:"dest" help:"Output directory (overrides config dest)"`
	Adapters    []string `short:"a" name:"adapter" help:"Adapters to run, in order (overrides config adapters)"`
	MetricsFile string   `name:"metrics-file" help:"Write Prometheus metrics for the run to this file"`
	Strict      bool     `help:"Exit non-zero when the build produced warnings"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(root.Config, b.Dest, b.Adapters, b.MetricsFile)
	if err != nil {
		return err
	}
	report, err := RunBuild(ctx, cfg, logger(g), os.Stdout)
	if err != nil {
		return err
	}
	if b.Strict && len(report.Warnings) > 0 {
		return errors.NewError(errors.CategoryBuild, "build produced warnings").
			WithContext("warnings", len(report.Warnings)).
			Build()
	}
	return nil
}

// loadConfig loads the file and applies command line overrides.
func loadConfig(path, dest string, adapters []string, metricsFile string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dest != "" {
		cfg.Dest = dest
	}
	if len(adapters) > 0 {
		cfg.Adapters = adapters
	}
	if metricsFile != "" {
		cfg.MetricsFile = metricsFile
	}
	return cfg, config.Validate(cfg)
}

// RunBuild runs one pipeline pass for cfg and prints a summary to out.
func RunBuild(ctx context.Context, cfg *config.Config, log *slog.Logger, out io.Writer) (*pipeline.Report, error) {
	var recorder *metrics.PrometheusRecorder
	opts := []pipeline.Option{pipeline.WithLogger(log)}
	if cfg.MetricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(prom.NewRegistry())
		opts = append(opts, pipeline.WithRecorder(recorder))
	}

	p, err := pipeline.NewFromConfig(cfg, opts...)
	if err != nil {
		return nil, err
	}
	log.Info("Starting documentation build", "config", cfg.Snapshot())

	report, runErr := p.RunFromConfig(ctx)
	if report != nil {
		for _, w := range report.Warnings {
			log.Warn("Build warning", "category", string(errors.GetCategory(w)), "error", w)
		}
		_, _ = fmt.Fprintln(out, report.Summary())
	}
	if recorder != nil {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn("Failed to write metrics file", "path", cfg.MetricsFile, "error", err)
		}
	}
	return report, runErr
}

func logger(g *Global) *slog.Logger {
	if g != nil && g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}
