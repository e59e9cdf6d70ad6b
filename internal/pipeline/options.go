package pipeline

import (
	"log/slog"

	"github.com/inful/supercollider/internal/config"
	"github.com/inful/supercollider/internal/metrics"
	"github.com/inful/supercollider/internal/parse"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used by every stage.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder used by every stage.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = metrics.OrNoop(r) }
}

// WithDest sets the destination directory handed to adapters.
func WithDest(dir string) Option {
	return func(p *Pipeline) { p.dest = dir }
}

// WithTitle sets the site title used by the built-in html adapter.
func WithTitle(title string) Option {
	return func(p *Pipeline) { p.title = title }
}

// WithRevision stamps builds with a fixed revision instead of reading it
// from the repository containing the sources.
func WithRevision(rev string) Option {
	return func(p *Pipeline) { p.revision = rev }
}

// WithConcurrency bounds parallel file extraction.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) { p.parseOpts = append(p.parseOpts, parse.WithConcurrency(n)) }
}

// WithParserOptions passes options through to the parser, e.g. custom
// extractors.
func WithParserOptions(opts ...parse.Option) Option {
	return func(p *Pipeline) { p.parseOpts = append(p.parseOpts, opts...) }
}

// WithConfig sets the configuration RunFromConfig scans and copies its dest,
// title and concurrency settings. Options given after it take precedence.
func WithConfig(cfg *config.Config) Option {
	return func(p *Pipeline) {
		p.cfg = cfg
		if cfg == nil {
			return
		}
		p.dest = cfg.Dest
		p.title = cfg.Title
		if cfg.Concurrency > 0 {
			p.parseOpts = append(p.parseOpts, parse.WithConcurrency(cfg.Concurrency))
		}
	}
}
