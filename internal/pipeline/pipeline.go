package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/inful/supercollider/internal/adapter"
	"github.com/inful/supercollider/internal/build"
	"github.com/inful/supercollider/internal/config"
	"github.com/inful/supercollider/internal/doc"
	"github.com/inful/supercollider/internal/foundation/errors"
	"github.com/inful/supercollider/internal/logfields"
	"github.com/inful/supercollider/internal/metrics"
	"github.com/inful/supercollider/internal/parse"
	"github.com/inful/supercollider/internal/process"
	"github.com/inful/supercollider/internal/source"
	"github.com/inful/supercollider/internal/vcs"
)

// Pipeline owns an adapter registry and the stage components.
type Pipeline struct {
	registry  *adapter.Registry
	parser    *parse.Parser
	processor *process.Processor
	builder   *build.Builder

	logger    *slog.Logger
	recorder  metrics.Recorder
	cfg       *config.Config
	dest      string
	title     string
	revision  string
	parseOpts []parse.Option
}

// New creates a pipeline with an empty adapter registry.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		registry: adapter.NewRegistry(),
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		dest:     config.DefaultDest,
	}
	for _, opt := range opts {
		opt(p)
	}

	parseOpts := append([]parse.Option{parse.WithLogger(p.logger), parse.WithRecorder(p.recorder)}, p.parseOpts...)
	p.parser = parse.NewParser(parseOpts...)
	p.processor = process.NewProcessor(p.logger)
	p.builder = build.NewBuilder(p.logger, p.recorder)
	return p
}

// NewFromConfig creates a pipeline for cfg with the adapters it lists.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	p := New(append([]Option{WithConfig(cfg)}, opts...)...)
	if err := p.UseBuiltin(cfg.Adapters...); err != nil {
		return nil, err
	}
	return p, nil
}

// Use registers fn under name. A name registered again is replaced and
// keeps its place in the adapter order.
func (p *Pipeline) Use(name string, fn adapter.Func) {
	p.registry.Use(name, fn)
}

// Adapters returns the registered adapter names in invocation order.
func (p *Pipeline) Adapters() []string {
	return p.registry.Names()
}

// Run parses group, builds the tree and invokes every registered adapter
// with it. The report is returned even when err is non-nil.
func (p *Pipeline) Run(ctx context.Context, group doc.FileGroup) (*Report, error) {
	report := newReport(uuid.NewString(), p.revision)
	return p.run(ctx, report, group)
}

// RunFromConfig scans the configured source roots and runs the pipeline on
// what it finds.
func (p *Pipeline) RunFromConfig(ctx context.Context) (*Report, error) {
	if p.cfg == nil {
		return nil, errors.ConfigError("pipeline has no configuration").Build()
	}

	report := newReport(uuid.NewString(), p.revision)
	if report.Revision == "" {
		report.Revision = p.detectRevision()
	}
	log := p.logger.With(logfields.BuildID(report.BuildID))

	start := time.Now()
	scanned, err := source.NewScanner(p.cfg.Sources.Roots()).Scan(ctx)
	p.stageDone(report, StageScan, time.Since(start))
	if err != nil {
		return p.abort(report, err)
	}
	for _, st := range doc.SourceTypes {
		p.recorder.AddFilesScanned(st.String(), len(scanned.Files.Files(st)))
	}
	report.Files = scanned.Files.Len()
	p.warn(report, scanned.Warnings...)
	log.Info("Scanned sources", logfields.Count(report.Files), logfields.Stage(string(StageScan)))

	return p.run(ctx, report, scanned.Files)
}

func (p *Pipeline) run(ctx context.Context, report *Report, group doc.FileGroup) (*Report, error) {
	log := p.logger.With(logfields.BuildID(report.BuildID))
	if report.Files == 0 {
		report.Files = group.Len()
	}
	log.Info("Starting documentation build", logfields.Count(report.Files), logfields.Path(p.dest))

	start := time.Now()
	parsed, err := p.parser.Parse(ctx, group).Wait(ctx)
	if err != nil {
		p.stageDone(report, StageParse, time.Since(start))
		return p.abort(report, errors.WrapError(err, errors.CategoryCanceled, "parse canceled").Build())
	}
	p.stageDone(report, StageParse, time.Since(start))
	p.warn(report, parsed.Warnings...)
	report.Records = parsed.Records
	if parsed.Err != nil {
		return p.abort(report, parsed.Err)
	}

	start = time.Now()
	tree, warnings, err := p.processor.Process(parsed.Records)
	p.stageDone(report, StageProcess, time.Since(start))
	if err != nil {
		return p.abort(report, err)
	}
	report.Tree = tree
	p.warn(report, warnings...)

	start = time.Now()
	res, err := p.builder.Build(ctx, build.Request{
		Tree:     tree,
		DestDir:  p.dest,
		BuildID:  report.BuildID,
		Revision: report.Revision,
	}, p.registry)
	p.stageDone(report, StageBuild, time.Since(start))
	report.Build = res
	p.warn(report, res.Warnings()...)
	if err != nil {
		return p.abort(report, err)
	}

	p.complete(report)
	log.Info("Documentation build finished", slog.String("summary", report.Summary()))
	return report, nil
}

func (p *Pipeline) stageDone(report *Report, stage Stage, d time.Duration) {
	report.Durations[stage] = d
	p.recorder.ObserveStageDuration(string(stage), d)
}

func (p *Pipeline) warn(report *Report, warnings ...error) {
	for _, w := range warnings {
		report.Warnings = append(report.Warnings, w)
		p.recorder.IncWarning(string(errors.GetCategory(w)))
	}
}

func (p *Pipeline) abort(report *Report, err error) (*Report, error) {
	report.Errors = append(report.Errors, err)
	p.complete(report)
	p.logger.Error("Documentation build stopped", logfields.BuildID(report.BuildID), logfields.Error(err))
	return report, err
}

func (p *Pipeline) complete(report *Report) {
	report.finish()
	p.recorder.ObserveRunDuration(report.End.Sub(report.Start))
	p.recorder.IncRunOutcome(string(report.Outcome))
}

// detectRevision reads the revision of the repository holding the first
// configured source root.
func (p *Pipeline) detectRevision() string {
	roots := p.cfg.Sources.All()
	if len(roots) == 0 {
		return ""
	}
	dir, err := filepath.Abs(roots[0])
	if err != nil {
		return ""
	}
	rev, err := vcs.Revision(dir)
	if err != nil {
		p.logger.Debug("Revision unavailable", logfields.Path(dir), logfields.Error(err))
		return ""
	}
	return rev
}
