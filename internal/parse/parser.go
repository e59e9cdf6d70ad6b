// Package parse turns scanned source files into documentation records.
//
// Parse runs asynchronously and hands back a Job; the Job completes exactly
// once with every record in scan order: source type order, then file order
// within a type, then occurrence order within a file.
package parse

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/inful/supercollider/internal/doc"
	"github.com/inful/supercollider/internal/foundation/errors"
	"github.com/inful/supercollider/internal/logfields"
	"github.com/inful/supercollider/internal/metrics"
)

// Result is the outcome of a parse job.
type Result struct {
	Records  []doc.Record
	Warnings []error
	// Err is set when the job stopped early because its context ended.
	Err error
}

// Job is a running parse. It completes exactly once.
type Job struct {
	done   chan struct{}
	result Result
}

// Done is closed when the job has completed.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the job completes or ctx ends. Every caller observes the
// same Result.
func (j *Job) Wait(ctx context.Context) (Result, error) {
	select {
	case <-j.done:
		return j.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Option configures a Parser.
type Option func(*Parser)

// WithExtractor replaces the extractor used for a source type.
func WithExtractor(t doc.SourceType, e Extractor) Option {
	return func(p *Parser) { p.extractors[t] = e }
}

// WithConcurrency bounds the number of files extracted at once. Values below
// one mean sequential extraction.
func WithConcurrency(n int) Option {
	return func(p *Parser) {
		if n < 1 {
			n = 1
		}
		p.concurrency = n
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Parser) { p.recorder = metrics.OrNoop(r) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// Parser dispatches files to per-type extractors.
type Parser struct {
	extractors  map[doc.SourceType]Extractor
	concurrency int
	recorder    metrics.Recorder
	logger      *slog.Logger
}

// NewParser creates a parser with the built-in extractors.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		extractors:  DefaultExtractors(),
		concurrency: runtime.GOMAXPROCS(0),
		recorder:    metrics.NoopRecorder{},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse starts extracting records from group and returns immediately.
// Absent or empty groups yield an empty record list.
func (p *Parser) Parse(ctx context.Context, group doc.FileGroup) *Job {
	job := &Job{done: make(chan struct{})}
	files, warnings := p.ordered(group)
	go func() {
		defer close(job.done)
		job.result = p.run(ctx, files)
		job.result.Warnings = append(warnings, job.result.Warnings...)
	}()
	return job
}

// ordered flattens group in scan order. Unknown source types cannot be
// dispatched and are reported instead.
func (p *Parser) ordered(group doc.FileGroup) ([]doc.SourceFile, []error) {
	var files []doc.SourceFile
	for _, st := range doc.SourceTypes {
		for _, f := range group.Files(st) {
			f.Type = st
			files = append(files, f)
		}
	}

	var unknown []string
	for st := range group {
		if !st.IsValid() {
			unknown = append(unknown, string(st))
		}
	}
	slices.Sort(unknown)

	var warnings []error
	for _, st := range unknown {
		warnings = append(warnings, errors.ScanError("ignoring files of unknown source type").
			WithContext("source_type", st).
			WithContext("files", len(group[doc.SourceType(st)])).
			Build())
	}
	return files, warnings
}

type fileOutcome struct {
	blocks   []Block
	warnings []error
}

func (p *Parser) run(ctx context.Context, files []doc.SourceFile) Result {
	outcomes := make([]fileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = p.extractFile(gctx, f)
			return nil
		})
	}

	var res Result
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		res.Err = errors.WrapError(err, errors.CategoryCanceled, "parse canceled").Build()
	}

	counts := make(map[doc.SourceType]int, len(doc.SourceTypes))
	for i, f := range files {
		res.Warnings = append(res.Warnings, outcomes[i].warnings...)
		for _, b := range outcomes[i].blocks {
			res.Records = append(res.Records, doc.Record{
				File:   f.Path,
				Type:   f.Type,
				Text:   b.Text,
				Line:   b.Line,
				Column: b.Column,
				Seq:    len(res.Records),
			})
		}
		counts[f.Type] += len(outcomes[i].blocks)
	}
	for _, st := range doc.SourceTypes {
		p.recorder.AddRecordsParsed(st.String(), counts[st])
	}

	p.logger.Debug("Parse complete", logfields.Count(len(res.Records)), slog.Int("files", len(files)), slog.Int("warnings", len(res.Warnings)))
	return res
}

// extractFile never fails: every problem becomes a warning for this file.
func (p *Parser) extractFile(ctx context.Context, f doc.SourceFile) (out fileOutcome) {
	if f.Err != nil {
		out.warnings = append(out.warnings, p.warn(f, errors.WrapError(f.Err, errors.CategoryScan, "skipping unreadable file").
			Warning().
			WithContext("file", f.Path).
			Build()))
		return out
	}

	ext, ok := p.extractors[f.Type]
	if !ok || ext == nil {
		out.warnings = append(out.warnings, p.warn(f, errors.WrapError(ErrNoExtractor, errors.CategoryParse, "skipping file").
			Warning().
			WithContext("file", f.Path).
			WithContext("source_type", string(f.Type)).
			Build()))
		return out
	}

	defer func() {
		if r := recover(); r != nil {
			out = fileOutcome{warnings: []error{p.warn(f, errors.WrapError(fmt.Errorf("%w: %v", ErrExtractorPanic, r), errors.CategoryParse, "skipping file").
				Warning().
				WithContext("file", f.Path).
				Build())}}
		}
	}()

	extraction, err := ext.Extract(ctx, f.Path, f.Content)
	if err != nil {
		out.warnings = append(out.warnings, p.warn(f, errors.WrapError(err, errors.CategoryParse, "skipping file that could not be parsed").
			Warning().
			WithContext("file", f.Path).
			Build()))
		return out
	}
	if extraction == nil {
		return out
	}
	for _, problem := range extraction.Problems {
		out.warnings = append(out.warnings, p.warn(f, problem))
	}
	out.blocks = extraction.Blocks
	return out
}

func (p *Parser) warn(f doc.SourceFile, err error) error {
	p.logger.Warn("Documentation source problem", logfields.File(f.Path), logfields.SourceType(f.Type.String()), logfields.Error(err))
	return err
}
