package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inful/supercollider/internal/adapter"
	"github.com/inful/supercollider/internal/doc"
	"github.com/inful/supercollider/internal/foundation/errors"
	"github.com/inful/supercollider/internal/logfields"
	"github.com/inful/supercollider/internal/metrics"
)

// Request is the input of one build.
type Request struct {
	Tree     *doc.Tree
	DestDir  string
	BuildID  string
	Revision string
}

// Failure is an adapter that did not complete.
type Failure struct {
	Adapter string
	Err     error
}

func (f Failure) Error() string { return f.Err.Error() }

// Result lists adapters by outcome, each in invocation order.
type Result struct {
	Succeeded []string
	Failed    []Failure
	// Skipped holds adapters never started because the context ended.
	Skipped []string
}

// Warnings returns the failures as errors.
func (r Result) Warnings() []error {
	out := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		out = append(out, f.Err)
	}
	return out
}

// Builder runs adapters.
type Builder struct {
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewBuilder creates a builder. A nil logger uses slog.Default and a nil
// recorder disables metrics.
func NewBuilder(logger *slog.Logger, recorder metrics.Recorder) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger, recorder: metrics.OrNoop(recorder)}
}

// Build invokes every adapter in reg, in registration order, with the same
// tree. It returns once each adapter has finished or failed. When ctx ends,
// adapters not yet started are skipped and Build returns a canceled error
// alongside the partial result. A nil reg builds nothing.
func (b *Builder) Build(ctx context.Context, req Request, reg *adapter.Registry) (Result, error) {
	var res Result
	entries := reg.Entries()

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			for _, rest := range entries[i:] {
				res.Skipped = append(res.Skipped, rest.Name)
			}
			return res, errors.WrapError(err, errors.CategoryCanceled, "build canceled").
				WithContext("skipped", len(res.Skipped)).
				Build()
		}

		log := b.logger.With(logfields.Adapter(e.Name), logfields.BuildID(req.BuildID))
		in := adapter.Input{
			Tree:     req.Tree,
			DestDir:  req.DestDir,
			BuildID:  req.BuildID,
			Revision: req.Revision,
			Logger:   log,
		}

		start := time.Now()
		err := invoke(ctx, e, in)
		elapsed := time.Since(start)
		b.recorder.ObserveAdapterDuration(e.Name, elapsed)

		if err != nil {
			wrapped := errors.WrapError(err, errors.CategoryAdapter, "adapter failed").
				Warning().
				WithContext("adapter", e.Name).
				Build()
			res.Failed = append(res.Failed, Failure{Adapter: e.Name, Err: wrapped})
			b.recorder.IncAdapterResult(e.Name, metrics.ResultFailed)
			log.Warn("Adapter failed", logfields.Duration(elapsed), logfields.Error(err))
			continue
		}
		res.Succeeded = append(res.Succeeded, e.Name)
		b.recorder.IncAdapterResult(e.Name, metrics.ResultSuccess)
		log.Info("Adapter finished", logfields.Duration(elapsed))
	}
	return res, nil
}

func invoke(ctx context.Context, e adapter.Entry, in adapter.Input) (err error) {
	if e.Fn == nil {
		return ErrNilAdapter
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAdapterPanic, r)
		}
	}()
	return e.Fn(ctx, in)
}
