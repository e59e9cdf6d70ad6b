package pipeline

import (
	"fmt"
	"time"

	"github.com/inful/supercollider/internal/build"
	"github.com/inful/supercollider/internal/doc"
	"github.com/inful/supercollider/internal/foundation/errors"
)

// Stage names a pipeline stage in reports, logs and metrics.
type Stage string

const (
	StageScan    Stage = "scan"
	StageParse   Stage = "parse"
	StageProcess Stage = "process"
	StageBuild   Stage = "build"
)

// Outcome is the final state of a run.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Report describes one pipeline run.
type Report struct {
	BuildID  string
	Revision string
	Start    time.Time
	End      time.Time

	Files   int
	Records []doc.Record
	Tree    *doc.Tree
	Build   build.Result

	// Warnings holds every non-fatal problem in stage order: scan, parse,
	// normalize, then adapter failures.
	Warnings []error
	// Errors holds what stopped the run early, if anything.
	Errors    []error
	Durations map[Stage]time.Duration
	Outcome   Outcome
}

func newReport(id, revision string) *Report {
	return &Report{
		BuildID:   id,
		Revision:  revision,
		Start:     time.Now(),
		Durations: make(map[Stage]time.Duration),
	}
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("build=%s files=%d records=%d groups=%d unprocessed=%d adapters_ok=%d adapters_failed=%d warnings=%d duration=%s outcome=%s",
		r.BuildID, r.Files, len(r.Records), groupCount(r.Tree), unprocessedCount(r.Tree),
		len(r.Build.Succeeded), len(r.Build.Failed), len(r.Warnings), dur.Truncate(time.Millisecond), string(r.Outcome))
}

// DeriveOutcome sets Outcome from the recorded errors and warnings.
func (r *Report) DeriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			if errors.HasCategory(e, errors.CategoryCanceled) {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// WarningsByCategory counts warnings per error category.
func (r *Report) WarningsByCategory() map[errors.ErrorCategory]int {
	out := make(map[errors.ErrorCategory]int)
	for _, w := range r.Warnings {
		out[errors.GetCategory(w)]++
	}
	return out
}

func (r *Report) finish() {
	r.End = time.Now()
	r.DeriveOutcome()
}

func groupCount(t *doc.Tree) int {
	if t == nil {
		return 0
	}
	return len(t.Groups)
}

func unprocessedCount(t *doc.Tree) int {
	if t == nil {
		return 0
	}
	return len(t.Unprocessed)
}
