package metrics

import "time"

// ResultLabel enumerates adapter result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for a pipeline run.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	AddFilesScanned(sourceType string, n int)
	AddRecordsParsed(sourceType string, n int)
	IncWarning(category string)
	ObserveAdapterDuration(adapter string, d time.Duration)
	IncAdapterResult(adapter string, result ResultLabel)
	IncRunOutcome(outcome string)
}

// NoopRecorder is the Recorder used when metrics are not configured.
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration)   {}
func (NoopRecorder) ObserveRunDuration(time.Duration)             {}
func (NoopRecorder) AddFilesScanned(string, int)                  {}
func (NoopRecorder) AddRecordsParsed(string, int)                 {}
func (NoopRecorder) IncWarning(string)                            {}
func (NoopRecorder) ObserveAdapterDuration(string, time.Duration) {}
func (NoopRecorder) IncAdapterResult(string, ResultLabel)         {}
func (NoopRecorder) IncRunOutcome(string)                         {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
