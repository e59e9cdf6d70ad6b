// Package metrics exposes build observability through the Recorder interface.
//
// Pipeline components receive a Recorder and default to NoopRecorder, so
// call sites never nil-check. The CLI swaps in a PrometheusRecorder when a
// metrics file is requested and writes the registry with WriteTextfile once
// the run completes.
package metrics
