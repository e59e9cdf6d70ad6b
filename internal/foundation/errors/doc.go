// Package errors provides the classified error primitives shared by every
// supercollider pipeline stage.
//
// Stages never abort a run for recoverable problems. Instead they build a
// ClassifiedError with a category naming the stage concern (scan, parse,
// normalize, adapter) and a warning severity, and the pipeline collects it
// into the run report. Only contract violations are built as fatal.
//
// Example usage:
//
//	err := errors.ParseError("unterminated documentation comment").
//		WithContext("file", path).
//		WithContext("line", 12).
//		Build()
package errors
