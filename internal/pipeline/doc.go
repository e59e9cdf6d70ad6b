// Package pipeline runs the documentation pipeline: scan, parse, process and
// build.
//
// A Pipeline owns its adapter registry, so two pipelines in one process never
// see each other's adapters. Every stage except build is single pass and
// produces warnings rather than errors for bad input; Run only returns an
// error when the tree cannot be built or the context ends.
package pipeline
