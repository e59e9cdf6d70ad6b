// Package adapter defines the output adapter contract and the per-pipeline
// registry adapters are registered in.
package adapter

import (
	"context"
	"log/slog"

	"github.com/inful/supercollider/internal/doc"
)

// Input is everything an adapter receives for one build. Tree is shared by
// every adapter of the run and must be treated as read-only.
type Input struct {
	Tree     *doc.Tree
	DestDir  string
	BuildID  string
	Revision string
	Logger   *slog.Logger
}

// Func renders the tree into DestDir. A returned error is reported with the
// adapter's name and does not stop the remaining adapters.
type Func func(ctx context.Context, in Input) error

// Entry is a named adapter as held by a Registry.
type Entry struct {
	Name string
	Fn   Func
}
