// Package jsonout is the built-in "json" adapter. It writes the whole tree
// to a single docs.json file in the destination directory.
package jsonout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/inful/supercollider/internal/adapter"
	"github.com/inful/supercollider/internal/adapters"
	"github.com/inful/supercollider/internal/doc"
	"github.com/inful/supercollider/internal/logfields"
)

const (
	// Name is the registry name of the adapter.
	Name = "json"
	// FileName is the file written under the destination directory.
	FileName = "docs.json"
)

// Document is the JSON layout of docs.json.
type Document struct {
	BuildID     string            `json:"build_id,omitempty"`
	Revision    string            `json:"revision,omitempty"`
	Groups      []doc.Group       `json:"groups"`
	Unprocessed []doc.Unprocessed `json:"unprocessed,omitempty"`
}

// New returns the adapter function.
func New() adapter.Func {
	return func(ctx context.Context, in adapter.Input) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		out := Document{BuildID: in.BuildID, Revision: in.Revision, Groups: []doc.Group{}}
		if in.Tree != nil {
			if in.Tree.Groups != nil {
				out.Groups = in.Tree.Groups
			}
			out.Unprocessed = in.Tree.Unprocessed
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal docs json: %w", err)
		}
		path, err := adapters.WriteFile(in.DestDir, FileName, append(data, '\n'))
		if err != nil {
			return err
		}
		if in.Logger != nil {
			in.Logger.Debug("Wrote documentation json", logfields.Path(path), logfields.Count(len(out.Groups)))
		}
		return nil
	}
}
