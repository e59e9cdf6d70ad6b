// Package process normalizes parsed documentation records into the
// documentation tree consumed by output adapters.
package process

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/inful/mdfp"

	"github.com/inful/supercollider/internal/doc"
	"github.com/inful/supercollider/internal/foundation/errors"
	"github.com/inful/supercollider/internal/frontmatter"
	"github.com/inful/supercollider/internal/logfields"
)

// Processor groups records by declared section. It keeps no state between
// calls and its output depends only on its input.
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates a processor. A nil logger uses slog.Default.
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger}
}

// Process builds the tree for records, which must be in scan order. Records
// that cannot be normalized land in Tree.Unprocessed and are also returned as
// warnings. The error is reserved for contract violations, such as a record
// with an unknown source type.
func (p *Processor) Process(records []doc.Record) (*doc.Tree, []error, error) {
	for i, r := range records {
		if !r.Type.IsValid() {
			return nil, nil, errors.InternalError("record has unknown source type").
				WithContext("index", i).
				WithContext("source_type", string(r.Type)).
				WithContext("file", r.File).
				Build()
		}
	}

	tree := &doc.Tree{Groups: []doc.Group{}}
	index := map[doc.GroupKey]int{}
	slugs := doc.NewSlugSet(doc.IndexSlug)
	var warnings []error

	for _, r := range records {
		key, entry, err := normalize(r)
		if err != nil {
			tree.Unprocessed = append(tree.Unprocessed, doc.Unprocessed{Record: r, Reason: err.Error()})
			w := errors.WrapError(err, errors.CategoryNormalize, "record kept as unprocessed").
				Warning().
				WithContext("file", r.File).
				WithContext("line", r.Line).
				Build()
			p.logger.Warn("Unprocessed documentation record", logfields.File(r.File), logfields.Line(r.Line), logfields.Error(err))
			warnings = append(warnings, w)
			continue
		}

		i, ok := index[key]
		if !ok {
			i = len(tree.Groups)
			index[key] = i
			tree.Groups = append(tree.Groups, doc.Group{
				Key:     key,
				Name:    key.Name(),
				Default: key.IsDefault(),
				Slug:    doc.UniqueSlug(slugs, doc.Slugify(key.Name())),
			})
		}
		tree.Groups[i].Entries = append(tree.Groups[i].Entries, entry)
	}

	p.logger.Debug("Processed documentation records",
		logfields.Count(len(records)),
		slog.Int("groups", len(tree.Groups)),
		slog.Int("unprocessed", len(tree.Unprocessed)))
	return tree, warnings, nil
}

func normalize(r doc.Record) (doc.GroupKey, doc.Entry, error) {
	d, err := decode(r.Text)
	if err != nil {
		return doc.GroupKey{}, doc.Entry{}, err
	}
	key, err := groupKey(d.fields)
	if err != nil {
		return doc.GroupKey{}, doc.Entry{}, err
	}

	fp, err := fingerprint(d.fields, d.body)
	if err != nil {
		return doc.GroupKey{}, doc.Entry{}, err
	}

	entry := doc.Entry{
		Name:        stringField(d.fields, "name"),
		Title:       stringField(d.fields, "title"),
		Body:        d.body,
		Fingerprint: fp,
		Source:      r,
	}
	if len(d.fields) > 0 {
		entry.Fields = d.fields
	}
	return key, entry, nil
}

// fingerprint hashes the canonical YAML of fields together with the body.
func fingerprint(fields map[string]any, body string) (string, error) {
	header, err := frontmatter.SerializeYAML(fields)
	if err != nil {
		return "", fmt.Errorf("fields cannot be serialized: %w", err)
	}
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(header, "\n"), body), nil
}
