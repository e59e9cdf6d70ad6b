package parse

import (
	"context"

	"github.com/inful/supercollider/internal/doc"
)

// Block is one documentation comment found by an extractor. Line and Column
// are 1-based and point at the comment opener.
type Block struct {
	Text   string
	Line   int
	Column int
}

// Extraction is what an extractor found in one file. Problems holds
// block-level issues (for example an unterminated comment); the blocks that
// could be read are still returned.
type Extraction struct {
	Blocks   []Block
	Problems []error
}

// Extractor finds documentation blocks in the content of one source file.
// Returning an error means the whole file could not be parsed.
type Extractor interface {
	Extract(ctx context.Context, path string, src []byte) (*Extraction, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, path string, src []byte) (*Extraction, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, path string, src []byte) (*Extraction, error) {
	return f(ctx, path, src)
}

// DefaultExtractors returns the built-in extractor for each source type.
func DefaultExtractors() map[doc.SourceType]Extractor {
	return map[doc.SourceType]Extractor{
		doc.Markup:     MarkupExtractor{},
		doc.Stylesheet: StylesheetExtractor{},
		doc.Script:     ScriptExtractor{},
	}
}
