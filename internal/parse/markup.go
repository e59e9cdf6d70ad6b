package parse

import (
	"bytes"
	"context"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/inful/supercollider/internal/foundation/errors"
)

// MarkupExtractor finds documentation comments in HTML. A comment is a
// documentation block when it opens with "<!---" or when its text starts
// with the word "docs":
//
//	<!---
//	@section buttons
//	Primary buttons.
//	--->
//
//	<!-- docs
//	Card layout.
//	-->
type MarkupExtractor struct{}

// Extract tokenizes src and returns one block per documentation comment.
func (MarkupExtractor) Extract(ctx context.Context, path string, src []byte) (*Extraction, error) {
	out := &Extraction{}
	z := html.NewTokenizer(bytes.NewReader(src))
	lines := newLineIndex(src)
	offset := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() == io.EOF {
				return out, nil
			}
			return nil, errors.WrapError(z.Err(), errors.CategoryParse, "tokenize markup").
				WithContext("file", path).
				Build()
		}

		raw := z.Raw()
		start := offset
		offset += len(raw)
		if tt != html.CommentToken {
			continue
		}

		text, ok := markupDocText(raw, z.Token().Data)
		if !ok {
			continue
		}
		line, col := lines.position(start)
		if !bytes.HasSuffix(raw, []byte("-->")) {
			out.Problems = append(out.Problems, unterminated(path, line))
			continue
		}
		if text == "" {
			continue
		}
		out.Blocks = append(out.Blocks, Block{Text: text, Line: line, Column: col})
	}
}

// markupDocText reports whether a comment token is a documentation block and
// returns its normalized text.
func markupDocText(raw []byte, data string) (string, bool) {
	switch {
	case bytes.HasPrefix(raw, []byte("<!---")):
		body := strings.TrimLeft(data, "-")
		body = strings.TrimRight(body, "-")
		return normalizeBlock(body), true
	case isDocsMarker(data):
		body := strings.TrimLeft(data, " \t\r\n")
		body = strings.TrimPrefix(body, "docs")
		return normalizeBlock(body), true
	default:
		return "", false
	}
}

func isDocsMarker(data string) bool {
	body := strings.TrimLeft(data, " \t\r\n")
	if !strings.HasPrefix(body, "docs") {
		return false
	}
	rest := body[len("docs"):]
	return rest == "" || strings.ContainsAny(rest[:1], " \t\r\n")
}
