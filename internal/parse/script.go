package parse

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/inful/supercollider/internal/foundation/errors"
)

// ScriptExtractor finds JSDoc blocks ("/** ... */") in JavaScript sources
// using the tree-sitter JavaScript grammar, so comment-like text inside
// strings and template literals is never picked up.
type ScriptExtractor struct{}

// Extract parses src and returns one block per JSDoc comment node.
func (ScriptExtractor) Extract(ctx context.Context, path string, src []byte) (*Extraction, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryParse, "parse script").
			WithContext("file", path).
			Build()
	}

	out := &Extraction{}
	var covered [][2]int
	walkComments(tree.RootNode(), func(n *sitter.Node) {
		content := n.Content(src)
		covered = append(covered, [2]int{int(n.StartByte()), int(n.EndByte())})
		if !strings.HasPrefix(content, "/**") || strings.HasPrefix(content, "/**/") {
			return
		}
		if !strings.HasSuffix(content, "*/") || len(content) < len("/***/") {
			out.Problems = append(out.Problems, unterminated(path, int(n.StartPoint().Row)+1))
			return
		}
		text := normalizeBlock(stripStars(content[3 : len(content)-2]))
		if text == "" {
			return
		}
		p := n.StartPoint()
		out.Blocks = append(out.Blocks, Block{Text: text, Line: int(p.Row) + 1, Column: int(p.Column) + 1})
	})

	if tree.RootNode().HasError() {
		if off, ok := danglingOpener(src, covered); ok {
			line, _ := newLineIndex(src).position(off)
			out.Problems = append(out.Problems, unterminated(path, line))
		}
	}

	return out, nil
}

func walkComments(n *sitter.Node, fn func(*sitter.Node)) {
	if n == nil {
		return
	}
	if n.Type() == "comment" {
		fn(n)
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkComments(n.Child(i), fn)
	}
}

// danglingOpener finds a "/**" that is not inside a parsed comment and has no
// closing "*/" after it; the grammar reports such text as an error node.
func danglingOpener(src []byte, covered [][2]int) (int, bool) {
	s := string(src)
	off := strings.LastIndex(s, "/**")
	if off < 0 || strings.Contains(s[off+3:], "*/") {
		return 0, false
	}
	for _, r := range covered {
		if off >= r[0] && off < r[1] {
			return 0, false
		}
	}
	return off, true
}

func unterminated(path string, line int) error {
	return errors.WrapError(ErrUnterminatedComment, errors.CategoryParse, "skipping documentation block").
		Warning().
		WithContext("file", path).
		WithContext("line", line).
		Build()
}
