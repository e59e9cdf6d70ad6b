package parse

import (
	"context"
	"strings"
)

// StylesheetExtractor finds SassDoc-style documentation in Sass, SCSS and
// CSS sources: runs of consecutive "///" lines, and "/** ... */" blocks.
// Quoted strings, "//" line comments and plain "/* */" comments are skipped,
// so comment openers inside them start nothing.
type StylesheetExtractor struct{}

// Extract scans src in a single pass.
func (StylesheetExtractor) Extract(ctx context.Context, path string, src []byte) (*Extraction, error) {
	out := &Extraction{}
	text := string(src)
	lines := newLineIndex(src)
	pos := 0
	lineStart := true

	for pos < len(text) {
		if lineStart {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			lineStart = false
			if next, ok := tripleSlashRun(text, pos, lines, out); ok {
				pos, lineStart = next, true
				continue
			}
		}

		rest := text[pos:]
		switch {
		case rest[0] == '\n':
			pos++
			lineStart = true
		case rest[0] == '"' || rest[0] == '\'':
			pos = skipString(text, pos)
		case strings.HasPrefix(rest, "//"):
			pos += lineLength(rest)
		case strings.HasPrefix(rest, "/**/"):
			pos += 4
		case strings.HasPrefix(rest, "/**"):
			startLine, col := lines.position(pos)
			closeAt := strings.Index(rest[3:], "*/")
			if closeAt < 0 {
				out.Problems = append(out.Problems, unterminated(path, startLine))
				return out, nil
			}
			if block := normalizeBlock(stripStars(rest[3 : 3+closeAt])); block != "" {
				out.Blocks = append(out.Blocks, Block{Text: block, Line: startLine, Column: col})
			}
			pos += 3 + closeAt + 2
		case strings.HasPrefix(rest, "/*"):
			closeAt := strings.Index(rest[2:], "*/")
			if closeAt < 0 {
				return out, nil
			}
			pos += 2 + closeAt + 2
		default:
			pos++
		}
	}

	return out, nil
}

// tripleSlashRun consumes the run of "///" lines starting at the line that
// begins at pos. It returns the offset of the first line after the run.
func tripleSlashRun(text string, pos int, lines lineIndex, out *Extraction) (int, bool) {
	line := text[pos : pos+lineLength(text[pos:])]
	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	if !strings.HasPrefix(line[indent:], "///") {
		return pos, false
	}

	startLine, col := lines.position(pos + indent)
	var body []string
	for pos < len(text) {
		end := pos + lineLength(text[pos:])
		l := strings.TrimLeft(text[pos:end], " \t")
		if !strings.HasPrefix(l, "///") {
			break
		}
		l = strings.TrimLeft(l, "/")
		body = append(body, strings.TrimPrefix(l, " "))
		pos = end + 1
	}
	if block := normalizeBlock(strings.Join(body, "\n")); block != "" {
		out.Blocks = append(out.Blocks, Block{Text: block, Line: startLine, Column: col})
	}
	return pos, true
}

// skipString returns the offset just past the string literal opening at pos.
// An unclosed string ends at the line break.
func skipString(text string, pos int) int {
	quote := text[pos]
	for i := pos + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '\n':
			return i
		case quote:
			return i + 1
		}
	}
	return len(text)
}

// lineLength is the number of bytes before the next line break in s.
func lineLength(s string) int {
	if n := strings.IndexByte(s, '\n'); n >= 0 {
		return n
	}
	return len(s)
}
