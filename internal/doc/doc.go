// Package doc defines the data model shared by the supercollider pipeline:
// scanned source files, extracted documentation records and the normalized
// documentation tree handed to output adapters.
package doc

import (
	"fmt"
	"strings"
)

// SourceType tags the kind of source a file or record came from.
type SourceType string

const (
	Markup     SourceType = "markup"
	Stylesheet SourceType = "stylesheet"
	Script     SourceType = "script"
)

// SourceTypes lists every source type in scan order.
var SourceTypes = []SourceType{Markup, Stylesheet, Script}

// IsValid reports whether t is one of the known source types.
func (t SourceType) IsValid() bool {
	switch t {
	case Markup, Stylesheet, Script:
		return true
	default:
		return false
	}
}

func (t SourceType) String() string { return string(t) }

// Order returns the position of t in scan order, or -1 for unknown types.
func (t SourceType) Order() int {
	for i, st := range SourceTypes {
		if st == t {
			return i
		}
	}
	return -1
}

// ParseSourceType accepts the canonical names plus the short option names
// html, sass and js.
func ParseSourceType(s string) (SourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markup", "html":
		return Markup, nil
	case "stylesheet", "sass", "scss", "css":
		return Stylesheet, nil
	case "script", "js", "javascript":
		return Script, nil
	default:
		return "", fmt.Errorf("unknown source type %q", s)
	}
}

// SourceFile is one scanned file. Err is set when the scanner found the file
// but could not read it.
type SourceFile struct {
	Path    string
	Type    SourceType
	Content []byte
	Err     error
}

// FileGroup maps each source type to its files in scan order. Missing keys
// are empty groups.
type FileGroup map[SourceType][]SourceFile

// Files returns the files of type t.
func (g FileGroup) Files(t SourceType) []SourceFile {
	if g == nil {
		return nil
	}
	return g[t]
}

// Len returns the number of files across all types.
func (g FileGroup) Len() int {
	n := 0
	for _, files := range g {
		n += len(files)
	}
	return n
}

// Record is one extracted documentation block. Records are values and are
// never modified once the parser emits them.
type Record struct {
	File   string     `json:"file"`
	Type   SourceType `json:"type"`
	Text   string     `json:"text"`
	Line   int        `json:"line"`
	Column int        `json:"column,omitempty"`
	// Seq is the record's position in the scan order of its run.
	Seq int `json:"seq"`
}
