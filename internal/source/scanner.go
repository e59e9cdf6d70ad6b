// Package source walks the configured scan roots and loads source files,
// grouped by source type, for the parser.
package source

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/inful/supercollider/internal/doc"
	"github.com/inful/supercollider/internal/foundation/errors"
	"github.com/inful/supercollider/internal/logfields"
)

// DefaultExtensions lists the file extensions scanned for each source type.
var DefaultExtensions = map[doc.SourceType][]string{
	doc.Markup:     {".html", ".htm"},
	doc.Stylesheet: {".scss", ".sass", ".css"},
	doc.Script:     {".js", ".mjs", ".cjs"},
}

// skipDirs are never descended into.
var skipDirs = map[string]struct{}{
	"node_modules":     {},
	"bower_components": {},
}

// Scanner loads source files from per-type root directories.
type Scanner struct {
	roots      map[doc.SourceType][]string
	extensions map[doc.SourceType][]string
	readFile   func(string) ([]byte, error)
}

// NewScanner creates a scanner over roots. Types without roots are skipped.
func NewScanner(roots map[doc.SourceType][]string) *Scanner {
	return &Scanner{
		roots:      roots,
		extensions: DefaultExtensions,
		readFile:   os.ReadFile,
	}
}

// Result holds the scanned files and non-fatal problems found while walking.
type Result struct {
	Files    doc.FileGroup
	Warnings []error
}

// Scan walks every root in source type order. Files are sorted by path within
// each root, and a file reached through overlapping roots is kept once, at its
// first position. A missing root is a warning; an unreadable file is returned with
// its Err set so the parser can report it.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	res := &Result{Files: make(doc.FileGroup)}

	for _, st := range doc.SourceTypes {
		var files []doc.SourceFile
		seen := map[string]struct{}{}
		for _, root := range s.roots[st] {
			if err := ctx.Err(); err != nil {
				return nil, errors.WrapError(err, errors.CategoryCanceled, "scan canceled").Build()
			}
			found, warn := s.walk(root, st)
			if warn != nil {
				slog.Warn("Skipping scan root", logfields.SourceType(st.String()), logfields.Path(root), logfields.Error(warn))
				res.Warnings = append(res.Warnings, warn)
				continue
			}
			for _, f := range found {
				key := fileKey(f.Path)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				files = append(files, f)
			}
		}
		if len(files) == 0 {
			continue
		}
		for i := range files {
			content, err := s.readFile(files[i].Path)
			if err != nil {
				files[i].Err = err
				continue
			}
			files[i].Content = content
		}
		res.Files[st] = files
		slog.Debug("Scanned sources", logfields.SourceType(st.String()), logfields.Count(len(files)))
	}

	return res, nil
}

func (s *Scanner) walk(root string, st doc.SourceType) ([]doc.SourceFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryScan, "scan root not accessible").
			Warning().
			WithContext("root", root).
			WithContext("source_type", string(st)).
			Build()
	}
	if !info.IsDir() {
		if s.matches(root, st) {
			return []doc.SourceFile{{Path: root, Type: st}}, nil
		}
		return nil, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are reported as files that failed to load.
			paths = append(paths, path)
			return nil
		}
		if d.IsDir() {
			if path != root && isSkippedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.matches(path, st) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryScan, "walk scan root").
			Warning().
			WithContext("root", root).
			Build()
	}

	slices.Sort(paths)
	files := make([]doc.SourceFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, doc.SourceFile{Path: p, Type: st})
	}
	return files, nil
}

// fileKey identifies a file independently of the root it was reached from.
func fileKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (s *Scanner) matches(path string, st doc.SourceType) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(s.extensions[st], ext)
}

func isSkippedDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := skipDirs[name]
	return ok
}
