// Package htmlsite is the built-in "html" adapter. It renders an index page
// plus one page per group, with entry bodies converted from markdown.
package htmlsite

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/inful/supercollider/internal/adapter"
	"github.com/inful/supercollider/internal/adapters"
	"github.com/inful/supercollider/internal/doc"
	"github.com/inful/supercollider/internal/logfields"
)

const (
	// Name is the registry name of the adapter.
	Name = "html"
	// IndexFile is the landing page written under the destination directory.
	IndexFile = doc.IndexSlug + ".html"
	// DefaultTitle is used when no site title is configured.
	DefaultTitle = "Style Guide"
)

//go:embed layouts/*.html.tmpl
var layoutFS embed.FS

var layouts = template.Must(template.ParseFS(layoutFS, "layouts/*.html.tmpl"))

// Option configures the adapter.
type Option func(*site)

// WithTitle sets the site title shown in page headers.
func WithTitle(title string) Option {
	return func(s *site) {
		if title != "" {
			s.title = title
		}
	}
}

type site struct {
	title string
	md    goldmark.Markdown
}

type navItem struct {
	Name  string
	Href  string
	Count int
}

type entryView struct {
	Anchor string
	Title  string
	HTML   template.HTML
	Source string
}

type pageView struct {
	Title    string
	Heading  string
	BuildID  string
	Revision string
	Nav      []navItem
	Entries  []entryView
}

// New returns the adapter function.
func New(opts ...Option) adapter.Func {
	s := &site{
		title: DefaultTitle,
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s.render
}

// pageNames assigns one file per group. Slugs from the processor are already
// unique and never "index"; hand-built trees are de-duplicated the same way so
// no group page replaces the landing page or another group.
func pageNames(groups []doc.Group) []string {
	used := doc.NewSlugSet(doc.IndexSlug)
	names := make([]string, len(groups))
	for i, g := range groups {
		slug := g.Slug
		if slug == "" {
			slug = doc.Slugify(g.Name)
		}
		names[i] = doc.UniqueSlug(used, slug) + ".html"
	}
	return names
}

func (s *site) render(ctx context.Context, in adapter.Input) error {
	tree := in.Tree
	if tree == nil {
		tree = &doc.Tree{}
	}

	pages := pageNames(tree.Groups)
	nav := make([]navItem, 0, len(tree.Groups))
	for i, g := range tree.Groups {
		nav = append(nav, navItem{Name: g.Name, Href: pages[i], Count: len(g.Entries)})
	}
	base := pageView{Title: s.title, BuildID: in.BuildID, Revision: in.Revision, Nav: nav}

	if err := s.write(in, IndexFile, "index.html.tmpl", base); err != nil {
		return err
	}

	for gi, g := range tree.Groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		page := base
		page.Heading = g.Name
		page.Entries = make([]entryView, 0, len(g.Entries))
		anchors := doc.NewSlugSet()
		for i, e := range g.Entries {
			body, err := s.markdown(e.Body)
			if err != nil {
				return fmt.Errorf("render %s entry %d: %w", g.Name, i+1, err)
			}
			page.Entries = append(page.Entries, entryView{
				Anchor: doc.UniqueSlug(anchors, anchor(e, i)),
				Title:  e.Title,
				HTML:   body,
				Source: fmt.Sprintf("%s:%d", e.Source.File, e.Source.Line),
			})
		}
		if err := s.write(in, pages[gi], "group.html.tmpl", page); err != nil {
			return err
		}
	}
	return nil
}

func (s *site) markdown(body string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	// #nosec G203 -- goldmark escapes raw HTML unless WithUnsafe is set.
	return template.HTML(buf.String()), nil
}

func (s *site) write(in adapter.Input, name, layout string, view pageView) error {
	var buf bytes.Buffer
	if err := layouts.ExecuteTemplate(&buf, layout, view); err != nil {
		return fmt.Errorf("execute %s: %w", layout, err)
	}
	path, err := adapters.WriteFile(in.DestDir, name, buf.Bytes())
	if err != nil {
		return err
	}
	if in.Logger != nil {
		in.Logger.Debug("Wrote page", logfields.Path(path))
	}
	return nil
}

func anchor(e doc.Entry, i int) string {
	if e.Name != "" {
		return doc.Slugify(e.Name)
	}
	return fmt.Sprintf("entry-%d", i+1)
}
