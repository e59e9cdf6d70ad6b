package doc

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify turns a section name into a lowercase ASCII path segment.
// Diacritics are folded ("Überschrift" -> "uberschrift"); anything outside
// [a-z0-9] collapses into single dashes. An empty result becomes "section".
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return "section"
	}
	return out
}

// IndexSlug is reserved for the landing page of rendered sites, so no group
// may take it.
const IndexSlug = "index"

// NewSlugSet returns a set for UniqueSlug with the reserved slugs taken.
func NewSlugSet(reserved ...string) map[string]struct{} {
	used := make(map[string]struct{}, len(reserved))
	for _, r := range reserved {
		used[r] = struct{}{}
	}
	return used
}

// UniqueSlug returns slug, or slug-2, slug-3 and so on when it is already in
// used, and records the result.
func UniqueSlug(used map[string]struct{}, slug string) string {
	candidate := slug
	for n := 2; ; n++ {
		if _, taken := used[candidate]; !taken {
			used[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", slug, n)
	}
}
