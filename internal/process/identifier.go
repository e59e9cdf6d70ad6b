package process

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/inful/supercollider/internal/doc"
	"github.com/inful/supercollider/internal/frontmatter"
)

// tagLine matches the metadata tags lifted out of a block body.
var tagLine = regexp.MustCompile(`^@(section|name|title)(?:\s+(.*))?$`)

// decoded is a record split into metadata fields and markdown body.
type decoded struct {
	fields map[string]any
	body   string
}

// decode reads the two declared identifier formats, in order: a YAML header
// opening the block, then @section/@name/@title tag lines in the body. Header
// fields win over tags of the same name.
func decode(text string) (*decoded, error) {
	d := &decoded{fields: map[string]any{}, body: text}

	if frontmatter.Has(text) {
		header, body, _, err := frontmatter.Split(text)
		if err != nil {
			return nil, err
		}
		fields, err := frontmatter.ParseYAML(header)
		if err != nil {
			return nil, fmt.Errorf("invalid yaml frontmatter: %w", err)
		}
		clean, err := portableValue(fields, "")
		if err != nil {
			return nil, err
		}
		d.fields, d.body = clean.(map[string]any), body
	}

	var kept []string
	for _, line := range strings.Split(d.body, "\n") {
		m := tagLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			kept = append(kept, line)
			continue
		}
		if _, exists := d.fields[m[1]]; !exists {
			d.fields[m[1]] = strings.TrimSpace(m[2])
		}
	}
	d.body = strings.Trim(strings.Join(kept, "\n"), "\n")
	if d.body != "" {
		d.body += "\n"
	}
	return d, nil
}

// portableValue rewrites decoded YAML so every adapter can encode it: nested
// mappings become map[string]any. Non-string keys and NaN or infinite floats
// have no JSON form and are rejected with the offending path.
func portableValue(v any, path string) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			c, err := portableValue(val, joinPath(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = c
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("field %q has non-string key %v", path, k)
			}
			c, err := portableValue(val, joinPath(path, ks))
			if err != nil {
				return nil, err
			}
			out[ks] = c
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			c, err := portableValue(val, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("field %q has non-finite number %v", path, t)
		}
		return t, nil
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return nil, fmt.Errorf("field %q has non-finite number %v", path, t)
		}
		return t, nil
	default:
		return v, nil
	}
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// groupKey resolves the section declared in fields. A missing section means
// the default group; a section that is not a non-empty scalar is an error.
func groupKey(fields map[string]any) (doc.GroupKey, error) {
	raw, ok := fields["section"]
	if !ok || raw == nil {
		return doc.DefaultKey(), nil
	}
	var name string
	switch v := raw.(type) {
	case string:
		name = strings.TrimSpace(v)
	case int, int64, uint64, float64, bool:
		name = fmt.Sprint(v)
	default:
		return doc.GroupKey{}, fmt.Errorf("section must be a scalar, got %T", raw)
	}
	if name == "" {
		return doc.GroupKey{}, fmt.Errorf("section is empty")
	}
	return doc.ExplicitKey(name), nil
}

func stringField(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
