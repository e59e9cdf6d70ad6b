// Package frontmatter splits and decodes the YAML header that a
// documentation block may start with.
package frontmatter

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrMissingClosingDelimiter indicates the block opened a YAML header but
// never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// ErrNotMapping indicates the header decoded to something other than a mapping.
var ErrNotMapping = errors.New("yaml frontmatter is not a mapping")

// Has reports whether text opens with a YAML header delimiter line.
func Has(text string) bool {
	return strings.HasPrefix(text, delimiter+"\n")
}

// Split separates the YAML header from the body of text. Text must use "\n"
// line endings. When text has no header, had is false and body is text.
func Split(text string) (header, body string, had bool, err error) {
	if !Has(text) {
		return "", text, false, nil
	}
	rest := text[len(delimiter)+1:]
	if strings.HasPrefix(rest, delimiter+"\n") {
		return "", rest[len(delimiter)+1:], true, nil
	}
	if rest == delimiter {
		return "", "", true, nil
	}

	idx := strings.Index(rest, "\n"+delimiter+"\n")
	if idx < 0 {
		if strings.HasSuffix(rest, "\n"+delimiter) {
			return rest[:len(rest)-len(delimiter)], "", true, nil
		}
		return "", "", false, ErrMissingClosingDelimiter
	}
	return rest[:idx+1], rest[idx+len(delimiter)+2:], true, nil
}

// ParseYAML decodes a header into a map. An empty header yields an empty map.
func ParseYAML(header string) (map[string]any, error) {
	if strings.TrimSpace(header) == "" {
		return map[string]any{}, nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(header), &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return map[string]any{}, nil
	}
	if node.Content[0].Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}
	var fields map[string]any
	if err := node.Content[0].Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
