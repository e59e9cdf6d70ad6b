package doc

// Entry is a normalized documentation record inside a group.
type Entry struct {
	Name        string         `json:"name,omitempty"`
	Title       string         `json:"title,omitempty"`
	Fields      map[string]any `json:"fields,omitempty"`
	Body        string         `json:"body"`
	Fingerprint string         `json:"fingerprint"`
	Source      Record         `json:"source"`
}

// Group is the set of entries sharing one GroupKey, in scan order.
type Group struct {
	Key     GroupKey `json:"-"`
	Name    string   `json:"name"`
	Default bool     `json:"default,omitempty"`
	Slug    string   `json:"slug"`
	Entries []Entry  `json:"entries"`
}

// Unprocessed is a record that could not be normalized, with the reason.
type Unprocessed struct {
	Record Record `json:"record"`
	Reason string `json:"reason"`
}

// Tree is the normalized documentation of one pipeline run. Groups appear in
// the order their first record was scanned.
type Tree struct {
	Groups      []Group       `json:"groups"`
	Unprocessed []Unprocessed `json:"unprocessed,omitempty"`
}

// Lookup returns the group for key.
func (t *Tree) Lookup(key GroupKey) (*Group, bool) {
	if t == nil {
		return nil, false
	}
	for i := range t.Groups {
		if t.Groups[i].Key == key {
			return &t.Groups[i], true
		}
	}
	return nil, false
}

// EntryCount returns the number of entries across all groups.
func (t *Tree) EntryCount() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, g := range t.Groups {
		n += len(g.Entries)
	}
	return n
}

// IsEmpty reports whether the tree holds neither entries nor unprocessed records.
func (t *Tree) IsEmpty() bool {
	return t.EntryCount() == 0 && (t == nil || len(t.Unprocessed) == 0)
}
