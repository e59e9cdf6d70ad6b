package doc

// DefaultGroupName is the display name of the implicit group that collects
// records without a declared section.
const DefaultGroupName = "default"

// GroupKey identifies the group a record belongs to. It is either an
// explicit section name or the default group.
type GroupKey struct {
	name     string
	explicit bool
}

// ExplicitKey returns the key for a declared section name.
func ExplicitKey(name string) GroupKey {
	return GroupKey{name: name, explicit: true}
}

// DefaultKey returns the key of the implicit default group.
func DefaultKey() GroupKey {
	return GroupKey{}
}

// IsDefault reports whether k is the default group.
func (k GroupKey) IsDefault() bool { return !k.explicit }

// Name returns the section name, or DefaultGroupName for the default group.
func (k GroupKey) Name() string {
	if !k.explicit {
		return DefaultGroupName
	}
	return k.name
}

func (k GroupKey) String() string {
	if !k.explicit {
		return "<" + DefaultGroupName + ">"
	}
	return k.name
}
