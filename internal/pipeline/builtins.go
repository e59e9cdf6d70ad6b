package pipeline

import (
	"github.com/inful/supercollider/internal/adapter"
	"github.com/inful/supercollider/internal/adapters/htmlsite"
	"github.com/inful/supercollider/internal/adapters/jsonout"
	"github.com/inful/supercollider/internal/foundation/errors"
)

// BuiltinNames lists the adapters UseBuiltin accepts.
func BuiltinNames() []string {
	return []string{jsonout.Name, htmlsite.Name}
}

// UseBuiltin registers built-in adapters by name, in the order given.
// Unknown names are rejected before anything is registered.
func (p *Pipeline) UseBuiltin(names ...string) error {
	fns := make([]adapter.Func, 0, len(names))
	for _, name := range names {
		fn, ok := p.builtin(name)
		if !ok {
			return errors.ValidationError("unknown built-in adapter").
				WithContext("adapter", name).
				WithContext("known", BuiltinNames()).
				Build()
		}
		fns = append(fns, fn)
	}
	for i, name := range names {
		p.Use(name, fns[i])
	}
	return nil
}

func (p *Pipeline) builtin(name string) (adapter.Func, bool) {
	switch name {
	case jsonout.Name:
		return jsonout.New(), true
	case htmlsite.Name:
		return htmlsite.New(htmlsite.WithTitle(p.title)), true
	default:
		return nil, false
	}
}
