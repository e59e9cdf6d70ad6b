package adapter

import "sync"

// Registry maps adapter names to adapter functions and remembers the order
// names were first registered in.
type Registry struct {
	mu    sync.RWMutex
	order []string
	fns   map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]Func)}
}

// Use registers fn under name. Registering a name again replaces the earlier
// function but keeps its position in the iteration order.
func (r *Registry) Use(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fns[name]; !exists {
		r.order = append(r.order, name)
	}
	r.fns[name] = fn
}

// Lookup returns the adapter registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.fns[name]
	return fn, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns registered names in iteration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// Entries returns a snapshot of the registry in iteration order. Later
// registrations do not affect the returned slice. A nil registry has none.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Entry{Name: name, Fn: r.fns[name]})
	}
	return out
}
