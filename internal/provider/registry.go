package provider

import (
	"fmt"
	"sort"
)

// Registry maps provider identifiers to adapters.
// The mapping is fixed at construction time.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry returns a registry for the given adapters
func NewRegistry(adapters ...Adapter) *Registry {
	m := make(map[string]Adapter, len(adapters))
	for _, adapter := range adapters {
		m[adapter.Name()] = adapter
	}

	return &Registry{
		adapters: m,
	}
}

// Get returns the adapter registered for a provider id
func (r *Registry) Get(name string) (Adapter, error) {
	adapter, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}

	return adapter, nil
}

// Names returns the registered provider ids in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
