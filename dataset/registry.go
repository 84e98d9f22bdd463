package dataset

import (
	"fmt"
	"sort"
	"sync"
)

// Builder constructs a dataset from framework configuration.
type Builder func(cfg Config) (Dataset, error)

// Registry maps dataset names to builders so that configuration can name a
// dataset by string. Registration happens explicitly during process setup;
// there are no import-time side effects.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a builder under the given name. Registering the same name
// twice is an error.
func (r *Registry) Register(name string, b Builder) error {
	if b == nil {
		return fmt.Errorf("register %q: nil builder", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.builders[name]; ok {
		return fmt.Errorf("register %q: already registered", name)
	}
	r.builders[name] = b
	return nil
}

// Open builds the named dataset with the given configuration.
func (r *Registry) Open(name string, cfg Config) (Dataset, error) {
	r.mu.RLock()
	b, ok := r.builders[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return b(cfg)
}

// Names returns the registered dataset names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
