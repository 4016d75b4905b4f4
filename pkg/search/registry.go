package search

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultName is the registry key used when a field does not name a searcher.
const DefaultName = "default"

// Registry stores searchers by name so schema documents can reference a
// lookup without carrying code.
type Registry struct {
	mu        sync.RWMutex
	searchers map[string]Searcher
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		searchers: make(map[string]Searcher),
	}
}

// Register adds a searcher under name. Duplicate names return an error.
func (r *Registry) Register(name string, searcher Searcher) error {
	if searcher == nil {
		return fmt.Errorf("search: searcher is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("search: searcher name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.searchers[name]; exists {
		return fmt.Errorf("search: searcher %q already registered", name)
	}
	r.searchers[name] = searcher
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, searcher Searcher) {
	if err := r.Register(name, searcher); err != nil {
		panic(err)
	}
}

// Get retrieves a searcher by name. An empty name resolves DefaultName.
func (r *Registry) Get(name string) (Searcher, error) {
	if r == nil {
		return nil, fmt.Errorf("search: registry is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	searcher, ok := r.searchers[name]
	if !ok {
		return nil, fmt.Errorf("search: searcher %q not found", name)
	}
	return searcher, nil
}

// List returns registered searcher names sorted alphabetically.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.searchers))
	for name := range r.searchers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
