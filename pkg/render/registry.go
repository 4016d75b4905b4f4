package render

import (
	"errors"
	"fmt"
	"maps"
	"mime"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownFormat is returned by Registry.Get for unregistered names.
var ErrUnknownFormat = errors.New("render: unknown output format")

// Registry maps output format names onto snapshot renderers. Names are
// matched case-insensitively.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds each renderer under its Name(). It stops at the first nil,
// unnamed or duplicate renderer.
func (r *Registry) Register(renderers ...Renderer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, renderer := range renderers {
		if renderer == nil {
			return fmt.Errorf("render: renderer is required")
		}
		key := formatKey(renderer.Name())
		if key == "" {
			return fmt.Errorf("render: renderer name is required")
		}
		if _, taken := r.byName[key]; taken {
			return fmt.Errorf("render: format %q already registered", key)
		}
		r.byName[key] = renderer
	}
	return nil
}

// Get returns the renderer for name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.byName[formatKey(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownFormat, name, strings.Join(r.List(), ", "))
	}
	return renderer, nil
}

// MustGet panics if the renderer is missing.
func (r *Registry) MustGet(name string) Renderer {
	renderer, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return renderer
}

// List returns the registered format names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Negotiate picks the first renderer whose content type appears in an Accept
// header. Wildcards and quality values are ignored.
func (r *Registry) Negotiate(accept string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		for _, name := range slices.Sorted(maps.Keys(r.byName)) {
			if renderer := r.byName[name]; renderer.ContentType() == mediaType {
				return renderer, true
			}
		}
	}
	return nil, false
}

func formatKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
