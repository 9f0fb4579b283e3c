package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrUnknownRenderer is returned by Get for unregistered names.
	ErrUnknownRenderer = errors.New("render: unknown renderer")
	// ErrDuplicateRenderer is returned when a name is registered twice.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
)

// Registry holds document renderers keyed by lower-cased name.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds renderer under its Name().
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: nil renderer")
	}
	key := rendererKey(renderer.Name())
	if key == "" {
		return errors.New("render: renderer has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byName[key]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateRenderer, key)
	}
	r.byName[key] = renderer
	return nil
}

// MustRegister is Register for built-ins; it panics on error.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered under name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if renderer, ok := r.byName[rendererKey(name)]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownRenderer, name, strings.Join(r.sortedLocked(), ", "))
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[rendererKey(name)]
	return ok
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked()
}

func (r *Registry) sortedLocked() []string {
	out := make([]string, 0, len(r.byName))
	for key := range r.byName {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func rendererKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
