package themes

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrUnknownTheme is returned when a name is not registered.
	ErrUnknownTheme = errors.New("themes: unknown theme")
	// ErrUnknownVariant is returned when a theme has no such variant.
	ErrUnknownVariant = errors.New("themes: unknown variant")
	// ErrInvalidReference is returned by Resolve for unsupported reference types.
	ErrInvalidReference = errors.New("themes: invalid theme reference")
)

// DefaultName is the theme used when nothing else was enabled.
const DefaultName = "dark"

type entry struct {
	theme    Theme
	variants map[string]Theme
	prefix   string
	assets   map[string]string
}

// RegisterOption customises a registration.
type RegisterOption func(*entry)

// WithVariant attaches a named variant to the registered theme.
func WithVariant(name string, t Theme) RegisterOption {
	return func(e *entry) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if e.variants == nil {
			e.variants = make(map[string]Theme)
		}
		e.variants[name] = t
	}
}

// WithAssets records asset files (for example an alternative "wavesurfer"
// bundle) served under prefix.
func WithAssets(prefix string, files map[string]string) RegisterOption {
	return func(e *entry) {
		e.prefix = prefix
		if len(files) == 0 {
			return
		}
		e.assets = make(map[string]string, len(files))
		for k, v := range files {
			e.assets[k] = v
		}
	}
}

// Registry maps names to themes. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	themes      map[string]*entry
	defaultName string
}

// NewRegistry returns a registry pre-populated with the dark and light themes.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	_ = r.Register("dark", Dark())
	_ = r.Register("light", Light())
	r.defaultName = DefaultName
	return r
}

// NewEmptyRegistry returns a registry without built-ins.
func NewEmptyRegistry() *Registry {
	return &Registry{themes: make(map[string]*entry)}
}

// Register stores t under name, replacing an existing registration.
func (r *Registry) Register(name string, t Theme, opts ...RegisterOption) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("themes: register: name is required")
	}
	e := &entry{theme: t}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.themes[name] = e
	if r.defaultName == "" {
		r.defaultName = name
	}
	return nil
}

// Get returns the theme registered under name.
func (r *Registry) Get(name string) (Theme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, err := r.lookup(name)
	if err != nil {
		return Theme{}, err
	}
	return e.theme, nil
}

// Variant returns a named variant of a registered theme. An empty variant
// returns the base theme.
func (r *Registry) Variant(name, variant string) (Theme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, err := r.lookup(name)
	if err != nil {
		return Theme{}, err
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		return e.theme, nil
	}
	v, ok := e.variants[variant]
	if !ok {
		return Theme{}, fmt.Errorf("%w %q for theme %q", ErrUnknownVariant, variant, name)
	}
	return v, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.themes[strings.TrimSpace(name)]
	return ok
}

// Names lists registered theme names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// Variants lists the variant names of a theme in sorted order.
func (r *Registry) Variants(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.themes[strings.TrimSpace(name)]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(e.variants))
	for v := range e.variants {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// DefaultName returns the name of the enabled default theme.
func (r *Registry) DefaultName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultName
}

// Default returns the enabled default theme. An empty registry yields Base.
func (r *Registry) Default() Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.themes[r.defaultName]; ok {
		return e.theme
	}
	return Base()
}

// Enable makes name the default theme.
func (r *Registry) Enable(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.lookup(name); err != nil {
		return err
	}
	r.defaultName = strings.TrimSpace(name)
	return nil
}

// Resolve turns a theme reference into a Theme. A nil reference or empty
// string yields the default; strings name a registered theme, optionally with
// a "/variant" suffix; Theme values are used as given with empty chrome
// fields filled from Base.
func (r *Registry) Resolve(ref any) (Theme, error) {
	switch v := ref.(type) {
	case nil:
		return r.Default(), nil
	case string:
		name := strings.TrimSpace(v)
		if name == "" {
			return r.Default(), nil
		}
		base, variant, _ := strings.Cut(name, "/")
		return r.Variant(base, variant)
	case Theme:
		return v.WithDefaults(), nil
	case *Theme:
		if v == nil {
			return r.Default(), nil
		}
		return v.WithDefaults(), nil
	default:
		return Theme{}, fmt.Errorf("%w: %T", ErrInvalidReference, ref)
	}
}

func (r *Registry) lookup(name string) (*entry, error) {
	name = strings.TrimSpace(name)
	e, ok := r.themes[name]
	if !ok {
		return nil, fmt.Errorf("%w %q; available: %s", ErrUnknownTheme, name, strings.Join(r.namesLocked(), ", "))
	}
	return e, nil
}

func (r *Registry) namesLocked() []string {
	out := make([]string, 0, len(r.themes))
	for name := range r.themes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Default is the process-wide registry used by the package-level helpers.
var Default = NewRegistry()

// Register adds a theme to the Default registry.
func Register(name string, t Theme, opts ...RegisterOption) error {
	return Default.Register(name, t, opts...)
}

// Enable sets the default theme of the Default registry.
func Enable(name string) error {
	return Default.Enable(name)
}

// Resolve resolves ref against the Default registry.
func Resolve(ref any) (Theme, error) {
	return Default.Resolve(ref)
}
