// Package render assembles player cards, full HTML pages and notebook-safe
// iframes from resolved audio, options, themes, controls, plugins and events.
package render

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-wavesurf/pkg/render/template"
	"github.com/goliatone/go-wavesurf/pkg/render/template/gotemplate"
)

// DefaultCDN is the base URL wavesurfer.js and its plugins load from.
const DefaultCDN = "https://unpkg.com/wavesurfer.js@7"

// Option configures an Assembler.
type Option func(*config)

type config struct {
	templates    []fs.FS
	templatesDir string
	engine       template.TemplateRenderer
	cdn          string
	libraryFile  string
	library      string
	uid          func() string
	logger       *slog.Logger
	hooks        []gotemplatepkg.HookChainOption
	renderers    []Renderer
	defaultName  string
}

// WithTemplatesFS layers templates over the embedded ones. Files with the
// same name replace the built-ins.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = append(cfg.templates, files)
		}
	}
}

// WithTemplatesDir layers templates from a directory over the embedded ones.
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(dir)
	}
}

// WithTemplateRenderer replaces the template engine entirely.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(cfg *config) {
		cfg.engine = engine
	}
}

// WithCDN sets the base URL for the library and plugin bundles. The library
// loads from <base>/dist/wavesurfer.min.js and plugins from
// <base>/dist/plugins/<name>.min.js.
func WithCDN(base string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimRight(strings.TrimSpace(base), "/"); trimmed != "" {
			cfg.cdn = trimmed
		}
	}
}

// WithLibraryFile inlines a local wavesurfer.js bundle instead of loading it
// from the CDN, for offline notebooks.
func WithLibraryFile(path string) Option {
	return func(cfg *config) {
		cfg.libraryFile = strings.TrimSpace(path)
	}
}

// WithLibrarySource inlines the given wavesurfer.js bundle source.
func WithLibrarySource(src string) Option {
	return func(cfg *config) {
		cfg.library = src
	}
}

// WithUIDFunc overrides card UID generation.
func WithUIDFunc(fn func() string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.uid = fn
		}
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithTemplateHooks runs go-template hook chains around every template the
// built-in engine renders. Ignored with WithTemplateRenderer.
func WithTemplateHooks(hooks ...gotemplatepkg.HookChainOption) Option {
	return func(cfg *config) {
		cfg.hooks = append(cfg.hooks, hooks...)
	}
}

// WithRenderer registers an additional document renderer.
func WithRenderer(r Renderer) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.renderers = append(cfg.renderers, r)
		}
	}
}

// WithDefaultRenderer selects the renderer used when a document names none.
func WithDefaultRenderer(name string) Option {
	return func(cfg *config) {
		cfg.defaultName = strings.TrimSpace(name)
	}
}

// Assembler renders markup through a template engine. It is safe for
// concurrent use.
type Assembler struct {
	engine      template.TemplateRenderer
	cdn         string
	library     string
	uid         func() string
	logger      *slog.Logger
	registry    *Registry
	defaultName string
}

// New builds an Assembler with the embedded templates and the iframe and
// inline renderers.
func New(options ...Option) (*Assembler, error) {
	cfg := &config{
		cdn:         DefaultCDN,
		uid:         NewUID,
		logger:      slog.Default(),
		defaultName: RendererIframe,
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	engine := cfg.engine
	if engine == nil {
		engineOpts := []gotemplate.Option{gotemplate.WithExtension(".tmpl")}
		if cfg.templatesDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(cfg.templatesDir))
		}
		for i := len(cfg.templates) - 1; i >= 0; i-- {
			engineOpts = append(engineOpts, gotemplate.WithFS(cfg.templates[i]))
		}
		engineOpts = append(engineOpts, gotemplate.WithFS(Templates()))
		if len(cfg.hooks) > 0 {
			engineOpts = append(engineOpts, gotemplate.WithHooks(cfg.hooks...))
		}
		built, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("render: template engine: %w", err)
		}
		engine = built
	}

	library := cfg.library
	if cfg.libraryFile != "" {
		data, err := os.ReadFile(cfg.libraryFile)
		if err != nil {
			return nil, fmt.Errorf("render: read library bundle: %w", err)
		}
		library = string(data)
	}

	a := &Assembler{
		engine:      engine,
		cdn:         cfg.cdn,
		library:     library,
		uid:         cfg.uid,
		logger:      cfg.logger,
		registry:    NewRegistry(),
		defaultName: cfg.defaultName,
	}
	a.registry.MustRegister(&iframeRenderer{assembler: a})
	a.registry.MustRegister(&inlineRenderer{assembler: a})
	for _, r := range cfg.renderers {
		if err := a.registry.Register(r); err != nil {
			return nil, err
		}
	}
	if !a.registry.Has(a.defaultName) {
		return nil, fmt.Errorf("render: default renderer %q not registered", a.defaultName)
	}
	return a, nil
}

// Renderers exposes the document renderer registry.
func (a *Assembler) Renderers() *Registry {
	return a.registry
}

// UID returns a fresh card UID.
func (a *Assembler) UID() string {
	return a.uid()
}

// CDN returns the configured bundle base URL.
func (a *Assembler) CDN() string {
	return a.cdn
}
