// Package gotemplate renders the assembler templates with pongo2 behind the
// go-template engine contract.
package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-wavesurf/pkg/render/template"
)

// ErrNoTemplates is returned by New without a base dir or filesystem.
var ErrNoTemplates = errors.New("gotemplate: need a base dir or fs.FS")

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates []fs.FS
	extension string
	globals   map[string]any
	hooks     []gotemplatepkg.HookChainOption
}

// WithBaseDir loads templates from a directory on disk. Files found there
// take precedence over those supplied with WithFS.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS adds a template filesystem, searched in the order added.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = append(cfg.templates, files)
		}
	}
}

// WithExtension sets the suffix appended to bare template names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if ext != "" {
			cfg.extension = ext
		}
	}
}

// WithGlobalData seeds values every template can see.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[key] = value
		}
	}
}

// WithHooks adds go-template hook chains. Pre hooks may replace the data a
// template sees; post hooks may rewrite its output.
func WithHooks(hooks ...gotemplatepkg.HookChainOption) Option {
	return func(cfg *config) {
		cfg.hooks = append(cfg.hooks, hooks...)
	}
}

// Engine is a pongo2 template set with a parsed-template cache. Autoescaping
// stays on; templates opt out per value with |safe.
type Engine struct {
	set   *pongo2.TemplateSet
	ext   string
	hooks *gotemplatepkg.HookChain
	cache sync.Map // path -> *pongo2.Template
	mu    sync.RWMutex
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine over the configured template sources.
func New(options ...Option) (*Engine, error) {
	cfg := config{extension: ".tmpl"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.baseDir == "" && len(cfg.templates) == 0 {
		return nil, ErrNoTemplates
	}

	loaders := make([]pongo2.TemplateLoader, 0, len(cfg.templates)+1)
	if cfg.baseDir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: template dir %s: %w", cfg.baseDir, err)
		}
		loaders = append(loaders, local)
	}
	for _, files := range cfg.templates {
		loaders = append(loaders, pongo2.NewFSLoader(files))
	}

	registerFilters()
	e := &Engine{
		set:   pongo2.NewSet("wavesurf", loaders...),
		ext:   cfg.extension,
		hooks: gotemplatepkg.NewHookChain(cfg.hooks...),
	}
	if len(cfg.globals) > 0 {
		if err := e.GlobalContext(cfg.globals); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Render treats name as template source when it contains template tags and
// as a template file otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders a template file; the extension is optional.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	tmpl, err := e.load(path)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, path, data, out)
}

// RenderString parses and renders template source.
func (e *Engine) RenderString(source string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(source)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tmpl, "inline template", data, out)
}

// RegisterFilter adds a filter. pongo2 filters are process-wide, so a name
// can only be registered once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		v, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(v), nil
	})
}

// GlobalContext merges data into the values every template can see.
func (e *Engine) GlobalContext(data any) error {
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: globals: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(ctx)
	return nil
}

func (e *Engine) load(path string) (*pongo2.Template, error) {
	if cached, ok := e.cache.Load(path); ok {
		return cached.(*pongo2.Template), nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %s: %w", path, err)
	}
	actual, _ := e.cache.LoadOrStore(path, tmpl)
	return actual.(*pongo2.Template), nil
}

func (e *Engine) execute(tmpl *pongo2.Template, label string, data any, out []io.Writer) (string, error) {
	hc := &gotemplatepkg.HookContext{TemplateName: label, Data: data, Metadata: map[string]any{}, IsPreHook: true}
	if err := e.hooks.ExecutePreHooks(hc); err != nil {
		return "", fmt.Errorf("gotemplate: %s pre hook: %w", label, err)
	}
	ctx, err := toContext(hc.Data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s data: %w", label, err)
	}
	e.mu.RLock()
	rendered, err := tmpl.Execute(ctx)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}
	hc.IsPreHook = false
	hc.Output = rendered
	if rendered, err = e.hooks.ExecutePostHooks(hc); err != nil {
		return "", fmt.Errorf("gotemplate: %s post hook: %w", label, err)
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// toContext passes maps through and lets go-template flatten anything else
// via its JSON form, so struct fields are addressed by json tag. Numbers in
// flattened values arrive as float64.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}
	ctx, err := gotemplatepkg.ConvertToContext(data)
	if err != nil {
		return nil, fmt.Errorf("expected an object, got %T: %w", data, err)
	}
	return ctx, nil
}

var registerOnce sync.Once

func registerFilters() {
	registerOnce.Do(func() {
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", func(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
				return pongo2.AsValue(strings.TrimSpace(in.String())), nil
			})
		}
		if !pongo2.FilterExists("jsstring") {
			_ = pongo2.RegisterFilter("jsstring", jsString)
		}
	})
}

// jsString encodes the input as a JSON string literal for inline scripts and
// marks the result safe.
func jsString(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	encoded, err := json.Marshal(in.String())
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:jsstring", OrigError: err}
	}
	return pongo2.AsSafeValue(string(encoded)), nil
}
