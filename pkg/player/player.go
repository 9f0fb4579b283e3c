// Package player is the high-level entry point: it combines an audio source,
// theme, controls, events, plugins and wavesurfer options into a renderable
// player. Players are immutable; the With* methods return modified copies.
package player

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-wavesurf/pkg/audio"
	"github.com/goliatone/go-wavesurf/pkg/controls"
	"github.com/goliatone/go-wavesurf/pkg/events"
	"github.com/goliatone/go-wavesurf/pkg/options"
	"github.com/goliatone/go-wavesurf/pkg/plugins"
	"github.com/goliatone/go-wavesurf/pkg/render"
	"github.com/goliatone/go-wavesurf/pkg/themes"
)

// MIMEType is the key of the HTML entry in a MIME bundle.
const MIMEType = "text/html"

var defaultAssembler = sync.OnceValues(func() (*render.Assembler, error) {
	return render.New()
})

// Option configures a Player at construction.
type Option func(*config)

type config struct {
	title     string
	themeRef  any
	controls  *controls.Controls
	events    []events.Handler
	plugins   []plugins.Config
	options   map[string]any
	renderer  string
	assembler *render.Assembler
	themes    *themes.Registry
	resolver  *audio.Resolver
	logger    *slog.Logger
}

// WithTitle sets the label shown above the waveform.
func WithTitle(title string) Option {
	return func(cfg *config) {
		cfg.title = title
	}
}

// WithTheme selects the theme: a registered name (optionally "name/variant"),
// a themes.Theme, or nil for the registry default.
func WithTheme(ref any) Option {
	return func(cfg *config) {
		cfg.themeRef = ref
	}
}

// WithControls replaces the default control bar.
func WithControls(c controls.Controls) Option {
	return func(cfg *config) {
		cfg.controls = &c
	}
}

// WithEvents appends event handlers.
func WithEvents(handlers ...events.Handler) Option {
	return func(cfg *config) {
		cfg.events = append(cfg.events, handlers...)
	}
}

// WithPlugins appends plugin registrations.
func WithPlugins(configs ...plugins.Config) Option {
	return func(cfg *config) {
		cfg.plugins = append(cfg.plugins, configs...)
	}
}

// WithOnReady runs js once when the player is ready.
func WithOnReady(js string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(js) == "" {
			return
		}
		cfg.events = append(cfg.events, events.Once(events.OnReady(js)))
	}
}

// WithOptions sets snake_case wavesurfer options. They override theme
// defaults; later calls override earlier ones key by key.
func WithOptions(opts map[string]any) Option {
	return func(cfg *config) {
		if cfg.options == nil {
			cfg.options = make(map[string]any, len(opts))
		}
		for key, value := range opts {
			cfg.options[key] = value
		}
	}
}

// WithRenderer selects the document renderer by name ("iframe" or "inline").
func WithRenderer(name string) Option {
	return func(cfg *config) {
		cfg.renderer = strings.TrimSpace(name)
	}
}

// WithAssembler uses a configured assembler instead of the shared default.
func WithAssembler(a *render.Assembler) Option {
	return func(cfg *config) {
		if a != nil {
			cfg.assembler = a
		}
	}
}

// WithThemes resolves theme names against reg instead of themes.Default.
func WithThemes(reg *themes.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.themes = reg
		}
	}
}

// WithResolver replaces the audio resolver.
func WithResolver(r *audio.Resolver) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.resolver = r
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

// Player is an immutable, renderable audio player.
type Player struct {
	source     audio.Source
	sampleRate int
	cfg        config
	theme      themes.Theme
	selection  *theme.Selection
	options    options.Options
}

// New builds a player for src, which may be anything audio.FromValue
// accepts. sampleRate is required for in-memory samples and ignored for
// files. Theme and option errors are reported here rather than at render
// time.
func New(src any, sampleRate int, opts ...Option) (*Player, error) {
	source, err := audio.FromValue(src)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	cfg := config{
		themes: themes.Default,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return build(source, sampleRate, cfg)
}

func build(source audio.Source, sampleRate int, cfg config) (*Player, error) {
	p := &Player{source: source, sampleRate: sampleRate, cfg: cfg}

	th, err := cfg.themes.Resolve(cfg.themeRef)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	p.theme = th.WithDefaults()

	if sel, ok, err := selectTheme(cfg.themes, cfg.themeRef); err != nil {
		return nil, fmt.Errorf("player: %w", err)
	} else if ok {
		p.selection = sel
	}

	merged := th.WaveformOverrides()
	for key, value := range cfg.options {
		merged[key] = value
	}
	parsed, err := options.Parse(merged)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	p.options = parsed

	if cfg.controls != nil {
		if err := cfg.controls.Validate(); err != nil {
			return nil, fmt.Errorf("player: %w", err)
		}
	}
	for _, h := range cfg.events {
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("player: %w", err)
		}
	}
	return p, nil
}

// selectTheme resolves named references to a go-theme selection so the page
// can carry CSS variables and asset overrides. Inline Theme values have no
// manifest.
func selectTheme(reg *themes.Registry, ref any) (*theme.Selection, bool, error) {
	name := ""
	switch v := ref.(type) {
	case nil:
	case string:
		name = strings.TrimSpace(v)
	default:
		return nil, false, nil
	}
	if name == "" && reg.DefaultName() == "" {
		return nil, false, nil
	}
	base, variant, _ := strings.Cut(name, "/")
	sel, err := reg.Select(base, variant)
	if err != nil {
		return nil, false, err
	}
	return sel, true, nil
}

func (p *Player) clone() config {
	cfg := p.cfg
	cfg.events = append([]events.Handler(nil), p.cfg.events...)
	cfg.plugins = append([]plugins.Config(nil), p.cfg.plugins...)
	cfg.options = make(map[string]any, len(p.cfg.options))
	for key, value := range p.cfg.options {
		cfg.options[key] = value
	}
	return cfg
}

// WithOptions returns a copy with additional options.
func (p *Player) WithOptions(opts map[string]any) (*Player, error) {
	cfg := p.clone()
	WithOptions(opts)(&cfg)
	return build(p.source, p.sampleRate, cfg)
}

// WithTheme returns a copy using a different theme.
func (p *Player) WithTheme(ref any) (*Player, error) {
	cfg := p.clone()
	cfg.themeRef = ref
	return build(p.source, p.sampleRate, cfg)
}

// WithEvents returns a copy with additional handlers.
func (p *Player) WithEvents(handlers ...events.Handler) (*Player, error) {
	cfg := p.clone()
	cfg.events = append(cfg.events, handlers...)
	return build(p.source, p.sampleRate, cfg)
}

// WithPlugins returns a copy with additional plugins.
func (p *Player) WithPlugins(configs ...plugins.Config) *Player {
	cfg := p.clone()
	cfg.plugins = append(cfg.plugins, configs...)
	next := *p
	next.cfg = cfg
	return &next
}

// WithTitle returns a copy with a different title.
func (p *Player) WithTitle(title string) *Player {
	next := *p
	next.cfg = p.clone()
	next.cfg.title = title
	return &next
}

// Title returns the label shown above the waveform.
func (p *Player) Title() string { return p.cfg.title }

// Renderer returns the configured document renderer name; empty means the
// assembler default.
func (p *Player) Renderer() string { return p.cfg.renderer }

// Theme returns the resolved theme.
func (p *Player) Theme() themes.Theme { return p.theme }

// Source returns the normalized audio source.
func (p *Player) Source() audio.Source { return p.source }

// SampleRate returns the sample rate given at construction.
func (p *Player) SampleRate() int { return p.sampleRate }

// Controls returns the effective control bar.
func (p *Player) Controls() controls.Controls {
	if p.cfg.controls != nil {
		return *p.cfg.controls
	}
	return controls.Default()
}

// Events returns a copy of the attached handlers.
func (p *Player) Events() []events.Handler {
	return append([]events.Handler(nil), p.cfg.events...)
}

// Plugins returns a copy of the registered plugins.
func (p *Player) Plugins() []plugins.Config {
	return append([]plugins.Config(nil), p.cfg.plugins...)
}

// Options returns the theme waveform settings merged with explicit options,
// explicit values winning.
func (p *Player) Options() options.Options { return p.options }

// ThemeConfig returns CSS variables and asset URLs for named themes, or nil
// for inline Theme values.
func (p *Player) ThemeConfig() *theme.RendererConfig {
	return themes.RendererConfig(p.selection)
}

// Assembler returns the assembler used for rendering.
func (p *Player) Assembler() (*render.Assembler, error) {
	if p.cfg.assembler != nil {
		return p.cfg.assembler, nil
	}
	return defaultAssembler()
}

// Card resolves the audio and returns the card ready for assembly.
func (p *Player) Card(ctx context.Context) (render.Card, error) {
	resolver := p.cfg.resolver
	var (
		resolved audio.Resolved
		err      error
	)
	if resolver != nil {
		resolved, err = resolver.Resolve(ctx, p.source, p.sampleRate)
	} else {
		resolved, err = audio.Resolve(ctx, p.source, p.sampleRate)
	}
	if err != nil {
		return render.Card{}, fmt.Errorf("player: resolve audio: %w", err)
	}
	return render.Card{
		Title:    p.cfg.title,
		Theme:    p.theme,
		Controls: p.Controls(),
		Options:  p.options,
		Source:   resolved,
		Events:   p.Events(),
		Plugins:  p.Plugins(),
	}, nil
}

// Height estimates the rendered height in pixels.
func (p *Player) Height() int {
	return render.EstimateHeight(p.cfg.title, p.theme, p.Controls(), p.options, p.cfg.plugins)
}

// HTML renders the player with the configured renderer (an iframe by
// default).
func (p *Player) HTML(ctx context.Context) (string, error) {
	a, err := p.Assembler()
	if err != nil {
		return "", fmt.Errorf("player: %w", err)
	}
	card, err := p.Card(ctx)
	if err != nil {
		return "", err
	}
	body, uid, err := a.Player(ctx, card)
	if err != nil {
		return "", fmt.Errorf("player: %w", err)
	}
	p.cfg.logger.Debug("player: rendered", "uid", uid, "title", p.cfg.title, "renderer", p.cfg.renderer)
	return a.Render(ctx, p.cfg.renderer, render.Document{
		Body:   body,
		Height: p.Height(),
		Page: render.PageOptions{
			Plugins: card.Plugins,
			Theme:   p.ThemeConfig(),
		},
	})
}

// MIMEBundle returns the rich display bundle notebook kernels expect.
func (p *Player) MIMEBundle(ctx context.Context) (map[string]string, error) {
	html, err := p.HTML(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]string{MIMEType: html}, nil
}
