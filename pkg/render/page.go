package render

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-wavesurf/pkg/controls"
	"github.com/goliatone/go-wavesurf/pkg/options"
	"github.com/goliatone/go-wavesurf/pkg/plugins"
	"github.com/goliatone/go-wavesurf/pkg/themes"
)

// LibraryAsset is the theme asset key that overrides the library bundle URL.
const LibraryAsset = "wavesurfer"

// PageOptions controls the document wrapped around card markup.
type PageOptions struct {
	// Plugins lists plugin bundles to load; duplicates are skipped.
	Plugins []plugins.Config
	// Theme contributes CSS variables and may override the library URL via
	// the "wavesurfer" asset.
	Theme *theme.RendererConfig
}

// Page renders a complete HTML document around body, loading the library and
// plugin bundles before the card scripts run.
func (a *Assembler) Page(ctx context.Context, body string, page PageOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	scripts := []string{a.libraryTag(page.Theme)}
	for _, p := range plugins.Unique(page.Plugins) {
		scripts = append(scripts, a.pluginTag(p))
	}

	css := ""
	if page.Theme != nil {
		css = safeStyle(themes.CSSVarsStyle(page.Theme.CSSVars))
	}

	out, err := a.engine.RenderTemplate("page", map[string]any{
		"body":     body,
		"scripts":  scripts,
		"css_vars": css,
	})
	if err != nil {
		return "", fmt.Errorf("render: page: %w", err)
	}
	return out, nil
}

// Frame renders the page into an iframe srcdoc, which isolates the player's
// scripts and styles from the host notebook.
func (a *Assembler) Frame(ctx context.Context, body string, height int, page PageOptions) (string, error) {
	doc, err := a.Page(ctx, body, page)
	if err != nil {
		return "", err
	}
	if height <= 0 {
		height = DefaultWaveformHeight
	}
	out, err := a.engine.RenderTemplate("frame", map[string]any{
		"page":   doc,
		"height": strconv.Itoa(height),
	})
	if err != nil {
		return "", fmt.Errorf("render: frame: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Grid arranges rendered cards. columns > 1 produces a CSS grid with equal
// columns; anything else stacks the cards.
func (a *Assembler) Grid(ctx context.Context, cards []string, columns int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cols := ""
	if columns > 1 {
		cols = strconv.Itoa(columns)
	}
	out, err := a.engine.RenderTemplate("grid", map[string]any{
		"cards":   cards,
		"columns": cols,
	})
	if err != nil {
		return "", fmt.Errorf("render: grid: %w", err)
	}
	return out, nil
}

func (a *Assembler) libraryTag(cfg *theme.RendererConfig) string {
	if cfg != nil && cfg.AssetURL != nil {
		if url := cfg.AssetURL(LibraryAsset); url != "" {
			return scriptSrc(url)
		}
	}
	if a.library != "" {
		return scriptInline(a.library)
	}
	return scriptSrc(a.cdn + "/dist/wavesurfer.min.js")
}

func (a *Assembler) pluginTag(p plugins.Config) string {
	src := strings.TrimSpace(p.Source)
	switch {
	case src == "":
		return scriptSrc(a.cdn + "/dist/plugins/" + p.BundleName() + ".min.js")
	case isScriptURL(src):
		return scriptSrc(src)
	default:
		return scriptInline(src)
	}
}

func isScriptURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "//")
}

func scriptSrc(url string) string {
	return `<script src="` + html.EscapeString(url) + `"></script>`
}

func scriptInline(src string) string {
	return "<script>\n" + strings.ReplaceAll(src, "</script", `<\/script`) + "\n</script>"
}

func safeStyle(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// Layout constants used by EstimateHeight.
const (
	CardPadding           = 40
	TitleHeight           = 42
	DefaultWaveformHeight = 80
	CardMargin            = 8
)

// EstimateHeight predicts the pixel height of a card so the iframe does not
// scroll: padding, title, waveform, controls, plugins and margin. The
// waveform height comes from the options, then the theme, then 80.
func EstimateHeight(title string, th themes.Theme, c controls.Controls, opts options.Options, pl []plugins.Config) int {
	h := CardPadding
	if strings.TrimSpace(title) != "" {
		h += TitleHeight
	}
	switch n, ok := opts.IntValue("height"); {
	case ok && n > 0:
		h += n
	case th.Height > 0:
		h += th.Height
	default:
		h += DefaultWaveformHeight
	}
	h += c.Height()
	for _, p := range pl {
		h += p.Height()
	}
	return h + CardMargin
}
