package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-wavesurf/pkg/audio"
	"github.com/goliatone/go-wavesurf/pkg/controls"
	"github.com/goliatone/go-wavesurf/pkg/events"
	"github.com/goliatone/go-wavesurf/pkg/options"
	"github.com/goliatone/go-wavesurf/pkg/plugins"
	"github.com/goliatone/go-wavesurf/pkg/themes"
)

// Card is everything needed to render one player.
type Card struct {
	// UID namespaces the card's DOM ids. Empty generates one.
	UID      string
	Title    string
	Theme    themes.Theme
	Controls controls.Controls
	// Options are the validated wavesurfer options; container and url are
	// always assigned by the assembler.
	Options options.Options
	Source  audio.Resolved
	Events  []events.Handler
	Plugins []plugins.Config
}

// ErrMissingSource is returned for cards without an audio URL.
var ErrMissingSource = errors.New("render: audio source is required")

// Player renders the card markup: accent, pattern, title, waveform container,
// control bar and the bootstrapping script. The returned UID is the one used
// in the markup.
func (a *Assembler) Player(ctx context.Context, card Card) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	if strings.TrimSpace(card.Source.URL) == "" {
		return "", "", ErrMissingSource
	}
	if err := card.Controls.Validate(); err != nil {
		return "", "", err
	}
	uid := strings.TrimSpace(card.UID)
	if uid == "" {
		uid = a.uid()
	}
	th := card.Theme.WithDefaults()
	tokens := th.Tokens()

	literal, err := OptionsLiteral(uid, card.Source.URL, card.Options)
	if err != nil {
		return "", "", err
	}

	pluginScripts := make([]string, 0, len(card.Plugins))
	for _, p := range card.Plugins {
		script, err := p.Script()
		if err != nil {
			return "", "", fmt.Errorf("render: %w", err)
		}
		pluginScripts = append(pluginScripts, script)
	}

	eventScripts := make([]string, 0, len(card.Events))
	for _, h := range card.Events {
		if err := h.Validate(); err != nil {
			return "", "", err
		}
		eventScripts = append(eventScripts, h.Script("ws"))
	}

	c := card.Controls
	style := c.EffectiveStyle(th)
	playIcon, pauseIcon := c.Icons()

	controlsHTML, err := a.engine.RenderTemplate("controls", map[string]any{
		"uid":         uid,
		"visible":     c.Visible(),
		"top":         c.Top(),
		"show_play":   c.ShowPlayButton,
		"show_time":   c.ShowTime,
		"show_volume": c.ShowVolume,
		"show_rate":   c.ShowPlaybackRate,
		"style":       style,
		"button_css":  buttonCSS(style, th),
		"glow":        hoverGlow(th.PlayButtonHoverGlow),
		"play_icon":   playIcon,
		"accent":      firstColor(th.ProgressColor, th.PlayButtonColor),
		"theme":       tokens,
		"rates":       rateOptions(),
	})
	if err != nil {
		return "", "", fmt.Errorf("render: controls: %w", err)
	}

	script, err := a.engine.RenderTemplate("script", map[string]any{
		"uid":         uid,
		"options":     literal,
		"plugins":     pluginScripts,
		"events":      eventScripts,
		"show_play":   c.ShowPlayButton,
		"show_time":   c.ShowTime,
		"show_volume": c.ShowVolume,
		"show_rate":   c.ShowPlaybackRate,
		"play_icon":   playIcon,
		"pause_icon":  pauseIcon,
	})
	if err != nil {
		return "", "", fmt.Errorf("render: script: %w", err)
	}

	html, err := a.engine.RenderTemplate("card", map[string]any{
		"uid":          uid,
		"title":        strings.TrimSpace(card.Title),
		"marker":       th.TitleMarkerColor != "" && th.TitleMarkerShape != "",
		"theme":        tokens,
		"controls":     controlsHTML,
		"controls_top": c.Top(),
		"script":       script,
	})
	if err != nil {
		return "", "", fmt.Errorf("render: card: %w", err)
	}
	a.logger.Debug("render: card", "uid", uid, "plugins", len(card.Plugins), "events", len(card.Events), "embedded", card.Source.Embedded)
	return html, uid, nil
}

// OptionsLiteral builds the WaveSurfer.create() argument: container and url
// first, then the mapped options, then hideScrollbar and cursorWidth defaults.
func OptionsLiteral(uid, url string, opts options.Options) (string, error) {
	obj := options.Object{
		{Key: "container", Value: "#waveform-" + uid},
		{Key: "url", Value: url},
	}
	for _, field := range opts.JS() {
		if field.Key == "container" || field.Key == "url" {
			continue
		}
		obj = append(obj, field)
	}
	obj = obj.SetDefault("hideScrollbar", true).SetDefault("cursorWidth", 2)
	literal, err := obj.MarshalJS()
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return literal, nil
}

func buttonCSS(style string, th themes.Theme) string {
	switch style {
	case controls.StyleShield:
		return fmt.Sprintf("position: relative; width: 40px; height: 44px; padding: 0; border: none; background: transparent; color: %s; cursor: pointer; display: inline-flex; align-items: center; justify-content: center; flex-shrink: 0; font-size: 0.8rem;", th.PlayButtonColor)
	case controls.StyleMinimal:
		return fmt.Sprintf("padding: 0 4px; border: none; background: transparent; color: %s; cursor: pointer; font-size: 1rem; line-height: 1;", th.PlayButtonColor)
	default:
		return fmt.Sprintf("width: 36px; height: 36px; border-radius: 50%%; border: none; background: %s; color: %s; cursor: pointer; display: inline-flex; align-items: center; justify-content: center; flex-shrink: 0; font-size: 0.8rem; transition: box-shadow 0.2s ease;", th.PlayButtonBg, th.PlayButtonColor)
	}
}

func hoverGlow(glow string) string {
	glow = strings.TrimSpace(glow)
	if glow == "" || strings.EqualFold(glow, "none") {
		return ""
	}
	return glow
}

func firstColor(colors themes.Colors, fallback string) string {
	if len(colors) > 0 {
		return colors[0]
	}
	return fallback
}

func rateOptions() []map[string]any {
	rates := controls.Rates()
	out := make([]map[string]any, 0, len(rates))
	for _, r := range rates {
		out = append(out, map[string]any{"value": r.Value, "label": r.Label, "selected": r.Selected})
	}
	return out
}
