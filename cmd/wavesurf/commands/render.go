package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-wavesurf/cmd/wavesurf/internal/prompt"
	"github.com/goliatone/go-wavesurf/pkg/audio"
	"github.com/goliatone/go-wavesurf/pkg/controls"
	"github.com/goliatone/go-wavesurf/pkg/player"
	"github.com/goliatone/go-wavesurf/pkg/plugins"
	"github.com/goliatone/go-wavesurf/pkg/render"
)

// renderInput collects the render settings from flags and prompts.
type renderInput struct {
	Audio      string
	Title      string
	Theme      string
	SampleRate int
	Options    map[string]any
	Controls   controls.Controls
	Plugins    []string
	Inline     bool
	Out        string
}

func newRenderCommand(a *app) *cobra.Command {
	var (
		in          renderInput
		rawOptions  []string
		interactive bool
		volume      bool
		rate        bool
	)
	cmd := &cobra.Command{
		Use:   "render <audio>",
		Short: "Render one player for an audio file or URL",
		Long: `Render a single player as a standalone HTML document.

The audio argument is a WAV, AIFF, MP3 or Ogg file (embedded as a WAV data
URL) or an http(s) URL loaded by the browser.

Examples:
  wavesurf render take1.wav --theme light -o take1.html
  wavesurf render song.mp3 --option bar_width=3 --option height=96
  wavesurf render https://example.com/a.mp3 --plugin timeline --inline`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Audio = args[0]
			opts, err := parseOptionValues(rawOptions)
			if err != nil {
				return err
			}
			in.Options = opts
			in.Controls = controls.Default()
			in.Controls.ShowVolume = volume
			in.Controls.ShowPlaybackRate = rate
			if in.Title == "" {
				in.Title = a.defaultTitle(in.Audio)
			}
			if in.Theme == "" && a.cfg != nil {
				in.Theme = a.cfg.Theme
			}
			if interactive {
				in, err = promptRender(cmd.Context(), a.driver, a.themes.Names(), in)
				if err != nil {
					return err
				}
			}
			html, err := a.render(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), in.Out, html)
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "player title (defaults to the MP3 artist and title tags)")
	f.StringVar(&in.Theme, "theme", "", "theme name, optionally name/variant")
	f.IntVar(&in.SampleRate, "sr", 0, "sample rate for URL sources")
	f.StringArrayVar(&rawOptions, "option", nil, "wavesurfer option as key=value (repeatable)")
	f.StringSliceVar(&in.Plugins, "plugin", nil, "plugins to load: "+strings.Join(pluginNames(), ", "))
	f.BoolVar(&volume, "volume", false, "show the volume slider")
	f.BoolVar(&rate, "rate", false, "show the playback rate selector")
	f.BoolVar(&in.Inline, "inline", false, "emit a fragment instead of an iframe document")
	f.StringVarP(&in.Out, "out", "o", "", "output file (stdout if empty)")
	f.BoolVarP(&interactive, "interactive", "i", false, "prompt for title, theme, controls and plugins")
	return cmd
}

// defaultTitle reads MP3 tags for a label. Other sources have no default.
func (a *app) defaultTitle(src string) string {
	if audio.IsURL(src) {
		return ""
	}
	tags, err := audio.ReadTags(src)
	if err != nil {
		a.logger.Debug("no tags", "path", src, "error", err)
		return ""
	}
	return tags.Label()
}

func (a *app) render(ctx context.Context, in renderInput) (string, error) {
	opts, err := a.playerOptions()
	if err != nil {
		return "", err
	}
	if in.Theme != "" {
		opts = append(opts, player.WithTheme(in.Theme))
	}
	if in.Title != "" {
		opts = append(opts, player.WithTitle(in.Title))
	}
	if len(in.Options) > 0 {
		opts = append(opts, player.WithOptions(in.Options))
	}
	if in.Inline {
		opts = append(opts, player.WithRenderer(render.RendererInline))
	}
	cfgs, err := pluginConfigs(in.Plugins)
	if err != nil {
		return "", err
	}
	opts = append(opts, player.WithControls(in.Controls), player.WithPlugins(cfgs...))

	p, err := player.New(in.Audio, in.SampleRate, opts...)
	if err != nil {
		return "", err
	}
	a.logger.Debug("rendering", "audio", in.Audio, "theme", in.Theme, "height", p.Height())
	return p.HTML(ctx)
}

// parseOptionValues turns key=value pairs into an options map. Values are
// decoded as YAML scalars or sequences; anything that does not decode to a
// value, such as "#ff0000", is kept as the raw string.
func parseOptionValues(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q: expected key=value", pair)
		}
		out[key] = decodeValue(strings.TrimSpace(raw))
	}
	return out, nil
}

func decodeValue(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	return normalizeInts(v)
}

func normalizeInts(v any) any {
	switch n := v.(type) {
	case uint64:
		return int(n)
	case int64:
		return int(n)
	case []any:
		for i := range n {
			n[i] = normalizeInts(n[i])
		}
		return n
	default:
		return v
	}
}

var pluginFactories = map[string]func() plugins.Config{
	"timeline":    func() plugins.Config { return plugins.Timeline(plugins.TimelineOptions{}) },
	"minimap":     func() plugins.Config { return plugins.Minimap(plugins.MinimapOptions{}) },
	"regions":     plugins.Regions,
	"spectrogram": func() plugins.Config { return plugins.Spectrogram(plugins.SpectrogramOptions{}) },
	"hover":       func() plugins.Config { return plugins.Hover(plugins.HoverOptions{}) },
	"zoom":        func() plugins.Config { return plugins.Zoom(plugins.ZoomOptions{}) },
}

func pluginNames() []string {
	names := make([]string, 0, len(pluginFactories))
	for name := range pluginFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func pluginConfigs(names []string) ([]plugins.Config, error) {
	var out []plugins.Config
	for _, name := range names {
		factory, ok := pluginFactories[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown plugin %q (available: %s)", name, strings.Join(pluginNames(), ", "))
		}
		out = append(out, factory())
	}
	return out, nil
}

var controlChoices = []string{"play button", "time", "volume", "playback rate"}

// promptRender asks for the title, theme, controls, plugins and renderer,
// using the current values as defaults.
func promptRender(ctx context.Context, d prompt.Driver, themeNames []string, in renderInput) (renderInput, error) {
	fallback := filepath.Base(in.Audio)
	if audio.IsURL(in.Audio) {
		fallback = ""
	}
	title := in.Title
	if title == "" {
		title = fallback
	}
	title, err := d.Input(ctx, prompt.InputConfig{Message: "Title", Default: title})
	if err != nil {
		return in, err
	}
	in.Title = strings.TrimSpace(title)

	if len(themeNames) > 0 {
		current, _, _ := strings.Cut(in.Theme, "/")
		def := 0
		for i, name := range themeNames {
			if name == current {
				def = i
			}
		}
		idx, err := d.Select(ctx, prompt.SelectConfig{Message: "Theme", Options: themeNames, DefaultIndex: def})
		if err != nil {
			return in, err
		}
		if idx >= 0 && idx < len(themeNames) {
			in.Theme = themeNames[idx]
		}
	}

	flags := []*bool{&in.Controls.ShowPlayButton, &in.Controls.ShowTime, &in.Controls.ShowVolume, &in.Controls.ShowPlaybackRate}
	var defaults []int
	for i, on := range flags {
		if *on {
			defaults = append(defaults, i)
		}
	}
	picked, err := d.MultiSelect(ctx, prompt.SelectConfig{Message: "Controls", Options: controlChoices, Defaults: defaults})
	if err != nil {
		return in, err
	}
	for _, f := range flags {
		*f = false
	}
	for _, idx := range picked {
		if idx >= 0 && idx < len(flags) {
			*flags[idx] = true
		}
	}

	names := pluginNames()
	var current []int
	for i, name := range names {
		for _, p := range in.Plugins {
			if strings.EqualFold(p, name) {
				current = append(current, i)
			}
		}
	}
	picked, err = d.MultiSelect(ctx, prompt.SelectConfig{Message: "Plugins", Options: names, Defaults: current})
	if err != nil {
		return in, err
	}
	in.Plugins = nil
	for _, idx := range picked {
		if idx >= 0 && idx < len(names) {
			in.Plugins = append(in.Plugins, names[idx])
		}
	}

	inline, err := d.Confirm(ctx, prompt.ConfirmConfig{Message: "Emit an inline fragment instead of an iframe?", Default: in.Inline})
	if err != nil {
		return in, err
	}
	in.Inline = inline
	return in, nil
}
