// Package plugins configures wavesurfer.js plugins registered on a player.
package plugins

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-wavesurf/pkg/options"
)

// Config describes one plugin registration.
type Config struct {
	// Name is the plugin constructor as exposed on the WaveSurfer global,
	// e.g. "Timeline" or "Regions".
	Name string
	// Options is passed to the plugin's create() call.
	Options options.Object
	// Source optionally overrides where the plugin bundle is loaded from. An
	// http(s) or protocol-relative URL is loaded with <script src>, anything
	// else is treated as inline JavaScript.
	Source string
}

// Script renders the create() expression for the plugin.
func (c Config) Script() (string, error) {
	if strings.TrimSpace(c.Name) == "" {
		return "", fmt.Errorf("plugins: name is required")
	}
	literal := "{}"
	if len(c.Options) > 0 {
		encoded, err := c.Options.MarshalJS()
		if err != nil {
			return "", fmt.Errorf("plugins: encode %s options: %w", c.Name, err)
		}
		literal = encoded
	}
	return fmt.Sprintf("WaveSurfer.%s.create(%s)", c.Name, literal), nil
}

// BundleName is the lower-cased file stem of the plugin bundle.
func (c Config) BundleName() string {
	return strings.ToLower(strings.TrimSpace(c.Name))
}

// Height estimates the vertical pixels the plugin adds below the waveform.
func (c Config) Height() int {
	switch c.BundleName() {
	case "timeline", "minimap":
		return c.intOption("height", 20)
	case "spectrogram":
		return c.intOption("height", 128)
	default:
		return 0
	}
}

func (c Config) intOption(key string, fallback int) int {
	v, ok := c.Options.Get(key)
	if !ok {
		return fallback
	}
	if n, ok := v.(int); ok {
		return n
	}
	return fallback
}

// TimelineOptions configures the Timeline plugin. Zero values are omitted.
type TimelineOptions struct {
	Height                 int
	TimeInterval           float64
	PrimaryLabelInterval   int
	SecondaryLabelInterval int
	Style                  map[string]string
}

// Timeline renders time labels under the waveform.
func Timeline(o TimelineOptions) Config {
	height := o.Height
	if height <= 0 {
		height = 20
	}
	obj := options.Object{}.Set("height", height)
	if o.TimeInterval > 0 {
		obj = obj.Set("timeInterval", o.TimeInterval)
	}
	if o.PrimaryLabelInterval > 0 {
		obj = obj.Set("primaryLabelInterval", o.PrimaryLabelInterval)
	}
	if o.SecondaryLabelInterval > 0 {
		obj = obj.Set("secondaryLabelInterval", o.SecondaryLabelInterval)
	}
	if len(o.Style) > 0 {
		obj = obj.Set("style", o.Style)
	}
	return Config{Name: "Timeline", Options: obj}
}

// MinimapOptions configures the Minimap plugin.
type MinimapOptions struct {
	Height        int
	WaveColor     any
	ProgressColor any
	// NoOverlay disables the viewport overlay drawn on the minimap.
	NoOverlay bool
}

// Minimap renders a small overview waveform.
func Minimap(o MinimapOptions) Config {
	height := o.Height
	if height <= 0 {
		height = 20
	}
	obj := options.Object{}.Set("height", height).Set("overlay", !o.NoOverlay)
	if o.WaveColor != nil {
		obj = obj.Set("waveColor", o.WaveColor)
	}
	if o.ProgressColor != nil {
		obj = obj.Set("progressColor", o.ProgressColor)
	}
	return Config{Name: "Minimap", Options: obj}
}

// Regions enables region creation and display.
func Regions() Config {
	return Config{Name: "Regions"}
}

// SpectrogramOptions configures the Spectrogram plugin.
type SpectrogramOptions struct {
	NoLabels bool
	Height   int
	ColorMap string
}

// Spectrogram renders a frequency spectrogram under the waveform.
func Spectrogram(o SpectrogramOptions) Config {
	height := o.Height
	if height <= 0 {
		height = 128
	}
	obj := options.Object{}.Set("labels", !o.NoLabels).Set("height", height)
	if o.ColorMap != "" {
		obj = obj.Set("colorMap", o.ColorMap)
	}
	return Config{Name: "Spectrogram", Options: obj}
}

// HoverOptions configures the Hover plugin.
type HoverOptions struct {
	LineColor       string
	LineWidth       int
	LabelBackground string
	LabelColor      string
}

// Hover shows a cursor line and time label under the pointer.
func Hover(o HoverOptions) Config {
	obj := options.Object{}
	if o.LineColor != "" {
		obj = obj.Set("lineColor", o.LineColor)
	}
	if o.LineWidth > 0 {
		obj = obj.Set("lineWidth", o.LineWidth)
	}
	if o.LabelBackground != "" {
		obj = obj.Set("labelBackground", o.LabelBackground)
	}
	if o.LabelColor != "" {
		obj = obj.Set("labelColor", o.LabelColor)
	}
	return Config{Name: "Hover", Options: obj}
}

// ZoomOptions configures the Zoom plugin.
type ZoomOptions struct {
	Scale   float64
	MaxZoom int
}

// Zoom enables mouse-wheel zooming.
func Zoom(o ZoomOptions) Config {
	obj := options.Object{}
	if o.Scale > 0 {
		obj = obj.Set("scale", o.Scale)
	}
	if o.MaxZoom > 0 {
		obj = obj.Set("maxZoom", o.MaxZoom)
	}
	return Config{Name: "Zoom", Options: obj}
}

// Custom registers an arbitrary plugin by constructor name.
func Custom(name string, opts map[string]any, source string) Config {
	obj := options.Object{}
	for _, key := range sortedKeys(opts) {
		obj = obj.Set(key, opts[key])
	}
	return Config{Name: name, Options: obj, Source: source}
}

// Unique flattens plugin lists keeping the first config per bundle name, so
// each bundle is loaded once per document.
func Unique(configs ...[]Config) []Config {
	seen := make(map[string]struct{})
	var out []Config
	for _, list := range configs {
		for _, cfg := range list {
			name := cfg.BundleName()
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, cfg)
		}
	}
	return out
}

// Wrapped maps each plugin with a typed constructor to the option names that
// constructor can set.
var Wrapped = map[string][]string{
	"timeline":    {"height", "timeInterval", "primaryLabelInterval", "secondaryLabelInterval", "style"},
	"minimap":     {"height", "overlay", "waveColor", "progressColor"},
	"regions":     {},
	"spectrogram": {"labels", "height", "colorMap"},
	"hover":       {"lineColor", "lineWidth", "labelBackground", "labelColor"},
	"zoom":        {"scale", "maxZoom"},
}
