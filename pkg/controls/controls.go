// Package controls describes the play/time/volume/rate bar rendered with a
// player card.
package controls

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-wavesurf/pkg/themes"
)

// ErrInvalidControls reports an unsupported layout or button style.
var ErrInvalidControls = errors.New("controls: invalid configuration")

const (
	LayoutBottom = "bottom"
	LayoutTop    = "top"

	StyleShield  = "shield"
	StyleCircle  = "circle"
	StyleMinimal = "minimal"
)

// BarHeight is the pixel height of a visible control bar, margin included.
const BarHeight = 54

// Default glyphs for the play button.
const (
	DefaultPlayIcon  = "&#9654;"
	DefaultPauseIcon = "&#9646;&#9646;"
)

// PlaybackRates are the choices offered by the rate selector.
var PlaybackRates = []float64{0.5, 0.75, 1, 1.25, 1.5, 2}

// Controls configures the control bar. The zero value hides everything; use
// Default for the play button and time display.
type Controls struct {
	ShowPlayButton   bool   `yaml:"show_play_button" json:"show_play_button"`
	ShowTime         bool   `yaml:"show_time" json:"show_time"`
	ShowVolume       bool   `yaml:"show_volume" json:"show_volume"`
	ShowPlaybackRate bool   `yaml:"show_playback_rate" json:"show_playback_rate"`
	PlayButtonStyle  string `yaml:"play_button_style,omitempty" json:"play_button_style,omitempty"`
	Layout           string `yaml:"layout,omitempty" json:"layout,omitempty"`
	// PlayIcon and PauseIcon replace the default glyphs. Markup is limited
	// to inline SVG and text.
	PlayIcon  string `yaml:"play_icon,omitempty" json:"play_icon,omitempty"`
	PauseIcon string `yaml:"pause_icon,omitempty" json:"pause_icon,omitempty"`
}

// Default shows the play button and elapsed/total time below the waveform.
func Default() Controls {
	return Controls{
		ShowPlayButton: true,
		ShowTime:       true,
		Layout:         LayoutBottom,
	}
}

// Visible reports whether any control is shown.
func (c Controls) Visible() bool {
	return c.ShowPlayButton || c.ShowTime || c.ShowVolume || c.ShowPlaybackRate
}

// Height is the vertical space the bar takes.
func (c Controls) Height() int {
	if !c.Visible() {
		return 0
	}
	return BarHeight
}

// Top reports whether the bar renders above the waveform.
func (c Controls) Top() bool {
	return strings.EqualFold(strings.TrimSpace(c.Layout), LayoutTop)
}

// EffectiveStyle returns the explicit button style, falling back to the
// theme's and finally to circle.
func (c Controls) EffectiveStyle(t themes.Theme) string {
	if s := strings.TrimSpace(c.PlayButtonStyle); s != "" {
		return s
	}
	if s := strings.TrimSpace(t.PlayButtonStyle); s != "" {
		return s
	}
	return StyleCircle
}

// Validate checks layout and style values.
func (c Controls) Validate() error {
	var errs []error
	switch strings.ToLower(strings.TrimSpace(c.Layout)) {
	case "", LayoutBottom, LayoutTop:
	default:
		errs = append(errs, fmt.Errorf("%w: layout %q (want %q or %q)", ErrInvalidControls, c.Layout, LayoutTop, LayoutBottom))
	}
	switch strings.TrimSpace(c.PlayButtonStyle) {
	case "", StyleShield, StyleCircle, StyleMinimal:
	default:
		errs = append(errs, fmt.Errorf("%w: play button style %q", ErrInvalidControls, c.PlayButtonStyle))
	}
	return errors.Join(errs...)
}

// Icons returns the play and pause markup, sanitized, with defaults for
// anything empty or stripped entirely by sanitizing.
func (c Controls) Icons() (play, pause string) {
	play = SanitizeIcon(c.PlayIcon)
	if play == "" {
		play = DefaultPlayIcon
	}
	pause = SanitizeIcon(c.PauseIcon)
	if pause == "" {
		pause = DefaultPauseIcon
	}
	return play, pause
}

// Rate is one option of the playback rate selector.
type Rate struct {
	Value    string
	Label    string
	Selected bool
}

// Rates lists PlaybackRates as selector options with 1x selected.
func Rates() []Rate {
	out := make([]Rate, 0, len(PlaybackRates))
	for _, r := range PlaybackRates {
		v := strconv.FormatFloat(r, 'f', -1, 64)
		out = append(out, Rate{Value: v, Label: v + "x", Selected: r == 1})
	}
	return out
}
