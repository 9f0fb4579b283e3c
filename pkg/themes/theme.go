package themes

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownField reports an override naming a field Theme does not have.
var ErrUnknownField = errors.New("themes: unknown field")

// Colors is a single CSS color or a list of gradient stops.
type Colors []string

// Color builds a single-color value.
func Color(c string) Colors {
	if c == "" {
		return nil
	}
	return Colors{c}
}

// Gradient builds a multi-stop value.
func Gradient(stops ...string) Colors {
	return Colors(stops)
}

// Value returns the option form: nil when unset, a string for one color and a
// list otherwise.
func (c Colors) Value() any {
	switch len(c) {
	case 0:
		return nil
	case 1:
		return c[0]
	default:
		out := make([]string, len(c))
		copy(out, c)
		return out
	}
}

// String joins the stops, used for CSS variables.
func (c Colors) String() string {
	return strings.Join(c, ", ")
}

// UnmarshalYAML accepts either a scalar color or a sequence of stops.
func (c *Colors) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*c = Color(s)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*c = Colors(list)
		return nil
	default:
		return fmt.Errorf("themes: colors must be a string or a list, got %s", node.Tag)
	}
}

// MarshalYAML emits a scalar for single colors so documents round trip.
func (c Colors) MarshalYAML() (any, error) {
	return c.Value(), nil
}

// Theme controls both the waveform appearance and the surrounding card chrome.
// Waveform fields left at their zero value do not override player options.
type Theme struct {
	WaveColor     Colors `yaml:"wave_color,omitempty"`
	ProgressColor Colors `yaml:"progress_color,omitempty"`
	CursorColor   string `yaml:"cursor_color,omitempty"`
	BarWidth      int    `yaml:"bar_width,omitempty"`
	BarGap        int    `yaml:"bar_gap,omitempty"`
	BarRadius     int    `yaml:"bar_radius,omitempty"`
	Height        int    `yaml:"height,omitempty"`

	Background   string `yaml:"background,omitempty"`
	Border       string `yaml:"border,omitempty"`
	BorderRadius string `yaml:"border_radius,omitempty"`
	Padding      string `yaml:"padding,omitempty"`
	FontFamily   string `yaml:"font_family,omitempty"`

	TitleColor      string `yaml:"title_color,omitempty"`
	TitleFontSize   string `yaml:"title_font_size,omitempty"`
	TitleFontWeight string `yaml:"title_font_weight,omitempty"`
	// TitleMarkerColor and TitleMarkerShape (a CSS clip-path) draw a bullet
	// before the title when both are set.
	TitleMarkerColor string `yaml:"title_marker_color,omitempty"`
	TitleMarkerShape string `yaml:"title_marker_shape,omitempty"`

	// PlayButtonStyle is one of "shield", "circle" or "minimal".
	PlayButtonStyle     string `yaml:"play_button_style,omitempty"`
	PlayButtonColor     string `yaml:"play_button_color,omitempty"`
	PlayButtonBg        string `yaml:"play_button_bg,omitempty"`
	PlayButtonHoverGlow string `yaml:"play_button_hover_glow,omitempty"`

	TimeColor string `yaml:"time_color,omitempty"`

	TopAccent         string `yaml:"top_accent,omitempty"`
	BackgroundPattern string `yaml:"background_pattern,omitempty"`

	CardMarginBottom string `yaml:"card_margin_bottom,omitempty"`
}

// Base returns the chrome defaults every theme starts from.
func Base() Theme {
	return Theme{
		Background:       "#1a1a2e",
		Border:           "1px solid rgba(255, 255, 255, 0.08)",
		BorderRadius:     "12px",
		Padding:          "20px 24px",
		FontFamily:       "-apple-system, BlinkMacSystemFont, system-ui, sans-serif",
		TitleColor:       "rgba(255, 255, 255, 0.85)",
		TitleFontSize:    "0.8rem",
		TitleFontWeight:  "600",
		PlayButtonStyle:  "circle",
		PlayButtonColor:  "#ffffff",
		PlayButtonBg:     "rgba(255, 255, 255, 0.12)",
		TimeColor:        "rgba(255, 255, 255, 0.4)",
		CardMarginBottom: "8px",
	}
}

// WithDefaults fills empty chrome fields from Base.
func (t Theme) WithDefaults() Theme {
	base := Base()
	dst := reflect.ValueOf(&t).Elem()
	src := reflect.ValueOf(base)
	for i := 0; i < dst.NumField(); i++ {
		field := dst.Field(i)
		if field.Kind() != reflect.String || field.String() != "" {
			continue
		}
		field.SetString(src.Field(i).String())
	}
	return t
}

// WaveformOverrides returns the set waveform fields keyed by option name.
func (t Theme) WaveformOverrides() map[string]any {
	out := make(map[string]any, 7)
	if v := t.WaveColor.Value(); v != nil {
		out["wave_color"] = v
	}
	if v := t.ProgressColor.Value(); v != nil {
		out["progress_color"] = v
	}
	if t.CursorColor != "" {
		out["cursor_color"] = t.CursorColor
	}
	if t.BarWidth > 0 {
		out["bar_width"] = t.BarWidth
	}
	if t.BarGap > 0 {
		out["bar_gap"] = t.BarGap
	}
	if t.BarRadius > 0 {
		out["bar_radius"] = t.BarRadius
	}
	if t.Height > 0 {
		out["height"] = t.Height
	}
	return out
}

// With returns a copy with the named fields replaced. Keys use the snake_case
// field names (e.g. "background", "wave_color").
func (t Theme) With(overrides map[string]any) (Theme, error) {
	if len(overrides) == 0 {
		return t, nil
	}
	known := FieldNames()
	var errs []error
	for key := range overrides {
		if _, ok := known[key]; !ok {
			errs = append(errs, fmt.Errorf("%w %q", ErrUnknownField, key))
		}
	}
	if len(errs) > 0 {
		return t, errors.Join(errs...)
	}

	current, err := t.fields()
	if err != nil {
		return t, err
	}
	for key, value := range overrides {
		current[key] = value
	}
	payload, err := yaml.Marshal(current)
	if err != nil {
		return t, fmt.Errorf("themes: encode overrides: %w", err)
	}
	var out Theme
	if err := yaml.Unmarshal(payload, &out); err != nil {
		return t, fmt.Errorf("themes: apply overrides: %w", err)
	}
	return out, nil
}

// Tokens flattens the theme into string tokens keyed by field name.
func (t Theme) Tokens() map[string]string {
	out := make(map[string]string)
	v := reflect.ValueOf(t)
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		name := yamlName(typ.Field(i))
		field := v.Field(i)
		switch value := field.Interface().(type) {
		case string:
			if value != "" {
				out[name] = value
			}
		case int:
			if value > 0 {
				out[name] = fmt.Sprintf("%d", value)
			}
		case Colors:
			if len(value) > 0 {
				out[name] = value.String()
			}
		}
	}
	return out
}

func (t Theme) fields() (map[string]any, error) {
	payload, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("themes: encode theme: %w", err)
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("themes: decode theme: %w", err)
	}
	return out, nil
}

// FieldNames returns the set of snake_case field names accepted by With.
func FieldNames() map[string]struct{} {
	typ := reflect.TypeOf(Theme{})
	out := make(map[string]struct{}, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		out[yamlName(typ.Field(i))] = struct{}{}
	}
	return out
}

func yamlName(field reflect.StructField) string {
	tag := field.Tag.Get("yaml")
	name, _, _ := strings.Cut(tag, ",")
	return name
}
