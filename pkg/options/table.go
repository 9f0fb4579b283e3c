package options

import (
	"strings"
	"unicode"
)

// Kind describes the value shape accepted by a wavesurfer option.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindNumber
	KindString
	// KindColor accepts a CSS color or a list of colors (gradient stops).
	KindColor
	// KindDimension accepts pixels as an integer or any CSS length string.
	KindDimension
	KindObject
	KindBoolOrObject
	KindObjectList
	// KindRaw holds JavaScript source emitted verbatim into the options object.
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindColor:
		return "color"
	case KindDimension:
		return "dimension"
	case KindObject:
		return "object"
	case KindBoolOrObject:
		return "bool or object"
	case KindObjectList:
		return "list of objects"
	case KindRaw:
		return "raw javascript"
	default:
		return "unknown"
	}
}

// Spec maps one snake_case option to its wavesurfer.js property.
type Spec struct {
	Name   string
	JSName string
	Kind   Kind
}

// The mapping is explicit rather than algorithmic so irregular names such as
// csp_nonce -> cspNonce and min_px_per_sec -> minPxPerSec stay stable.
var specs = []Spec{
	{Name: "audio_rate", JSName: "audioRate", Kind: KindNumber},
	{Name: "auto_center", JSName: "autoCenter", Kind: KindBool},
	{Name: "auto_scroll", JSName: "autoScroll", Kind: KindBool},
	{Name: "autoplay", JSName: "autoplay", Kind: KindBool},
	{Name: "backend", JSName: "backend", Kind: KindString},
	{Name: "bar_align", JSName: "barAlign", Kind: KindString},
	{Name: "bar_gap", JSName: "barGap", Kind: KindInt},
	{Name: "bar_height", JSName: "barHeight", Kind: KindNumber},
	{Name: "bar_min_height", JSName: "barMinHeight", Kind: KindInt},
	{Name: "bar_radius", JSName: "barRadius", Kind: KindInt},
	{Name: "bar_width", JSName: "barWidth", Kind: KindInt},
	{Name: "blob_mime_type", JSName: "blobMimeType", Kind: KindString},
	{Name: "container", JSName: "container", Kind: KindString},
	{Name: "csp_nonce", JSName: "cspNonce", Kind: KindString},
	{Name: "cursor_color", JSName: "cursorColor", Kind: KindString},
	{Name: "cursor_width", JSName: "cursorWidth", Kind: KindInt},
	{Name: "drag_to_seek", JSName: "dragToSeek", Kind: KindBoolOrObject},
	{Name: "duration", JSName: "duration", Kind: KindNumber},
	{Name: "fetch_params", JSName: "fetchParams", Kind: KindObject},
	{Name: "fill_parent", JSName: "fillParent", Kind: KindBool},
	{Name: "height", JSName: "height", Kind: KindDimension},
	{Name: "hide_scrollbar", JSName: "hideScrollbar", Kind: KindBool},
	{Name: "interact", JSName: "interact", Kind: KindBool},
	{Name: "media_controls", JSName: "mediaControls", Kind: KindBool},
	{Name: "max_peak", JSName: "maxPeak", Kind: KindNumber},
	{Name: "min_px_per_sec", JSName: "minPxPerSec", Kind: KindInt},
	{Name: "normalize", JSName: "normalize", Kind: KindBool},
	{Name: "progress_color", JSName: "progressColor", Kind: KindColor},
	{Name: "render_function", JSName: "renderFunction", Kind: KindRaw},
	{Name: "sample_rate", JSName: "sampleRate", Kind: KindInt},
	{Name: "split_channels", JSName: "splitChannels", Kind: KindObjectList},
	{Name: "url", JSName: "url", Kind: KindString},
	{Name: "wave_color", JSName: "waveColor", Kind: KindColor},
	{Name: "width", JSName: "width", Kind: KindDimension},
}

var (
	bySnake = indexBySnake(specs)
	byCamel = indexByCamel(specs)
	order   = indexOrder(specs)
)

func indexBySnake(list []Spec) map[string]Spec {
	out := make(map[string]Spec, len(list))
	for _, spec := range list {
		out[spec.Name] = spec
	}
	return out
}

func indexByCamel(list []Spec) map[string]Spec {
	out := make(map[string]Spec, len(list))
	for _, spec := range list {
		out[spec.JSName] = spec
	}
	return out
}

func indexOrder(list []Spec) map[string]int {
	out := make(map[string]int, len(list))
	for i, spec := range list {
		out[spec.Name] = i
	}
	return out
}

// Lookup returns the spec registered for a snake_case option name.
func Lookup(name string) (Spec, bool) {
	spec, ok := bySnake[name]
	return spec, ok
}

// LookupJS returns the spec registered for a camelCase wavesurfer property.
func LookupJS(name string) (Spec, bool) {
	spec, ok := byCamel[name]
	return spec, ok
}

// Known returns every supported option in table order.
func Known() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// CamelCase converts a snake_case option name to the wavesurfer.js spelling.
// Table entries win; other names are converted word by word.
func CamelCase(name string) string {
	if spec, ok := bySnake[name]; ok {
		return spec.JSName
	}
	parts := strings.Split(name, "_")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 || b.Len() == 0 {
			b.WriteString(part)
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// SnakeCase converts a camelCase property name to snake_case. It is used for
// suggestions when reporting upstream drift.
func SnakeCase(name string) string {
	if spec, ok := byCamel[name]; ok {
		return spec.Name
	}
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
