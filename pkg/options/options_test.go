package options

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_NormalizesKnownOptions(t *testing.T) {
	opts, err := Parse(map[string]any{
		"bar_width":      5,
		"normalize":      true,
		"height":         "auto",
		"wave_color":     []any{"#aaa", "#bbb"},
		"min_px_per_sec": 50.0,
		"drag_to_seek":   map[string]any{"debounceTime": 100},
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := map[string]any{
		"bar_width":      5,
		"normalize":      true,
		"height":         "auto",
		"wave_color":     []string{"#aaa", "#bbb"},
		"min_px_per_sec": 50,
		"drag_to_seek":   map[string]any{"debounceTime": 100},
	}
	if diff := cmp.Diff(want, opts.Map()); diff != "" {
		t.Fatalf("normalized options mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ReportsUnknownAndInvalid(t *testing.T) {
	_, err := Parse(map[string]any{
		"bar_widht": 3,
		"normalize": "yes",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption in %v", err)
	}
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue in %v", err)
	}

	var optErr *OptionError
	if !errors.As(err, &optErr) {
		t.Fatalf("expected *OptionError, got %T", err)
	}
	if !strings.Contains(err.Error(), `did you mean "bar_width"`) {
		t.Fatalf("expected suggestion in %q", err.Error())
	}
}

func TestParseLenient_IgnoresUnknown(t *testing.T) {
	opts, err := ParseLenient(map[string]any{"bar_width": 2, "not_an_option": 1})
	if err != nil {
		t.Fatalf("parse lenient: %v", err)
	}
	if opts.Len() != 1 || !opts.Has("bar_width") {
		t.Fatalf("unexpected options: %v", opts.Map())
	}

	if _, err := ParseLenient(map[string]any{"bar_width": "wide"}); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected invalid value error, got %v", err)
	}
}

func TestParse_SkipsNilValues(t *testing.T) {
	opts, err := Parse(map[string]any{"bar_width": nil})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.Len() != 0 {
		t.Fatalf("expected nil values dropped, got %v", opts.Map())
	}
}

func TestMerge_DoesNotMutateReceiver(t *testing.T) {
	base := MustParse(map[string]any{"bar_width": 2, "height": 80})
	merged := base.Merge(MustParse(map[string]any{"bar_width": 10}))

	if v, _ := base.Get("bar_width"); v != 2 {
		t.Fatalf("base mutated: %v", v)
	}
	if v, _ := merged.Get("bar_width"); v != 10 {
		t.Fatalf("override not applied: %v", v)
	}
	if v, _ := merged.Get("height"); v != 80 {
		t.Fatalf("base value lost: %v", v)
	}
}

func TestJS_UsesCamelCaseInTableOrder(t *testing.T) {
	opts := MustParse(map[string]any{
		"wave_color": "#fff",
		"bar_width":  3,
		"csp_nonce":  "abc",
	})

	got := opts.JS()
	keys := make([]string, len(got))
	for i, field := range got {
		keys[i] = field.Key
	}
	want := []string{"barWidth", "cspNonce", "waveColor"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalJS_EmitsRenderFunctionRaw(t *testing.T) {
	opts := MustParse(map[string]any{
		"normalize":       true,
		"render_function": "function(peaks, ctx) { ctx.fill(); }",
	})

	out, err := opts.JS().MarshalJS()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"normalize":true,"renderFunction":function(peaks, ctx) { ctx.fill(); }}`
	if out != want {
		t.Fatalf("unexpected literal\nwant: %s\n got: %s", want, out)
	}
}

func TestMarshalJS_EscapesScriptTerminators(t *testing.T) {
	obj := Object{}.Set("url", "</script><script>alert(1)</script>")
	out, err := obj.MarshalJS()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(out, "</script>") {
		t.Fatalf("script terminator leaked: %s", out)
	}
}

func TestObject_SetDefaultKeepsExisting(t *testing.T) {
	obj := Object{}.Set("cursorWidth", 4)
	obj = obj.SetDefault("cursorWidth", 2).SetDefault("hideScrollbar", true)

	if v, _ := obj.Get("cursorWidth"); v != 4 {
		t.Fatalf("default overwrote explicit value: %v", v)
	}
	if v, _ := obj.Get("hideScrollbar"); v != true {
		t.Fatalf("default not applied: %v", v)
	}
}

func TestCaseConversion(t *testing.T) {
	cases := map[string]string{
		"barWidth":     "bar_width",
		"barMinHeight": "bar_min_height",
		"cspNonce":     "csp_nonce",
		"minPxPerSec":  "min_px_per_sec",
		"autoplay":     "autoplay",
		"height":       "height",
		"dragToSeek":   "drag_to_seek",
		"maxPeak":      "max_peak",
	}
	for camel, snake := range cases {
		if got := SnakeCase(camel); got != snake {
			t.Fatalf("SnakeCase(%q) = %q, want %q", camel, got, snake)
		}
		if got := CamelCase(snake); got != camel {
			t.Fatalf("CamelCase(%q) = %q, want %q", snake, got, camel)
		}
	}
	if got := CamelCase("primary_label_interval"); got != "primaryLabelInterval" {
		t.Fatalf("fallback camel case: %q", got)
	}
}

func TestKnown_CoversTable(t *testing.T) {
	if got := len(Known()); got != 34 {
		t.Fatalf("expected 34 options, got %d", got)
	}
	for _, spec := range Known() {
		if _, ok := LookupJS(spec.JSName); !ok {
			t.Fatalf("missing camel index for %s", spec.Name)
		}
	}
}
