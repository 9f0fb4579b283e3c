package controls

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-wavesurf/pkg/themes"
	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	c := Default()
	if !c.ShowPlayButton || !c.ShowTime || c.ShowVolume || c.ShowPlaybackRate {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Top() {
		t.Fatalf("default layout should be bottom")
	}
	if c.Height() != BarHeight {
		t.Fatalf("height = %d, want %d", c.Height(), BarHeight)
	}
}

func TestHeight_Hidden(t *testing.T) {
	if got := (Controls{}).Height(); got != 0 {
		t.Fatalf("hidden controls should take no space, got %d", got)
	}
	if got := (Controls{ShowVolume: true}).Height(); got != 54 {
		t.Fatalf("volume-only bar height = %d", got)
	}
}

func TestEffectiveStyle(t *testing.T) {
	th := themes.Dark()
	th.PlayButtonStyle = StyleShield
	if got := (Controls{}).EffectiveStyle(th); got != StyleShield {
		t.Fatalf("theme style should apply, got %s", got)
	}
	if got := (Controls{PlayButtonStyle: StyleMinimal}).EffectiveStyle(th); got != StyleMinimal {
		t.Fatalf("explicit style should win, got %s", got)
	}
	if got := (Controls{}).EffectiveStyle(themes.Theme{}); got != StyleCircle {
		t.Fatalf("fallback should be circle, got %s", got)
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default should be valid: %v", err)
	}
	err := Controls{Layout: "side", PlayButtonStyle: "round"}.Validate()
	if !errors.Is(err, ErrInvalidControls) {
		t.Fatalf("expected ErrInvalidControls, got %v", err)
	}
	if !strings.Contains(err.Error(), "side") || !strings.Contains(err.Error(), "round") {
		t.Fatalf("both problems should be reported: %v", err)
	}
}

func TestIcons_DefaultsAndSanitizing(t *testing.T) {
	play, pause := Default().Icons()
	if play != DefaultPlayIcon || pause != DefaultPauseIcon {
		t.Fatalf("unexpected default icons: %q %q", play, pause)
	}

	c := Controls{
		PlayIcon:  `<svg viewBox="0 0 10 10" onclick="x()"><script>alert(1)</script><path d="M0 0L10 5L0 10z"/></svg>`,
		PauseIcon: `<script>alert(1)</script>`,
	}
	play, pause = c.Icons()
	if strings.Contains(play, "script") || strings.Contains(play, "onclick") {
		t.Fatalf("unsafe markup kept: %q", play)
	}
	if !strings.Contains(play, "<svg") || !strings.Contains(play, "<path") {
		t.Fatalf("svg markup dropped: %q", play)
	}
	if pause != DefaultPauseIcon {
		t.Fatalf("fully stripped icon should fall back, got %q", pause)
	}
}

func TestRates(t *testing.T) {
	got := Rates()
	labels := make([]string, 0, len(got))
	selected := ""
	for _, r := range got {
		labels = append(labels, r.Label)
		if r.Selected {
			selected = r.Value
		}
	}
	want := []string{"0.5x", "0.75x", "1x", "1.25x", "1.5x", "2x"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if selected != "1" {
		t.Fatalf("1x should be selected, got %q", selected)
	}
}
