package wavesurf

import (
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wavesurf/pkg/themes"
)

func TestThemesFSContainsBundledThemes(t *testing.T) {
	for _, name := range []string{"branded.yaml", "copper.yaml"} {
		if _, err := fs.ReadFile(ThemesFS(), name); err != nil {
			t.Fatalf("expected %s to be readable: %v", name, err)
		}
	}
}

func TestLoadBundledThemes(t *testing.T) {
	reg := themes.NewRegistry()
	names, err := LoadBundledThemes(reg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"branded", "copper"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	copper, err := reg.Get("copper")
	if err != nil {
		t.Fatalf("get copper: %v", err)
	}
	if copper.PlayButtonStyle != "shield" || copper.BarWidth != themes.Dark().BarWidth {
		t.Fatalf("copper should extend dark: %+v", copper)
	}

	compact, err := reg.Variant("branded", "compact")
	if err != nil {
		t.Fatalf("variant: %v", err)
	}
	if compact.Height != 60 || compact.Background != "#1d3557" {
		t.Fatalf("unexpected compact variant: %+v", compact)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{"card.tmpl", "controls.tmpl", "script.tmpl", "page.tmpl", "frame.tmpl", "grid.tmpl"} {
		if _, err := fs.ReadFile(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected template %s: %v", name, err)
		}
	}
}
