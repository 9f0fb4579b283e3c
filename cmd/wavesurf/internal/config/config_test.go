package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != "" || cfg.Path() != path {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("load should not create the file")
	}
}

func TestLoad_ParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `theme: light/compact
cdn: https://cdn.example.com/ws
renderer: inline
options:
  bar_width: 4
  normalize: true
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != "light/compact" || cfg.CDN != "https://cdn.example.com/ws" || cfg.Renderer != "inline" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Options["normalize"] != true {
		t.Fatalf("expected normalize option, got %v", cfg.Options)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Theme = "copper"
	cfg.ThemesDir = "/srv/themes"
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff([]string{"copper", "/srv/themes"}, []string{again.Theme, again.ThemesDir}); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: [unterminated"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
