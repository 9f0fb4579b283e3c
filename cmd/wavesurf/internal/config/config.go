// Package config loads the wavesurf CLI settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir is the configuration directory under the home directory.
	DefaultBaseDir = ".wavesurf"
	// DefaultConfigFile is the configuration filename.
	DefaultConfigFile = "config.yaml"
)

// Config holds CLI defaults. Every field is optional.
type Config struct {
	// Theme is the default theme name, optionally "name/variant".
	Theme string `yaml:"theme,omitempty"`
	// CDN is the base URL for wavesurfer.js bundles.
	CDN string `yaml:"cdn,omitempty"`
	// LibraryFile inlines a local wavesurfer.js bundle instead of the CDN.
	LibraryFile string `yaml:"library_file,omitempty"`
	// ThemesDir holds extra theme documents loaded at startup.
	ThemesDir string `yaml:"themes_dir,omitempty"`
	// TemplatesDir overrides the built-in templates.
	TemplatesDir string `yaml:"templates_dir,omitempty"`
	// Renderer is "iframe" or "inline".
	Renderer string `yaml:"renderer,omitempty"`
	// Options are wavesurfer options applied to every player.
	Options map[string]any `yaml:"options,omitempty"`
	// SyncConfig points at the upstream sync settings.
	SyncConfig string `yaml:"sync_config,omitempty"`

	path string
}

// DefaultPath returns ~/.wavesurf/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home directory: %w", err)
	}
	return filepath.Join(home, DefaultBaseDir, DefaultConfigFile), nil
}

// Load reads the config at path, or the default path when empty. A missing
// file yields an empty config bound to that path.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg := &Config{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.path = path
	cfg.ThemesDir = expandHome(cfg.ThemesDir)
	cfg.TemplatesDir = expandHome(cfg.TemplatesDir)
	cfg.LibraryFile = expandHome(cfg.LibraryFile)
	cfg.SyncConfig = expandHome(cfg.SyncConfig)
	return cfg, nil
}

// Save writes the config, creating its directory.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", c.path, err)
	}
	return nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
