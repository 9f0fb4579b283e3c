package upstream

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-wavesurf/pkg/plugins"
)

// Config pins the release to track and the names deliberately left out of
// the local tables.
type Config struct {
	Repository string `yaml:"repository"`
	Version    string `yaml:"version"`
	Options    struct {
		Excluded []string `yaml:"excluded"`
	} `yaml:"options"`
	Events struct {
		Excluded []string `yaml:"excluded"`
	} `yaml:"events"`
	Plugins struct {
		// Wrapped maps plugin file stems to the option names their
		// constructors support.
		Wrapped         map[string][]string `yaml:"wrapped"`
		AllUpstream     []string            `yaml:"all_upstream"`
		ExcludedOptions map[string][]string `yaml:"excluded_options"`
	} `yaml:"plugins"`
}

// DefaultConfig tracks wavesurfer.js 7.12.1 with the wrapped plugins from
// plugins.Wrapped.
func DefaultConfig() Config {
	var cfg Config
	cfg.Repository = "katspaugh/wavesurfer.js"
	cfg.Version = "7.12.1"
	cfg.Options.Excluded = []string{"plugins", "media", "peaks"}
	cfg.Plugins.Wrapped = make(map[string][]string, len(plugins.Wrapped))
	for name, opts := range plugins.Wrapped {
		cfg.Plugins.Wrapped[name] = append([]string(nil), opts...)
	}
	cfg.Plugins.AllUpstream = []string{
		"envelope", "hover", "minimap", "record", "regions", "spectrogram", "timeline", "zoom",
	}
	cfg.Plugins.ExcludedOptions = map[string][]string{
		"timeline":    {"container", "insertPosition", "formatTimeCallback"},
		"minimap":     {"container", "insertPosition"},
		"spectrogram": {"container", "fftSamples", "splitChannels", "frequencyMin", "frequencyMax"},
		"regions":     {},
	}
	return cfg
}

// LoadConfig reads a YAML config. Unset fields keep the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("upstream: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("upstream: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// WrappedNames returns the wrapped plugin names in sorted order.
func (c Config) WrappedNames() []string {
	return sortedKeys(c.Plugins.Wrapped)
}

// Unwrapped lists upstream plugins without a typed constructor.
func (c Config) Unwrapped() []string {
	var out []string
	for _, name := range c.Plugins.AllUpstream {
		if _, ok := c.Plugins.Wrapped[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
