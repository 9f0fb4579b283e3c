package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default endpoints.
const (
	DefaultSourceURL   = "https://raw.githubusercontent.com"
	DefaultRegistryURL = "https://registry.npmjs.org"
	DefaultBundleURL   = "https://unpkg.com"
	PackageName        = "wavesurfer.js"
)

// ErrStatus reports a non-200 response.
var ErrStatus = errors.New("upstream: unexpected status")

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBaseURLs points the client at alternative source, registry and bundle
// hosts. Empty values keep the defaults.
func WithBaseURLs(source, registry, bundles string) ClientOption {
	return func(c *Client) {
		if source != "" {
			c.sourceURL = strings.TrimRight(source, "/")
		}
		if registry != "" {
			c.registryURL = strings.TrimRight(registry, "/")
		}
		if bundles != "" {
			c.bundleURL = strings.TrimRight(bundles, "/")
		}
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client fetches release sources and metadata.
type Client struct {
	http        *http.Client
	sourceURL   string
	registryURL string
	bundleURL   string
	userAgent   string
	logger      *slog.Logger
}

// NewClient returns a client with a 30 second timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:        &http.Client{Timeout: 30 * time.Second},
		sourceURL:   DefaultSourceURL,
		registryURL: DefaultRegistryURL,
		bundleURL:   DefaultBundleURL,
		userAgent:   "go-wavesurf-sync",
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	c.logger.Debug("upstream: fetch", "url", url)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w %d for %s", ErrStatus, resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// Source fetches a repository file at a release tag.
func (c *Client) Source(ctx context.Context, repo, version, path string) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%s/%s/%s", c.sourceURL, repo, version, strings.TrimLeft(path, "/")))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// LatestVersion asks the npm registry for the latest published version.
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%s/latest", c.registryURL, PackageName))
	if err != nil {
		return "", err
	}
	var meta struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		return "", fmt.Errorf("upstream: decode registry response: %w", err)
	}
	if meta.Version == "" {
		return "", fmt.Errorf("upstream: registry response has no version")
	}
	return meta.Version, nil
}

// DownloadBundles writes wavesurfer.min.js and each plugin bundle into dir,
// returning the written paths. Missing plugin bundles are skipped.
func (c *Client) DownloadBundles(ctx context.Context, version, dir string, pluginNames []string) ([]string, error) {
	if err := os.MkdirAll(filepath.Join(dir, "plugins"), 0o755); err != nil {
		return nil, fmt.Errorf("upstream: create bundle dir: %w", err)
	}
	base := fmt.Sprintf("%s/%s@%s/dist", c.bundleURL, PackageName, version)

	var written []string
	core, err := c.get(ctx, base+"/wavesurfer.min.js")
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "wavesurfer.min.js")
	if err := os.WriteFile(path, core, 0o644); err != nil {
		return nil, fmt.Errorf("upstream: write %s: %w", path, err)
	}
	written = append(written, path)

	for _, name := range pluginNames {
		data, err := c.get(ctx, fmt.Sprintf("%s/plugins/%s.min.js", base, name))
		if errors.Is(err, ErrStatus) {
			c.logger.Warn("upstream: plugin bundle unavailable", "plugin", name, "error", err)
			continue
		}
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, "plugins", name+".min.js")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("upstream: write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// Check fetches the core and wrapped plugin sources for version (the tracked
// version when empty) and compares them with the local tables. Plugin sources
// that fail to download become warnings.
func (c *Client) Check(ctx context.Context, cfg Config, version string) (*Report, error) {
	if version == "" {
		version = cfg.Version
	}
	core, err := c.Source(ctx, cfg.Repository, version, "src/wavesurfer.ts")
	if err != nil {
		return nil, err
	}

	report := &Report{
		TrackedVersion:  cfg.Version,
		UpstreamVersion: version,
		Unwrapped:       cfg.Unwrapped(),
	}
	report.OptionsAdded, report.OptionsRemoved = CompareOptions(ParseTypeBlock(core, "WaveSurferOptions"), cfg.Options.Excluded)
	report.EventsAdded, report.EventsRemoved = CompareEvents(ParseEvents(core, "WaveSurferEvents"), cfg.Events.Excluded)

	for _, name := range cfg.WrappedNames() {
		src, err := c.Source(ctx, cfg.Repository, version, "src/plugins/"+name+".ts")
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			report.Warnings = append(report.Warnings, fmt.Sprintf("could not fetch %s plugin: %v", name, err))
			continue
		}
		fields := ParseTypeBlock(src, pluginTypeName(name))
		added := ComparePluginOptions(fields, cfg.Plugins.ExcludedOptions[name], cfg.Plugins.Wrapped[name])
		if len(added) > 0 {
			if report.PluginOptions == nil {
				report.PluginOptions = make(map[string][]Field)
			}
			report.PluginOptions[name] = added
		}
	}
	return report, nil
}

func pluginTypeName(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:] + "PluginOptions"
}
