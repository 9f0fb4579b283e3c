package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-wavesurf/internal/upstream"
)

// ErrDrift is returned by sync when the local tables are out of date.
var ErrDrift = errors.New("upstream drift detected")

func newSyncCommand(a *app) *cobra.Command {
	var (
		version     string
		repo        string
		configPath  string
		checkLatest bool
		download    string
		asJSON      bool
		sourceURL   string
		registryURL string
		bundleURL   string
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Check the option, event and plugin tables against wavesurfer.js",
		Long: `Fetch the TypeScript sources of a wavesurfer.js release and report options,
events and plugin options that the local tables do not know about.

Exits non-zero when drift is found.

Examples:
  wavesurf sync
  wavesurf sync --check-latest
  wavesurf sync --version 7.12.1 --download ./vendor/wavesurfer`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if configPath == "" && a.cfg != nil {
				configPath = a.cfg.SyncConfig
			}
			cfg := upstream.DefaultConfig()
			if configPath != "" {
				loaded, err := upstream.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if repo != "" {
				cfg.Repository = repo
			}

			client := upstream.NewClient(
				upstream.WithBaseURLs(sourceURL, registryURL, bundleURL),
				upstream.WithLogger(a.logger),
			)
			if checkLatest {
				latest, err := client.LatestVersion(ctx)
				if err != nil {
					return err
				}
				a.logger.Debug("latest release", "version", latest)
				version = latest
			}

			report, err := client.Check(ctx, cfg, version)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			} else if err := report.Format(out); err != nil {
				return err
			}

			if download != "" {
				written, err := client.DownloadBundles(ctx, report.UpstreamVersion, download, cfg.WrappedNames())
				if err != nil {
					return err
				}
				for _, path := range written {
					fmt.Fprintf(out, "Downloaded %s\n", path)
				}
			}
			if report.HasDrift() {
				return ErrDrift
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&version, "version", "", "release to check (defaults to the tracked version)")
	f.StringVar(&repo, "repo", "", "GitHub repository as owner/name")
	f.StringVar(&configPath, "sync-config", "", "sync settings YAML (tracked version, exclusions, wrapped plugins)")
	f.BoolVar(&checkLatest, "check-latest", false, "check the latest release on npm")
	f.StringVar(&download, "download", "", "also download the library and plugin bundles into this directory")
	f.BoolVar(&asJSON, "json", false, "print the report as JSON")
	f.StringVar(&sourceURL, "source-url", "", "raw source host")
	f.StringVar(&registryURL, "registry-url", "", "npm registry host")
	f.StringVar(&bundleURL, "bundle-url", "", "bundle CDN host")
	return cmd
}
