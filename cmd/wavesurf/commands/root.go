// Package commands implements the wavesurf command line.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	wavesurf "github.com/goliatone/go-wavesurf"
	"github.com/goliatone/go-wavesurf/cmd/wavesurf/internal/config"
	"github.com/goliatone/go-wavesurf/cmd/wavesurf/internal/prompt"
	"github.com/goliatone/go-wavesurf/pkg/player"
	"github.com/goliatone/go-wavesurf/pkg/render"
	"github.com/goliatone/go-wavesurf/pkg/themes"
)

// app is the state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool

	cfg       *config.Config
	themes    *themes.Registry
	assembler *render.Assembler
	driver    prompt.Driver
	logger    *slog.Logger
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{driver: prompt.Survey()})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "wavesurf",
		Short: "Render wavesurfer.js audio players as standalone HTML",
		Long: `wavesurf turns audio files, URLs and sample buffers into themed
wavesurfer.js players.

Configuration:
  Defaults are read from ~/.wavesurf/config.yaml (theme, cdn, library_file,
  themes_dir, templates_dir, renderer, options).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.wavesurf/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newRenderCommand(a),
		newCompareCommand(a),
		newThemesCommand(a),
		newSyncCommand(a),
	)
	return root
}

// setup configures logging, loads the config file and registers themes.
func (a *app) setup(stderr io.Writer) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", "path", cfg.Path())

	reg := themes.NewRegistry()
	if _, err := wavesurf.LoadBundledThemes(reg); err != nil {
		return fmt.Errorf("load bundled themes: %w", err)
	}
	if cfg.ThemesDir != "" {
		names, err := reg.LoadFS(os.DirFS(cfg.ThemesDir))
		if err != nil {
			return fmt.Errorf("load themes from %s: %w", cfg.ThemesDir, err)
		}
		a.logger.Debug("themes loaded", "dir", cfg.ThemesDir, "names", names)
	}
	a.themes = reg
	return nil
}

// buildAssembler creates the assembler from the config on first use.
func (a *app) buildAssembler() (*render.Assembler, error) {
	if a.assembler != nil {
		return a.assembler, nil
	}
	opts := []render.Option{render.WithLogger(a.logger)}
	if a.cfg != nil {
		if a.cfg.CDN != "" {
			opts = append(opts, render.WithCDN(a.cfg.CDN))
		}
		if a.cfg.LibraryFile != "" {
			opts = append(opts, render.WithLibraryFile(a.cfg.LibraryFile))
		}
		if a.cfg.TemplatesDir != "" {
			opts = append(opts, render.WithTemplatesDir(a.cfg.TemplatesDir))
		}
	}
	asm, err := render.New(opts...)
	if err != nil {
		return nil, err
	}
	a.assembler = asm
	return asm, nil
}

// playerOptions returns the options every player gets from the config.
func (a *app) playerOptions() ([]player.Option, error) {
	asm, err := a.buildAssembler()
	if err != nil {
		return nil, err
	}
	opts := []player.Option{
		player.WithAssembler(asm),
		player.WithThemes(a.themes),
		player.WithLogger(a.logger),
	}
	if a.cfg != nil {
		if a.cfg.Theme != "" {
			opts = append(opts, player.WithTheme(a.cfg.Theme))
		}
		if a.cfg.Renderer != "" {
			opts = append(opts, player.WithRenderer(a.cfg.Renderer))
		}
		if len(a.cfg.Options) > 0 {
			opts = append(opts, player.WithOptions(a.cfg.Options))
		}
	}
	return opts, nil
}

// writeOutput writes html to path, or to w when path is empty.
func writeOutput(w io.Writer, path, html string) error {
	if path == "" {
		_, err := io.WriteString(w, html)
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(w, "Written to %s\n", path)
	return nil
}
