package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	wavesurf "github.com/goliatone/go-wavesurf"
	"github.com/goliatone/go-wavesurf/pkg/layout"
	"github.com/goliatone/go-wavesurf/pkg/player"
	"github.com/goliatone/go-wavesurf/pkg/render"
)

func newCompareCommand(a *app) *cobra.Command {
	var (
		columns    int
		sampleRate int
		theme      string
		rawOptions []string
		inline     bool
		out        string
	)
	cmd := &cobra.Command{
		Use:   "compare <label=audio>...",
		Short: "Render several players side by side",
		Long: `Render labelled clips in one document, in argument order.

Arguments are label=audio pairs; a bare path is labelled with its file name.
Columns of 1 stack the players vertically.

Example:
  wavesurf compare original=take1.wav denoised=take1_dn.wav --columns 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := parseEntries(args, sampleRate)
			if err != nil {
				return err
			}
			opts, err := a.playerOptions()
			if err != nil {
				return err
			}
			if theme != "" {
				opts = append(opts, player.WithTheme(theme))
			}
			values, err := parseOptionValues(rawOptions)
			if err != nil {
				return err
			}
			if len(values) > 0 {
				opts = append(opts, player.WithOptions(values))
			}
			if inline {
				opts = append(opts, player.WithRenderer(render.RendererInline))
			}
			a.logger.Debug("comparing", "clips", len(entries), "columns", columns)
			html, err := wavesurf.CompareEntries(cmd.Context(), entries, columns, opts...)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out, html)
		},
	}
	f := cmd.Flags()
	f.IntVar(&columns, "columns", layout.DefaultGridColumns, "grid columns (1 stacks the players)")
	f.IntVar(&sampleRate, "sr", 0, "sample rate for URL sources")
	f.StringVar(&theme, "theme", "", "theme name, optionally name/variant")
	f.StringArrayVar(&rawOptions, "option", nil, "wavesurfer option as key=value (repeatable)")
	f.BoolVar(&inline, "inline", false, "emit a fragment instead of an iframe document")
	f.StringVarP(&out, "out", "o", "", "output file (stdout if empty)")
	return cmd
}

// parseEntries splits label=audio arguments. URLs contain "=" in their query
// strings, so an argument is only split when the part before "=" is not a URL.
func parseEntries(args []string, sampleRate int) ([]wavesurf.Entry, error) {
	entries := make([]wavesurf.Entry, 0, len(args))
	for _, arg := range args {
		label, src, ok := strings.Cut(arg, "=")
		if !ok || strings.Contains(label, "://") {
			label, src = "", arg
		}
		label, src = strings.TrimSpace(label), strings.TrimSpace(src)
		if src == "" {
			return nil, fmt.Errorf("invalid clip %q: missing audio", arg)
		}
		if label == "" {
			label = filepath.Base(src)
		}
		entries = append(entries, wavesurf.Entry{Label: label, Audio: src, SampleRate: sampleRate})
	}
	return entries, nil
}
