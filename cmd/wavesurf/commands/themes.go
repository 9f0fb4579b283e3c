package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-wavesurf/pkg/themes"
)

var (
	themeNameStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	themeDefaultStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6c63ff")).Padding(0, 1)
	themeMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func newThemesCommand(a *app) *cobra.Command {
	var use string
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Long: `Display the built-in, bundled and configured themes with colour swatches
for the waveform, progress and background.

Use --use to store a default theme in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if use != "" {
				name, _, _ := strings.Cut(use, "/")
				if !a.themes.Has(name) {
					return fmt.Errorf("unknown theme %q (available: %s)", use, strings.Join(a.themes.Names(), ", "))
				}
				a.cfg.Theme = use
				if err := a.cfg.Save(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Default theme set to %s in %s\n", use, a.cfg.Path())
				return nil
			}
			current := ""
			if a.cfg != nil {
				current = a.cfg.Theme
			}
			return listThemes(cmd.OutOrStdout(), a.themes, current)
		},
	}
	cmd.Flags().StringVar(&use, "use", "", "save this theme as the default in the config file")
	return cmd
}

func listThemes(w io.Writer, reg *themes.Registry, current string) error {
	if current == "" {
		current = reg.DefaultName()
	}
	currentName, _, _ := strings.Cut(current, "/")

	names := reg.Names()
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	fmt.Fprintln(w, "Available themes:")
	fmt.Fprintln(w)
	for _, name := range names {
		th, err := reg.Get(name)
		if err != nil {
			return err
		}
		th = th.WithDefaults()
		label := fmt.Sprintf("%-*s", width, name)
		if name == currentName {
			label = themeDefaultStyle.Render(label + " *")
		} else {
			label = themeNameStyle.Render(label + "  ")
		}
		line := label + " " + swatch(th.Background) + swatch(firstStop(th.WaveColor)) + swatch(firstStop(th.ProgressColor))
		if variants := reg.Variants(name); len(variants) > 0 {
			line += " " + themeMutedStyle.Render("variants: "+strings.Join(variants, ", "))
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use with --theme name or --theme name/variant, or set a default:")
	fmt.Fprintln(w, "  wavesurf themes --use copper")
	return nil
}

func swatch(color string) string {
	if color == "" {
		return "   "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("   ")
}

func firstStop(c themes.Colors) string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}
