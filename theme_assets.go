package wavesurf

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-wavesurf/pkg/themes"
)

//go:embed themes/*.yaml
var embeddedThemes embed.FS

// ThemesFS exposes the bundled theme documents (branded, copper) in the
// format themes.LoadFS reads.
func ThemesFS() fs.FS {
	sub, err := fs.Sub(embeddedThemes, "themes")
	if err != nil {
		return embeddedThemes
	}
	return sub
}

// LoadBundledThemes registers the bundled themes with reg, or with
// themes.Default when reg is nil, and returns their names.
func LoadBundledThemes(reg *themes.Registry) ([]string, error) {
	if reg == nil {
		reg = themes.Default
	}
	return reg.LoadFS(ThemesFS())
}
