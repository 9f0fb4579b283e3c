package wavesurf

import (
	"io/fs"

	"github.com/goliatone/go-wavesurf/pkg/render"
)

// EmbeddedTemplates exposes the built-in card, page and frame templates so
// callers can copy or extend them and pass the result back through
// render.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return render.Templates()
}
