package render

import (
	"context"
	"strings"
)

// Built-in renderer names.
const (
	RendererIframe = "iframe"
	RendererInline = "inline"
)

// Document is assembled card (or grid) markup awaiting its outer wrapper.
type Document struct {
	Body   string
	Height int
	Page   PageOptions
}

// Renderer turns a Document into final output.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// Render wraps doc with the named renderer, or the default one when name is
// empty.
func (a *Assembler) Render(ctx context.Context, name string, doc Document) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = a.defaultName
	}
	r, err := a.registry.Get(name)
	if err != nil {
		return "", err
	}
	out, err := r.Render(ctx, doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// iframeRenderer isolates the page in an iframe srcdoc. Notebook front ends
// strip or sandbox inline scripts, so this is the default.
type iframeRenderer struct {
	assembler *Assembler
}

func (r *iframeRenderer) Name() string        { return RendererIframe }
func (r *iframeRenderer) ContentType() string { return "text/html" }

func (r *iframeRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	out, err := r.assembler.Frame(ctx, doc.Body, doc.Height, doc.Page)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// inlineRenderer emits the full page without an iframe, for static HTML
// files and hosts that run inline scripts.
type inlineRenderer struct {
	assembler *Assembler
}

func (r *inlineRenderer) Name() string        { return RendererInline }
func (r *inlineRenderer) ContentType() string { return "text/html" }

func (r *inlineRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	out, err := r.assembler.Page(ctx, doc.Body, doc.Page)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
