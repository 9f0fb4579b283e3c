package template_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-wavesurf/pkg/render/template/gotemplate"
)

func templatesFS() fstest.MapFS {
	return fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"use-filter.tmpl": {Data: []byte("{{ name|shout }}")},
		"escape.tmpl":     {Data: []byte("{{ title }}|{{ markup|safe }}|{{ title|jsstring }}")},
	}
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada!" {
		t.Fatalf("render template mismatch result: %q", result)
	}
	if buf.String() != result {
		t.Fatalf("writer mismatch: %q", buf.String())
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global.tmpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected output: %q", result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected output: %q", result)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
}

func TestGoTemplateEngine_Escaping(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("escape", map[string]any{
		"title":  `<b>"Hi"</b>`,
		"markup": "<i>ok</i>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `&lt;b&gt;&quot;Hi&quot;&lt;/b&gt;|<i>ok</i>|"\u003cb\u003e\"Hi\"\u003c/b\u003e"`
	if result != want {
		t.Fatalf("escape mismatch\nwant: %s\n got: %s", want, result)
	}
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": "x", "b": "y"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "x-y" {
		t.Fatalf("unexpected output: %q", result)
	}
}

func TestGoTemplateEngine_Hooks(t *testing.T) {
	var seen []string
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS()),
		gotemplate.WithHooks(
			gotemplatepkg.WithPreHooksChain(func(hc *gotemplatepkg.HookContext) error {
				seen = append(seen, hc.TemplateName)
				hc.Data = map[string]any{"name": "Grace"}
				return nil
			}),
			gotemplatepkg.WithPostHooksChain(func(hc *gotemplatepkg.HookContext) (string, error) {
				return strings.ToUpper(hc.Output), nil
			}),
		),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var buf bytes.Buffer
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "HELLO GRACE!" || buf.String() != result {
		t.Fatalf("hooks not applied: %q (writer %q)", result, buf.String())
	}
	if len(seen) != 1 || seen[0] != "hello.tmpl" {
		t.Fatalf("pre hook saw %v", seen)
	}
}

func TestGoTemplateEngine_StructData(t *testing.T) {
	engine := newEngine(t)
	data := struct {
		Name string `json:"name"`
	}{Name: "Lin"}
	result, err := engine.RenderTemplate("hello", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Lin!" {
		t.Fatalf("struct data should be addressed by json tag: %q", result)
	}
	if _, err := engine.RenderTemplate("hello", []string{"x"}); err == nil {
		t.Fatalf("expected error for non-object data")
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
