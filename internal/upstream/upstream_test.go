package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wavesurf/pkg/events"
	"github.com/goliatone/go-wavesurf/pkg/options"
	"github.com/goliatone/go-wavesurf/pkg/plugins"
)

const optionsSource = `import type { GenericPlugin } from './base-plugin.js'

export type WaveSurferOptions = {
  /** The height of the waveform in pixels */
  height?: number | 'auto'
  /**
   * Render with a custom function
   */
  renderFunction?: (peaks: Array<Float32Array | number[]>, ctx: CanvasRenderingContext2D) => void
  container: HTMLElement | string
  fetchParams?: { cache?: RequestCache }
}

export type WaveSurferEvents = {
  /** When audio starts loading */
  load: [url: string]
  ready: [duration: number]
  play: []
  scroll: [visibleStartTime: number, visibleEndTime: number, scrollLeft: number, scrollRight: number]
}
`

func TestParseTypeBlock(t *testing.T) {
	got := ParseTypeBlock(optionsSource, "WaveSurferOptions")
	want := []Field{
		{Name: "height", Type: "number | 'auto'", Optional: true, Comment: "The height of the waveform in pixels"},
		{Name: "renderFunction", Type: "(peaks: Array<Float32Array | number[]>, ctx: CanvasRenderingContext2D) => void", Optional: true, Comment: "Render with a custom function"},
		{Name: "container", Type: "HTMLElement | string"},
		{Name: "fetchParams", Type: "{ cache?: RequestCache }", Optional: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if ParseTypeBlock(optionsSource, "Missing") != nil {
		t.Fatalf("missing block should yield nil")
	}
}

func TestParseEvents(t *testing.T) {
	got := ParseEvents(optionsSource, "WaveSurferEvents")
	want := map[string][]string{
		"load":   {"url"},
		"ready":  {"duration"},
		"play":   {},
		"scroll": {"visibleStartTime", "visibleEndTime", "scrollLeft", "scrollRight"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

// coreSource renders a wavesurfer.ts stand-in that matches the local tables
// except for one added and one removed option and event.
func coreSource() string {
	var b strings.Builder
	b.WriteString("export type WaveSurferOptions = {\n")
	for _, spec := range options.Known() {
		if spec.JSName == "barAlign" {
			continue
		}
		fmt.Fprintf(&b, "  %s?: unknown\n", spec.JSName)
	}
	b.WriteString("  /** Brand new */\n  newOption?: boolean\n")
	b.WriteString("  plugins: GenericPlugin[]\n")
	b.WriteString("}\n\nexport type WaveSurferEvents = {\n")
	for _, name := range events.Names() {
		if name == "zoom" {
			continue
		}
		labels := make([]string, 0, len(events.Params[name]))
		for _, p := range events.Params[name] {
			labels = append(labels, p+": number")
		}
		fmt.Fprintf(&b, "  %s: [%s]\n", name, strings.Join(labels, ", "))
	}
	b.WriteString("  newevent: [a: number]\n}\n")
	return b.String()
}

const timelineSource = `export type TimelinePluginOptions = {
  height?: number
  container?: HTMLElement | string
  newOpt?: string
}
`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/katspaugh/wavesurfer.js/7.0.0/src/wavesurfer.ts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, coreSource())
	})
	mux.HandleFunc("/katspaugh/wavesurfer.js/7.0.0/src/plugins/timeline.ts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, timelineSource)
	})
	mux.HandleFunc("/wavesurfer.js/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"wavesurfer.js","version":"7.9.9"}`)
	})
	mux.HandleFunc("/wavesurfer.js@7.0.0/dist/wavesurfer.min.js", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "var WaveSurfer={};")
	})
	mux.HandleFunc("/wavesurfer.js@7.0.0/dist/plugins/timeline.min.js", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "WaveSurfer.Timeline={};")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Version = "7.0.0"
	cfg.Plugins.Wrapped = map[string][]string{
		"timeline": plugins.Wrapped["timeline"],
		"zoom":     plugins.Wrapped["zoom"],
	}
	return cfg
}

func TestClientCheck(t *testing.T) {
	srv := newServer(t)
	client := NewClient(WithBaseURLs(srv.URL, srv.URL, srv.URL))

	report, err := client.Check(context.Background(), testConfig(), "")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if diff := cmp.Diff([]Field{{Name: "newOption", Type: "boolean", Optional: true, Comment: "Brand new"}}, report.OptionsAdded); diff != "" {
		t.Fatalf("options added mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"barAlign"}, report.OptionsRemoved); diff != "" {
		t.Fatalf("options removed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string][]string{"newevent": {"a"}}, report.EventsAdded); diff != "" {
		t.Fatalf("events added mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"zoom"}, report.EventsRemoved); diff != "" {
		t.Fatalf("events removed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string][]Field{"timeline": {{Name: "newOpt", Type: "string", Optional: true}}}, report.PluginOptions); diff != "" {
		t.Fatalf("plugin options mismatch (-want +got):\n%s", diff)
	}
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "zoom") {
		t.Fatalf("expected a warning for the missing zoom source, got %v", report.Warnings)
	}
	if !report.HasDrift() {
		t.Fatalf("expected drift")
	}

	var out bytes.Buffer
	if err := report.Format(&out); err != nil {
		t.Fatalf("format: %v", err)
	}
	for _, fragment := range []string{
		"Upstream version: 7.0.0",
		"=== OPTIONS: Added upstream ===",
		"+ newOption (boolean)",
		`table entry: {Name: "new_option", JSName: "newOption", Kind: ...},`,
		"upstream doc: Brand new",
		"  - barAlign",
		`Params entry: "newevent": {"a"},`,
		"  [timeline]",
		"=== UNWRAPPED PLUGINS (available upstream) ===",
	} {
		if !strings.Contains(out.String(), fragment) {
			t.Fatalf("report missing %q:\n%s", fragment, out.String())
		}
	}
}

func TestClientCheck_MissingCore(t *testing.T) {
	srv := newServer(t)
	client := NewClient(WithBaseURLs(srv.URL, srv.URL, srv.URL))
	if _, err := client.Check(context.Background(), testConfig(), "6.0.0"); !errors.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
}

func TestLatestVersion(t *testing.T) {
	srv := newServer(t)
	client := NewClient(WithBaseURLs(srv.URL, srv.URL, srv.URL))
	got, err := client.LatestVersion(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got != "7.9.9" {
		t.Fatalf("expected 7.9.9, got %q", got)
	}
}

func TestDownloadBundles(t *testing.T) {
	srv := newServer(t)
	client := NewClient(WithBaseURLs(srv.URL, srv.URL, srv.URL))
	dir := t.TempDir()

	written, err := client.DownloadBundles(context.Background(), "7.0.0", dir, []string{"timeline", "regions"})
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	want := []string{filepath.Join(dir, "wavesurfer.min.js"), filepath.Join(dir, "plugins", "timeline.min.js")}
	if diff := cmp.Diff(want, written); diff != "" {
		t.Fatalf("written mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(want[1])
	if err != nil || string(data) != "WaveSurfer.Timeline={};" {
		t.Fatalf("unexpected plugin bundle %q: %v", data, err)
	}
}

func TestReportFormat_NoDrift(t *testing.T) {
	var out bytes.Buffer
	r := &Report{TrackedVersion: "7.0.0", UpstreamVersion: "7.0.0"}
	if err := r.Format(&out); err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(out.String(), "No drift detected.") {
		t.Fatalf("unexpected report:\n%s", out.String())
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.yaml")
	doc := "version: 7.5.0\nevents:\n  excluded: [zoom]\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Version != "7.5.0" || cfg.Repository != "katspaugh/wavesurfer.js" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if diff := cmp.Diff([]string{"zoom"}, cfg.Events.Excluded); diff != "" {
		t.Fatalf("excluded mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"envelope", "record"}, cfg.Unwrapped()); diff != "" {
		t.Fatalf("unwrapped mismatch (-want +got):\n%s", diff)
	}
}
