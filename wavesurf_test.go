package wavesurf

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-wavesurf/pkg/audio"
	"github.com/goliatone/go-wavesurf/pkg/layout"
	"github.com/goliatone/go-wavesurf/pkg/player"
	"github.com/goliatone/go-wavesurf/pkg/render"
	"github.com/goliatone/go-wavesurf/pkg/testsupport"
)

func testAssembler(t *testing.T) *render.Assembler {
	t.Helper()
	a, err := render.New(render.WithUIDFunc(testsupport.SequentialUIDs()))
	if err != nil {
		t.Fatalf("assembler: %v", err)
	}
	return a
}

func TestDisplay(t *testing.T) {
	p, err := Display(testsupport.Sine(440, 8000, 0.05), 8000, player.WithTitle("Demo"), player.WithAssembler(testAssembler(t)))
	if err != nil {
		t.Fatalf("display: %v", err)
	}
	out, err := p.HTML(testsupport.Context())
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	testsupport.AssertContains(t, out, "Demo", audio.DataURLPrefix)
}

func TestCompareAudio_OrdersLabelsAndHonoursClipRates(t *testing.T) {
	clips := map[string]any{
		"b-noisy": Clip{Audio: testsupport.Sine(330, 16000, 0.05), SampleRate: 16000},
		"a-clean": testsupport.Sine(220, 8000, 0.05),
		"c-url":   "https://example.com/c.mp3",
	}
	out, err := CompareAudio(testsupport.Context(), clips, 8000, 3, player.WithAssembler(testAssembler(t)))
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	a, b, c := strings.Index(out, "a-clean"), strings.Index(out, "b-noisy"), strings.Index(out, "c-url")
	if a < 0 || b < a || c < b {
		t.Fatalf("labels out of order: %d %d %d", a, b, c)
	}
	testsupport.AssertContains(t, out, "repeat(3, 1fr)", "https://example.com/c.mp3")
}

func TestCompareEntries_Inline(t *testing.T) {
	entries := []Entry{
		{Label: "one", Audio: "https://example.com/one.mp3"},
		{Label: "two", Audio: "https://example.com/two.mp3"},
	}
	out, err := CompareEntries(testsupport.Context(), entries, 2, player.WithRenderer(render.RendererInline))
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if strings.Contains(out, "<iframe") {
		t.Fatalf("inline renderer should reach the compare layout: %.60s", out)
	}
	testsupport.AssertContains(t, out, "one", "two", "repeat(2, 1fr)")
}

func TestCompareEntries_Errors(t *testing.T) {
	if _, err := CompareEntries(testsupport.Context(), nil, 1); !errors.Is(err, layout.ErrNoPlayers) {
		t.Fatalf("expected ErrNoPlayers, got %v", err)
	}
	_, err := CompareEntries(testsupport.Context(), []Entry{{Label: "broken", Audio: 12}}, 1)
	if !errors.Is(err, audio.ErrUnsupportedSource) {
		t.Fatalf("expected ErrUnsupportedSource, got %v", err)
	}
	if !strings.Contains(err.Error(), `"broken"`) {
		t.Fatalf("error should name the entry: %v", err)
	}
}
