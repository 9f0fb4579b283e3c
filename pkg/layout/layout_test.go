package layout

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/goliatone/go-wavesurf/pkg/audio"
	"github.com/goliatone/go-wavesurf/pkg/player"
	"github.com/goliatone/go-wavesurf/pkg/plugins"
	"github.com/goliatone/go-wavesurf/pkg/render"
	"github.com/goliatone/go-wavesurf/pkg/testsupport"
)

func newPlayer(t *testing.T, src any, rate int, opts ...player.Option) *player.Player {
	t.Helper()
	p, err := player.New(src, rate, opts...)
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	return p
}

func testAssembler(t *testing.T) *render.Assembler {
	t.Helper()
	a, err := render.New(render.WithUIDFunc(testsupport.SequentialUIDs()))
	if err != nil {
		t.Fatalf("assembler: %v", err)
	}
	return a
}

func TestCompare_Grid(t *testing.T) {
	players := []*player.Player{
		newPlayer(t, testsupport.Sine(220, 8000, 0.05), 8000,
			player.WithTitle("First take"),
			player.WithPlugins(plugins.Timeline(plugins.TimelineOptions{})),
		),
		newPlayer(t, "https://example.com/second.mp3", 0,
			player.WithTitle("Second take"),
			player.WithPlugins(plugins.Timeline(plugins.TimelineOptions{}), plugins.Regions()),
		),
	}

	out, err := Compare(testsupport.Context(), players, 2, WithAssembler(testAssembler(t)))
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	tallest := max(players[0].Height(), players[1].Height())
	testsupport.AssertContains(t, out,
		"repeat(2, 1fr)",
		fmt.Sprintf("height: %dpx;", Height(2, 2, tallest)),
		audio.DataURLPrefix,
		"https://example.com/second.mp3",
	)
	first, second := strings.Index(out, "First take"), strings.Index(out, "Second take")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("players out of order: %d %d", first, second)
	}
	if strings.Index(out, "player-uid000000001") > strings.Index(out, "player-uid000000002") {
		t.Fatalf("uids out of order")
	}
	if strings.Count(out, "timeline.min.js") != 1 || strings.Count(out, "regions.min.js") != 1 {
		t.Fatalf("plugin bundles should be loaded once each")
	}
	if strings.Count(out, "<iframe") != 1 {
		t.Fatalf("expected a single iframe")
	}
}

func TestCompare_Stacked(t *testing.T) {
	players := []*player.Player{
		newPlayer(t, "https://example.com/a.mp3", 0, player.WithTitle("a")),
		newPlayer(t, "https://example.com/b.mp3", 0, player.WithTitle("b")),
		newPlayer(t, "https://example.com/c.mp3", 0),
	}
	out, err := Compare(testsupport.Context(), players, 1, WithAssembler(testAssembler(t)), WithConcurrency(1))
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if strings.Contains(out, "grid-template-columns") {
		t.Fatalf("single column should stack")
	}
	if !strings.Contains(out, "height: 672px;") {
		t.Fatalf("expected stacked height of three tallest cards")
	}
}

func TestCompare_PlayerRenderer(t *testing.T) {
	players := []*player.Player{
		newPlayer(t, "https://example.com/a.mp3", 0, player.WithTitle("a"), player.WithRenderer(render.RendererInline)),
		newPlayer(t, "https://example.com/b.mp3", 0, player.WithTitle("b")),
	}
	out, err := Compare(testsupport.Context(), players, 2, WithAssembler(testAssembler(t)))
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if strings.Contains(out, "<iframe") || !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Fatalf("inline player renderer should apply to the layout: %.60s", out)
	}

	framed, err := Compare(testsupport.Context(), players, 2, WithAssembler(testAssembler(t)), WithRenderer(render.RendererIframe))
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !strings.HasPrefix(framed, "<iframe") {
		t.Fatalf("layout renderer option should win over the player: %.60s", framed)
	}
}

func TestCompare_Errors(t *testing.T) {
	if _, err := Compare(testsupport.Context(), nil, 2); !errors.Is(err, ErrNoPlayers) {
		t.Fatalf("expected ErrNoPlayers, got %v", err)
	}

	players := []*player.Player{
		newPlayer(t, "https://example.com/a.mp3", 0),
		newPlayer(t, []float32{0.1, 0.2}, 0),
	}
	_, err := Compare(testsupport.Context(), players, 2, WithAssembler(testAssembler(t)))
	if !errors.Is(err, audio.ErrSampleRateRequired) {
		t.Fatalf("expected ErrSampleRateRequired, got %v", err)
	}
	if !strings.Contains(err.Error(), "player 1") {
		t.Fatalf("error should name the failing player: %v", err)
	}

	if _, err := Compare(testsupport.Context(), []*player.Player{nil}, 1); err == nil {
		t.Fatalf("expected error for nil player")
	}
}

func TestGrid_DefaultColumns(t *testing.T) {
	players := []*player.Player{
		newPlayer(t, "https://example.com/a.mp3", 0),
		newPlayer(t, "https://example.com/b.mp3", 0),
		newPlayer(t, "https://example.com/c.mp3", 0),
	}
	out, err := Grid(testsupport.Context(), players, 0, WithAssembler(testAssembler(t)), WithRenderer(render.RendererInline))
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Fatalf("expected inline page")
	}
	testsupport.AssertContains(t, out, "grid-template-columns: repeat(2, 1fr); gap: 8px;")
}

func TestHeight(t *testing.T) {
	cases := []struct {
		n, columns, card, want int
	}{
		{n: 1, columns: 1, card: 100, want: 100},
		{n: 3, columns: 0, card: 100, want: 300},
		{n: 3, columns: 2, card: 100, want: 208},
		{n: 4, columns: 2, card: 100, want: 208},
		{n: 5, columns: 3, card: 50, want: 108},
	}
	for _, tc := range cases {
		if got := Height(tc.n, tc.columns, tc.card); got != tc.want {
			t.Fatalf("Height(%d, %d, %d) = %d, want %d", tc.n, tc.columns, tc.card, got, tc.want)
		}
	}
}
