package plugins

import "testing"

func TestTimelineScript(t *testing.T) {
	script, err := Timeline(TimelineOptions{PrimaryLabelInterval: 5}).Script()
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	want := `WaveSurfer.Timeline.create({"height":20,"primaryLabelInterval":5})`
	if script != want {
		t.Fatalf("script mismatch\nwant: %s\n got: %s", want, script)
	}
}

func TestRegionsScript_EmptyOptions(t *testing.T) {
	script, err := Regions().Script()
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if script != "WaveSurfer.Regions.create({})" {
		t.Fatalf("unexpected script: %s", script)
	}
}

func TestScript_RequiresName(t *testing.T) {
	if _, err := (Config{}).Script(); err == nil {
		t.Fatalf("expected error for unnamed plugin")
	}
}

func TestHeights(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want int
	}{
		{name: "timeline default", cfg: Timeline(TimelineOptions{}), want: 20},
		{name: "timeline custom", cfg: Timeline(TimelineOptions{Height: 30}), want: 30},
		{name: "minimap", cfg: Minimap(MinimapOptions{}), want: 20},
		{name: "spectrogram", cfg: Spectrogram(SpectrogramOptions{}), want: 128},
		{name: "regions", cfg: Regions(), want: 0},
		{name: "hover", cfg: Hover(HoverOptions{LineColor: "#fff"}), want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.Height(); got != tc.want {
				t.Fatalf("height = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMinimapOverlayDefault(t *testing.T) {
	cfg := Minimap(MinimapOptions{WaveColor: "#ccc"})
	if v, _ := cfg.Options.Get("overlay"); v != true {
		t.Fatalf("overlay should default to true, got %v", v)
	}
	if v, _ := cfg.Options.Get("waveColor"); v != "#ccc" {
		t.Fatalf("wave color not set: %v", v)
	}
}

func TestUnique(t *testing.T) {
	got := Unique(
		[]Config{Timeline(TimelineOptions{}), Regions()},
		[]Config{Timeline(TimelineOptions{Height: 40}), Spectrogram(SpectrogramOptions{})},
	)
	if len(got) != 3 {
		t.Fatalf("expected 3 unique plugins, got %d", len(got))
	}
	if got[0].Height() != 20 {
		t.Fatalf("first occurrence should win")
	}
}

func TestCustomSortsOptions(t *testing.T) {
	script, err := Custom("Envelope", map[string]any{"volume": 0.5, "dragLine": true}, "").Script()
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	want := `WaveSurfer.Envelope.create({"dragLine":true,"volume":0.5})`
	if script != want {
		t.Fatalf("script mismatch\nwant: %s\n got: %s", want, script)
	}
}
