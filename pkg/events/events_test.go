package events

import (
	"errors"
	"testing"
)

func TestHandlerScript(t *testing.T) {
	got := OnReady("console.log(duration);").Script("ws")
	want := `ws.on("ready", function(duration) { console.log(duration); });`
	if got != want {
		t.Fatalf("script mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestHandlerScript_OnceAndNoParams(t *testing.T) {
	got := Once(OnFinish("done();")).Script("player")
	want := `player.once("finish", function() { done(); });`
	if got != want {
		t.Fatalf("script mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestHandlerScript_ScrollParams(t *testing.T) {
	got := OnScroll("").Script("")
	want := `ws.on("scroll", function(visibleStartTime, visibleEndTime, scrollLeft, scrollRight) {  });`
	if got != want {
		t.Fatalf("script mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestValidate(t *testing.T) {
	if err := OnTimeUpdate("x").Validate(); err != nil {
		t.Fatalf("timeupdate should be valid: %v", err)
	}
	if err := On("hover", "x").Validate(); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestNames_CoversAllEvents(t *testing.T) {
	names := Names()
	if len(names) != 24 {
		t.Fatalf("expected 24 events, got %d", len(names))
	}
	if names[0] != "audioprocess" || names[len(names)-1] != "zoom" {
		t.Fatalf("names not sorted: %v", names)
	}
}
