// Package events describes wavesurfer.js event subscriptions and renders the
// JavaScript statements that bind them to a player instance.
package events

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownEvent is returned when a handler targets an event wavesurfer.js
// does not emit.
var ErrUnknownEvent = errors.New("events: unknown event")

// Params maps each wavesurfer.js event to its callback parameter names.
var Params = map[string][]string{
	"audioprocess":   {"currentTime"},
	"click":          {"relativeX", "relativeY"},
	"dblclick":       {"relativeX", "relativeY"},
	"decode":         {"duration"},
	"destroy":        {},
	"drag":           {"relativeX"},
	"dragend":        {"relativeX"},
	"dragstart":      {"relativeX"},
	"error":          {"error"},
	"finish":         {},
	"init":           {},
	"interaction":    {"newTime"},
	"load":           {"url"},
	"loading":        {"percent"},
	"pause":          {},
	"play":           {},
	"ready":          {"duration"},
	"redraw":         {},
	"redrawcomplete": {},
	"resize":         {},
	"scroll":         {"visibleStartTime", "visibleEndTime", "scrollLeft", "scrollRight"},
	"seeking":        {"currentTime"},
	"timeupdate":     {"currentTime"},
	"zoom":           {"minPxPerSec"},
}

// Names returns the supported event names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(Params))
	for name := range Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handler attaches a JavaScript function body to a player event.
type Handler struct {
	Event string `json:"event" yaml:"event"`
	JS    string `json:"js" yaml:"js"`
	// Once binds with ws.once instead of ws.on.
	Once bool `json:"once,omitempty" yaml:"once,omitempty"`
}

// Validate checks the event name against Params.
func (h Handler) Validate() error {
	if _, ok := Params[h.Event]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownEvent, h.Event)
	}
	return nil
}

// Script renders the binding statement for the given player variable.
func (h Handler) Script(wsVar string) string {
	if wsVar == "" {
		wsVar = "ws"
	}
	method := "on"
	if h.Once {
		method = "once"
	}
	params := strings.Join(Params[h.Event], ", ")
	return fmt.Sprintf("%s.%s(%q, function(%s) { %s });", wsVar, method, h.Event, params, h.JS)
}

// Once returns a copy of h bound with ws.once.
func Once(h Handler) Handler {
	h.Once = true
	return h
}

// On builds a handler for any event name; Validate reports unknown names.
func On(event, js string) Handler {
	return Handler{Event: event, JS: js}
}

func OnAudioProcess(js string) Handler   { return On("audioprocess", js) }
func OnClick(js string) Handler          { return On("click", js) }
func OnDblClick(js string) Handler       { return On("dblclick", js) }
func OnDecode(js string) Handler         { return On("decode", js) }
func OnDestroy(js string) Handler        { return On("destroy", js) }
func OnDrag(js string) Handler           { return On("drag", js) }
func OnDragEnd(js string) Handler        { return On("dragend", js) }
func OnDragStart(js string) Handler      { return On("dragstart", js) }
func OnError(js string) Handler          { return On("error", js) }
func OnFinish(js string) Handler         { return On("finish", js) }
func OnInit(js string) Handler           { return On("init", js) }
func OnInteraction(js string) Handler    { return On("interaction", js) }
func OnLoad(js string) Handler           { return On("load", js) }
func OnLoading(js string) Handler        { return On("loading", js) }
func OnPause(js string) Handler          { return On("pause", js) }
func OnPlay(js string) Handler           { return On("play", js) }
func OnReady(js string) Handler          { return On("ready", js) }
func OnRedraw(js string) Handler         { return On("redraw", js) }
func OnRedrawComplete(js string) Handler { return On("redrawcomplete", js) }
func OnResize(js string) Handler         { return On("resize", js) }
func OnScroll(js string) Handler         { return On("scroll", js) }
func OnSeeking(js string) Handler        { return On("seeking", js) }
func OnTimeUpdate(js string) Handler     { return On("timeupdate", js) }
func OnZoom(js string) Handler           { return On("zoom", js) }
