// Package wavesurf renders wavesurfer.js audio players as self-contained
// HTML for notebooks and static pages.
//
// Quick start:
//
//	p, err := wavesurf.Display(samples, 24000, player.WithTitle("Demo"))
//	html, err := p.HTML(ctx)
//
// Several clips side by side:
//
//	html, err := wavesurf.CompareAudio(ctx, map[string]any{
//		"clean": clean,
//		"noisy": wavesurf.Clip{Audio: noisy, SampleRate: 16000},
//	}, 24000, 2)
package wavesurf

import (
	"context"
	"fmt"
	"sort"

	"github.com/goliatone/go-wavesurf/pkg/controls"
	"github.com/goliatone/go-wavesurf/pkg/events"
	"github.com/goliatone/go-wavesurf/pkg/layout"
	"github.com/goliatone/go-wavesurf/pkg/player"
	"github.com/goliatone/go-wavesurf/pkg/plugins"
	"github.com/goliatone/go-wavesurf/pkg/themes"
)

// Player aliases player.Player for callers that only import the root package.
type Player = player.Player

// Theme aliases themes.Theme.
type Theme = themes.Theme

// Controls aliases controls.Controls.
type Controls = controls.Controls

// EventHandler aliases events.Handler.
type EventHandler = events.Handler

// PluginConfig aliases plugins.Config.
type PluginConfig = plugins.Config

// Clip pairs audio with its own sample rate inside CompareAudio input.
type Clip struct {
	Audio      any
	SampleRate int
}

// Entry is one labelled clip for CompareEntries.
type Entry struct {
	Label      string
	Audio      any
	SampleRate int
}

// Display builds a single player. It is player.New under the package name
// most callers reach for first.
func Display(src any, sampleRate int, opts ...player.Option) (*Player, error) {
	return player.New(src, sampleRate, opts...)
}

// CompareAudio renders one player per map entry, titled by its label, in a
// single document. Labels are ordered alphabetically; use CompareEntries to
// control the order. Values may be a Clip to carry their own sample rate;
// anything else uses sampleRate. opts apply to every player.
func CompareAudio(ctx context.Context, clips map[string]any, sampleRate, columns int, opts ...player.Option) (string, error) {
	labels := make([]string, 0, len(clips))
	for label := range clips {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	entries := make([]Entry, 0, len(labels))
	for _, label := range labels {
		entry := Entry{Label: label, Audio: clips[label], SampleRate: sampleRate}
		if clip, ok := entry.Audio.(Clip); ok {
			entry.Audio = clip.Audio
			if clip.SampleRate > 0 {
				entry.SampleRate = clip.SampleRate
			}
		}
		entries = append(entries, entry)
	}
	return CompareEntries(ctx, entries, columns, opts...)
}

// CompareEntries renders labelled clips in the given order. columns <= 1
// stacks the players.
func CompareEntries(ctx context.Context, entries []Entry, columns int, opts ...player.Option) (string, error) {
	if len(entries) == 0 {
		return "", layout.ErrNoPlayers
	}
	players := make([]*player.Player, 0, len(entries))
	for _, entry := range entries {
		popts := append(append([]player.Option(nil), opts...), player.WithTitle(entry.Label))
		p, err := player.New(entry.Audio, entry.SampleRate, popts...)
		if err != nil {
			return "", fmt.Errorf("wavesurf: %q: %w", entry.Label, err)
		}
		players = append(players, p)
	}
	return layout.Compare(ctx, players, columns)
}
