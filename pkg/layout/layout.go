// Package layout arranges several players in one document for side by side
// comparison.
package layout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-wavesurf/pkg/player"
	"github.com/goliatone/go-wavesurf/pkg/plugins"
	"github.com/goliatone/go-wavesurf/pkg/render"
)

// ErrNoPlayers is returned when there is nothing to lay out.
var ErrNoPlayers = errors.New("layout: at least one player is required")

// DefaultGridColumns is the column count Grid uses when none is given.
const DefaultGridColumns = 2

// GridGap is the vertical allowance added to multi-column grids.
const GridGap = 8

// Option configures a layout render.
type Option func(*config)

type config struct {
	assembler   *render.Assembler
	renderer    string
	concurrency int
	logger      *slog.Logger
}

// WithAssembler renders with a configured assembler. By default the first
// player's assembler is used.
func WithAssembler(a *render.Assembler) Option {
	return func(cfg *config) {
		if a != nil {
			cfg.assembler = a
		}
	}
}

// WithRenderer selects the document renderer by name. Without it the first
// player's renderer is used.
func WithRenderer(name string) Option {
	return func(cfg *config) {
		cfg.renderer = name
	}
}

// WithConcurrency bounds how many players resolve their audio at once.
// Zero or less means no limit.
func WithConcurrency(n int) Option {
	return func(cfg *config) {
		cfg.concurrency = n
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Compare renders players into a single document. columns > 1 lays them out
// in an equal column grid; anything else stacks them. The document height
// fits the tallest card per row.
func Compare(ctx context.Context, players []*player.Player, columns int, opts ...Option) (string, error) {
	if len(players) == 0 {
		return "", ErrNoPlayers
	}
	for i, p := range players {
		if p == nil {
			return "", fmt.Errorf("layout: player %d is nil", i)
		}
	}
	cfg := config{logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	a := cfg.assembler
	if a == nil {
		var err error
		if a, err = players[0].Assembler(); err != nil {
			return "", fmt.Errorf("layout: %w", err)
		}
	}

	cards, err := resolveCards(ctx, players, cfg.concurrency)
	if err != nil {
		return "", err
	}

	bodies := make([]string, 0, len(cards))
	pluginSets := make([][]plugins.Config, 0, len(cards))
	maxHeight := 0
	for i, card := range cards {
		body, _, err := a.Player(ctx, card)
		if err != nil {
			return "", fmt.Errorf("layout: player %d: %w", i, err)
		}
		bodies = append(bodies, body)
		pluginSets = append(pluginSets, card.Plugins)
		if h := players[i].Height(); h > maxHeight {
			maxHeight = h
		}
	}

	grid, err := a.Grid(ctx, bodies, columns)
	if err != nil {
		return "", fmt.Errorf("layout: %w", err)
	}
	height := Height(len(cards), columns, maxHeight)
	cfg.logger.Debug("layout: compare", "players", len(cards), "columns", columns, "height", height)

	renderer := cfg.renderer
	if renderer == "" {
		renderer = players[0].Renderer()
	}
	return a.Render(ctx, renderer, render.Document{
		Body:   grid,
		Height: height,
		Page: render.PageOptions{
			Plugins: plugins.Unique(pluginSets...),
			Theme:   players[0].ThemeConfig(),
		},
	})
}

// Grid is Compare with DefaultGridColumns when columns is not positive.
func Grid(ctx context.Context, players []*player.Player, columns int, opts ...Option) (string, error) {
	if columns <= 0 {
		columns = DefaultGridColumns
	}
	return Compare(ctx, players, columns, opts...)
}

// Height returns the document height for n cards: rows of the tallest card
// plus GridGap in a grid, or n cards stacked.
func Height(n, columns, cardHeight int) int {
	if columns > 1 {
		rows := (n + columns - 1) / columns
		return rows*cardHeight + GridGap
	}
	return n * cardHeight
}

// resolveCards resolves audio for every player concurrently, keeping input
// order.
func resolveCards(ctx context.Context, players []*player.Player, limit int) ([]render.Card, error) {
	cards := make([]render.Card, len(players))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range players {
		g.Go(func() error {
			card, err := p.Card(gctx)
			if err != nil {
				return fmt.Errorf("layout: player %d: %w", i, err)
			}
			cards[i] = card
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cards, nil
}
