package game

import (
	"fmt"
	"math/rand"
	"strings"

	"chess-minimax/engine"
	"chess-minimax/rules"
)

// Players is the set of colors played by the engine.
type Players uint8

const (
	Humans        Players = 0
	ComputerWhite Players = 1 << rules.White
	ComputerBlack Players = 1 << rules.Black
	ComputerBoth          = ComputerWhite | ComputerBlack
)

// ParsePlayers accepts none, white, black or both.
func ParsePlayers(s string) (Players, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return Humans, nil
	case "white":
		return ComputerWhite, nil
	case "black":
		return ComputerBlack, nil
	case "both":
		return ComputerBoth, nil
	}
	return Humans, fmt.Errorf("%q: %w", s, ErrBadPlayers)
}

// Controls reports whether the engine plays c.
func (p Players) Controls(c rules.Color) bool { return p&(1<<c) != 0 }

func (p Players) String() string {
	switch p {
	case ComputerWhite:
		return "white"
	case ComputerBlack:
		return "black"
	case ComputerBoth:
		return "both"
	}
	return "none"
}

// Option configures a Game.
type Option func(*Game)

func WithComputer(p Players) Option {
	return func(g *Game) { g.players = p }
}

// WithDepth sets the search depth, clamped to 1..engine.MaxDepth.
func WithDepth(depth int) Option {
	return func(g *Game) { g.depth = engine.Clamp(depth, 1, engine.MaxDepth) }
}

// WithRandSource fixes the source used for tie-breaking; by default it is seeded from the clock.
func WithRandSource(src rand.Source) Option {
	return func(g *Game) { g.src = src }
}

func WithParallelSearch() Option {
	return func(g *Game) { g.parallel = true }
}
