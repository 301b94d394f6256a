// Package game drives a single chess game between humans and the minimax
// engine: it owns the live position, validates human moves against the legal
// move sets and asks the searcher for computer moves.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/exp/slices"

	"chess-minimax/engine"
	"chess-minimax/rules"
)

var (
	ErrGameOver          = errors.New("game is over")
	ErrEmptySquare       = errors.New("no piece on square")
	ErrNotYourPiece      = errors.New("piece belongs to the side not on move")
	ErrNoMoves           = errors.New("piece has no legal moves")
	ErrIllegalMove       = errors.New("illegal move")
	ErrPromotionRequired = errors.New("promotion piece required")
	ErrNotComputerTurn   = errors.New("side to move is not computer controlled")
	ErrBadPlayers        = errors.New("unknown computer side")
)

// Game is one game in progress. It is not safe for concurrent use.
type Game struct {
	pos      rules.Position
	players  Players
	depth    int
	parallel bool
	src      rand.Source
	searcher *engine.Searcher
	history  []rules.Move
	outcome  rules.Outcome
}

// New starts a game from the standard setup.
func New(opts ...Option) *Game {
	g := &Game{
		pos:   rules.StartPosition(),
		depth: engine.DefaultDepth,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.src == nil {
		g.src = rand.NewSource(time.Now().UnixNano())
	}
	var searchOpts []engine.Option
	if g.parallel {
		searchOpts = append(searchOpts, engine.WithParallelRoot())
	}
	g.searcher = engine.NewSearcher(g.src, searchOpts...)
	g.outcome = rules.Status(&g.pos)
	return g
}

// Position returns a copy of the live position.
func (g *Game) Position() rules.Position { return g.pos }

func (g *Game) SideToMove() rules.Color { return g.pos.SideToMove() }

func (g *Game) Players() Players { return g.players }

func (g *Game) Depth() int { return g.depth }

// History returns the moves played so far.
func (g *Game) History() []rules.Move { return slices.Clone(g.history) }

// Outcome is the game state after the last applied move.
func (g *Game) Outcome() rules.Outcome { return g.outcome }

// ComputerToMove reports whether the engine plays the side to move.
func (g *Game) ComputerToMove() bool {
	return !g.outcome.Over() && g.players.Controls(g.pos.SideToMove())
}

// Moves returns the legal moves of the piece on from, which must belong to
// the side to move. A piece with no moves yields ErrNoMoves and an empty set.
func (g *Game) Moves(from rules.Square) (rules.MoveSet, error) {
	if g.outcome.Over() {
		return rules.MoveSet{}, ErrGameOver
	}
	pc, ok := g.pos.PieceAt(from)
	if !ok {
		return rules.MoveSet{}, fmt.Errorf("%v: %w", from, ErrEmptySquare)
	}
	if pc.Color != g.pos.SideToMove() {
		return rules.MoveSet{}, fmt.Errorf("%v on %v: %w", pc, from, ErrNotYourPiece)
	}
	set := rules.LegalMoves(&g.pos, from)
	if set.Count() == 0 {
		return set, fmt.Errorf("%v on %v: %w", pc, from, ErrNoMoves)
	}
	return set, nil
}

// Play applies the move of the piece on from to to. promotion may be
// NoPieceKind unless a pawn pushes onto the last row.
func (g *Game) Play(from, to rules.Square, promotion rules.PieceKind) (rules.Move, error) {
	set, err := g.Moves(from)
	if err != nil {
		return rules.Move{}, err
	}
	m, err := resolve(set, to, promotion)
	if err != nil {
		return rules.Move{}, err
	}
	g.apply(m)
	return m, nil
}

// PlayCoordinates parses moves like "e2e4" or "E7E8Q" and plays them.
func (g *Game) PlayCoordinates(s string) (rules.Move, error) {
	from, to, promo, err := ParseCoordinates(s)
	if err != nil {
		return rules.Move{}, err
	}
	return g.Play(from, to, promo)
}

// ComputerMove searches for the side to move and plays the chosen move.
func (g *Game) ComputerMove() (engine.Result, error) {
	if g.outcome.Over() {
		return engine.Result{}, ErrGameOver
	}
	if !g.players.Controls(g.pos.SideToMove()) {
		return engine.Result{}, fmt.Errorf("%v: %w", g.pos.SideToMove(), ErrNotComputerTurn)
	}
	r := g.searcher.Search(&g.pos, g.depth)
	g.apply(r.Move)
	return r, nil
}

func (g *Game) apply(m rules.Move) {
	g.pos.MakeMove(m)
	g.pos.NextTurn()
	g.history = append(g.history, m)
	g.outcome = rules.Status(&g.pos)
}

func resolve(set rules.MoveSet, to rules.Square, promotion rules.PieceKind) (rules.Move, error) {
	candidates := set.To(to)
	switch {
	case len(candidates) == 0:
		return rules.Move{}, fmt.Errorf("%v to %v: %w", set.From, to, ErrIllegalMove)
	case len(candidates) == 1 && (!candidates[0].IsPromotion() || promotion == rules.NoPieceKind):
		// A capturing promotion only offers the queen.
		return candidates[0], nil
	case promotion == rules.NoPieceKind:
		return rules.Move{}, fmt.Errorf("%v to %v: %w", set.From, to, ErrPromotionRequired)
	}
	i := slices.IndexFunc(candidates, func(m rules.Move) bool { return m.Promotion == promotion })
	if i < 0 {
		return rules.Move{}, fmt.Errorf("promotion to %v: %w", promotion, ErrIllegalMove)
	}
	return candidates[i], nil
}

// ParseCoordinates splits "e2e4" / "e7e8q" into squares and a promotion kind.
func ParseCoordinates(s string) (from, to rules.Square, promo rules.PieceKind, err error) {
	if len(s) != 4 && len(s) != 5 {
		return rules.NoSquare, rules.NoSquare, rules.NoPieceKind, fmt.Errorf("move %q: %w", s, ErrIllegalMove)
	}
	if from, err = rules.ParseSquare(s[0:2]); err != nil {
		return rules.NoSquare, rules.NoSquare, rules.NoPieceKind, err
	}
	if to, err = rules.ParseSquare(s[2:4]); err != nil {
		return rules.NoSquare, rules.NoSquare, rules.NoPieceKind, err
	}
	if len(s) == 5 {
		if promo, err = rules.PromotionKind(rune(s[4])); err != nil {
			return rules.NoSquare, rules.NoSquare, rules.NoPieceKind, err
		}
	}
	return from, to, promo, nil
}
