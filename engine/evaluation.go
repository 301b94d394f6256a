package engine

import (
	"fmt"
	"io"

	"chess-minimax/rules"
)

// Weights of the two evaluation terms.
const (
	MaterialWeight = 3
	ControlBonus   = 8
)

// EvalBreakdown holds the per-color terms of a static evaluation, indexed by
// rules.Color. Mover is the side the score is computed for.
type EvalBreakdown struct {
	Mover    rules.Color
	Material [2]int
	Control  [2]int
}

// Total returns the score from the mover's perspective.
func (e EvalBreakdown) Total() int {
	me, them := e.Mover, e.Mover.Other()
	return e.Material[me] + e.Control[me] - e.Material[them] - e.Control[them]
}

// Print writes the breakdown in the same layout the debug commands use.
func (e EvalBreakdown) Print(w io.Writer) {
	fmt.Fprintf(w, "%-10s %8s %8s\n", "", "White", "Black")
	fmt.Fprintf(w, "%-10s %8d %8d\n", "material", e.Material[rules.White], e.Material[rules.Black])
	fmt.Fprintf(w, "%-10s %8d %8d\n", "control", e.Control[rules.White], e.Control[rules.Black])
	fmt.Fprintf(w, "total for %v: %d\n", e.Mover, e.Total())
}

// Evaluate scores the position for the side to move: material counts three
// times the piece value and every controlled square is worth a bonus plus
// the value of whatever stands on it. The side to move's own king is never
// counted as a controlled occupant, by either color.
func Evaluate(p *rules.Position) int {
	return Breakdown(p).Total()
}

// Breakdown computes the terms Evaluate sums.
func Breakdown(p *rules.Position) EvalBreakdown {
	me := p.SideToMove()
	exempt := rules.Piece{Kind: rules.King, Color: me}
	e := EvalBreakdown{Mover: me}
	for _, c := range []rules.Color{rules.White, rules.Black} {
		e.Material[c], e.Control[c] = colorTerms(p, c, exempt)
	}
	return e
}

func colorTerms(p *rules.Position, c rules.Color, exempt rules.Piece) (material, control int) {
	attacked := rules.Attacks(p, c)
	for sq := rules.Square(0); sq < 64; sq++ {
		pc, occupied := p.PieceAt(sq)
		if occupied && pc.Color == c {
			material += MaterialWeight * pc.Value()
		}
		if !attacked.Has(sq) {
			continue
		}
		control += ControlBonus
		if occupied && pc != exempt {
			control += pc.Value()
		}
	}
	return material, control
}
