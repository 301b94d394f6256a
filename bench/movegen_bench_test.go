package bench

import (
	"strings"
	"testing"

	"chess-minimax/crosscheck"
	"chess-minimax/game"
	"chess-minimax/rules"
)

// Two Knights Defense after 4.Ng5: both sides developed, castling still open.
const twoKnights = "e2e4 e7e5 g1f3 b8c6 f1c4 g8f6 f3g5"

func positionAfter(b *testing.B, moves string) rules.Position {
	b.Helper()
	g := game.New()
	for _, m := range strings.Fields(moves) {
		if _, err := g.PlayCoordinates(m); err != nil {
			b.Fatalf("%s: %v", m, err)
		}
	}
	return g.Position()
}

func benchLegalMoves(b *testing.B, moves string) {
	p := positionAfter(b, moves)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rules.AllLegalMoves(&p)
	}
}

func BenchmarkLegalMoves_Initial(b *testing.B) {
	benchLegalMoves(b, "")
}

func BenchmarkLegalMoves_TwoKnights(b *testing.B) {
	benchLegalMoves(b, twoKnights)
}

func BenchmarkPseudoLegal_TwoKnights(b *testing.B) {
	p := positionAfter(b, twoKnights)
	own := p.Occupancy(p.SideToMove()).Squares()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, sq := range own {
			_ = rules.PseudoLegalMoves(&p, sq)
		}
	}
}

func BenchmarkAttacks_TwoKnights(b *testing.B) {
	p := positionAfter(b, twoKnights)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rules.Attacks(&p, rules.White)
		_ = rules.Attacks(&p, rules.Black)
	}
}

func BenchmarkMakeMove_AllMoves_Initial(b *testing.B) {
	p := positionAfter(b, "")
	moves := rules.AllLegalMoves(&p)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			child := p
			child.MakeMove(m)
			child.NextTurn()
		}
	}
}

// Reference generator on the same position, for scale.
func BenchmarkOracleMoves_TwoKnights(b *testing.B) {
	p := positionAfter(b, twoKnights)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = crosscheck.Oracle(&p)
	}
}
