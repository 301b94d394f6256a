package game

import (
	"errors"
	"math/rand"
	"testing"

	"chess-minimax/engine"
	"chess-minimax/rules"
)

func mustSquare(t *testing.T, name string) rules.Square {
	t.Helper()
	sq, err := rules.ParseSquare(name)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", name, err)
	}
	return sq
}

func playAll(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if _, err := g.PlayCoordinates(m); err != nil {
			t.Fatalf("%s: %v", m, err)
		}
	}
}

func TestNewGameDefaults(t *testing.T) {
	g := New()
	if g.SideToMove() != rules.White || g.Outcome() != rules.Ongoing {
		t.Fatalf("new game should be ongoing with White to move")
	}
	if g.Depth() != engine.DefaultDepth || g.Players() != Humans {
		t.Fatalf("unexpected defaults depth=%d players=%v", g.Depth(), g.Players())
	}
	if g.ComputerToMove() {
		t.Fatalf("no computer players by default")
	}
	if g2 := New(WithDepth(99)); g2.Depth() != engine.MaxDepth {
		t.Fatalf("depth must be clamped, got %d", g2.Depth())
	}
}

func TestMovesErrors(t *testing.T) {
	g := New()
	if _, err := g.Moves(mustSquare(t, "E4")); !errors.Is(err, ErrEmptySquare) {
		t.Fatalf("empty square: got %v", err)
	}
	if _, err := g.Moves(mustSquare(t, "E7")); !errors.Is(err, ErrNotYourPiece) {
		t.Fatalf("black pawn on White's turn: got %v", err)
	}
	if set, err := g.Moves(mustSquare(t, "A1")); !errors.Is(err, ErrNoMoves) || set.Count() != 0 {
		t.Fatalf("boxed-in rook: %d moves, err %v", set.Count(), err)
	}
	set, err := g.Moves(mustSquare(t, "B1"))
	if err != nil || set.Count() != 2 {
		t.Fatalf("knight on B1: %v moves, err %v", set.Count(), err)
	}
}

func TestPlayAndHistory(t *testing.T) {
	g := New()
	if _, err := g.Play(mustSquare(t, "E2"), mustSquare(t, "E5"), rules.NoPieceKind); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("e2e5 should be illegal, got %v", err)
	}
	m, err := g.Play(mustSquare(t, "E2"), mustSquare(t, "E4"), rules.NoPieceKind)
	if err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	if !m.CreatesEnPassant() {
		t.Fatalf("double step expected, got %+v", m)
	}
	if g.SideToMove() != rules.Black {
		t.Fatalf("turn should pass to Black")
	}
	pos := g.Position()
	if pos.EnPassant(rules.White) != mustSquare(t, "E3") {
		t.Fatalf("en passant target not recorded")
	}
	h := g.History()
	if len(h) != 1 || h[0] != m {
		t.Fatalf("history %v", h)
	}
	h[0] = rules.Move{}
	if g.History()[0] != m {
		t.Fatalf("History must return a copy")
	}
}

// pawnOnG7 leaves White's pawn on G7 with G8 empty and pieces on F8 and H8.
func pawnOnG7(t *testing.T) *Game {
	t.Helper()
	g := New()
	playAll(t, g, "h2h4", "g8f6", "h4h5", "g7g6", "h5g6", "a7a6", "g6g7", "a6a5")
	return g
}

func TestPromotionChoice(t *testing.T) {
	g := pawnOnG7(t)
	from, to := mustSquare(t, "G7"), mustSquare(t, "G8")
	if _, err := g.Play(from, to, rules.NoPieceKind); !errors.Is(err, ErrPromotionRequired) {
		t.Fatalf("expected ErrPromotionRequired, got %v", err)
	}
	if _, err := g.Play(from, to, rules.King); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("promotion to king must be rejected, got %v", err)
	}
	m, err := g.Play(from, to, rules.Knight)
	if err != nil {
		t.Fatalf("g7g8n: %v", err)
	}
	if m.Promotion != rules.Knight || !m.IsPromotion() {
		t.Fatalf("unexpected move %+v", m)
	}
	pos := g.Position()
	if pc, _ := pos.PieceAt(to); pc != (rules.Piece{Kind: rules.Knight, Color: rules.White}) {
		t.Fatalf("G8 holds %v", pc)
	}
}

func TestFoolsMateEndsGame(t *testing.T) {
	g := New(WithComputer(ComputerBlack), WithRandSource(rand.NewSource(1)))
	playAll(t, g, "f2f3")
	// Black is computer controlled but humans may still enter its moves.
	playAll(t, g, "e7e5", "g2g4", "d8h4")
	if g.Outcome() != rules.BlackWins {
		t.Fatalf("expected Black to win, got %v", g.Outcome())
	}
	if _, err := g.Moves(mustSquare(t, "E1")); !errors.Is(err, ErrGameOver) {
		t.Fatalf("Moves after mate: %v", err)
	}
	if _, err := g.ComputerMove(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("ComputerMove after mate: %v", err)
	}
	if g.ComputerToMove() {
		t.Fatalf("nobody moves after the game is over")
	}
	if h := g.History(); len(h) != 4 || h[3].String() != "d8h4" {
		t.Fatalf("history %v", h)
	}
}

func TestComputerMoves(t *testing.T) {
	g := New(WithComputer(ComputerWhite), WithDepth(1), WithRandSource(rand.NewSource(9)))
	if !g.ComputerToMove() {
		t.Fatalf("White is computer controlled")
	}
	r, err := g.ComputerMove()
	if err != nil {
		t.Fatalf("ComputerMove: %v", err)
	}
	if r.Leaves != 20 {
		t.Fatalf("depth 1 from the start visits 20 leaves, got %d", r.Leaves)
	}
	if g.History()[0] != r.Move || g.SideToMove() != rules.Black {
		t.Fatalf("computer move not applied")
	}
	if _, err := g.ComputerMove(); !errors.Is(err, ErrNotComputerTurn) {
		t.Fatalf("Black is human, got %v", err)
	}
}

func TestSelfPlayIsReproducible(t *testing.T) {
	run := func() []rules.Move {
		g := New(WithComputer(ComputerBoth), WithDepth(1), WithRandSource(rand.NewSource(77)))
		for i := 0; i < 12 && g.ComputerToMove(); i++ {
			if _, err := g.ComputerMove(); err != nil {
				t.Fatalf("ply %d: %v", i, err)
			}
		}
		return g.History()
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("different game lengths %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("ply %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestParsePlayers(t *testing.T) {
	for in, want := range map[string]Players{"none": Humans, "White": ComputerWhite, "black": ComputerBlack, "BOTH": ComputerBoth, "": Humans} {
		got, err := ParsePlayers(in)
		if err != nil || got != want {
			t.Errorf("ParsePlayers(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePlayers("red"); !errors.Is(err, ErrBadPlayers) {
		t.Fatalf("expected ErrBadPlayers, got %v", err)
	}
	if !ComputerBoth.Controls(rules.Black) || ComputerWhite.Controls(rules.Black) {
		t.Fatalf("Controls mismatch")
	}
}

func TestParseCoordinates(t *testing.T) {
	from, to, promo, err := ParseCoordinates("e7e8q")
	if err != nil || from.String() != "E7" || to.String() != "E8" || promo != rules.Queen {
		t.Fatalf("got %v %v %v %v", from, to, promo, err)
	}
	for _, bad := range []string{"e2", "e2e9", "z2e4", "e7e8k", "e2e4e5"} {
		if _, _, _, err := ParseCoordinates(bad); err == nil {
			t.Errorf("%q should not parse", bad)
		}
	}
}

func TestCapturePromotionNeedsNoChoice(t *testing.T) {
	g := pawnOnG7(t)
	if _, err := g.PlayCoordinates("g7h8r"); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("capturing under-promotion: %v", err)
	}
	m, err := g.PlayCoordinates("g7h8")
	if err != nil || m.Promotion != rules.Queen {
		t.Fatalf("capture promotion: %v, %v", m, err)
	}
}

func TestCastlingThroughController(t *testing.T) {
	g := New()
	playAll(t, g, "g1f3", "g8f6", "e2e3", "e7e6", "f1e2", "f8e7", "e1g1")
	pos := g.Position()
	if pc, _ := pos.PieceAt(mustSquare(t, "F1")); pc != (rules.Piece{Kind: rules.Rook, Color: rules.White}) {
		t.Fatalf("rook should be on F1 after castling, got %v", pc)
	}
	if pc, _ := pos.PieceAt(mustSquare(t, "G1")); pc != (rules.Piece{Kind: rules.King, Color: rules.White}) {
		t.Fatalf("king should be on G1 after castling, got %v", pc)
	}
	if last := g.History()[len(g.History())-1]; !last.IsCastle() {
		t.Fatalf("e1g1 should be recorded as a castle, got %+v", last)
	}
}
