package rules

import (
	"testing"
)

// diagram builds a position from eight rank strings, rank 8 first, using
// upper-case letters for White and lower-case for Black ('.' for empty).
// Castling rights start fully available; tests drop what they need.
func diagram(t testing.TB, side Color, rows ...string) Position {
	t.Helper()
	if len(rows) != 8 {
		t.Fatalf("diagram needs 8 rows, got %d", len(rows))
	}
	p := NewPosition()
	for i, row := range rows {
		if len(row) != 8 {
			t.Fatalf("row %d %q must have 8 squares", i, row)
		}
		for col := 0; col < 8; col++ {
			ch := row[col]
			if ch == '.' {
				continue
			}
			color := White
			if ch >= 'a' && ch <= 'z' {
				color = Black
				ch -= 0x20
			}
			kind := NoPieceKind
			for k := Pawn; k <= King; k++ {
				if k.Letter() == ch {
					kind = k
				}
			}
			if kind == NoPieceKind {
				t.Fatalf("unknown piece letter %q", row[col])
			}
			p.PutPiece(Piece{kind, color}, NewSquare(7-i, col))
		}
	}
	p.SetSideToMove(side)
	return p
}

func sq(t testing.TB, name string) Square {
	t.Helper()
	s, err := ParseSquare(name)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", name, err)
	}
	return s
}

// findMove looks up a legal move of the side to move by coordinate notation.
func findMove(p *Position, coord string) (Move, bool) {
	for _, m := range AllLegalMoves(p) {
		if m.String() == coord {
			return m, true
		}
	}
	return Move{}, false
}

// play applies a sequence of moves the way the game loop does.
func play(t testing.TB, p *Position, coords ...string) {
	t.Helper()
	for _, c := range coords {
		m, ok := findMove(p, c)
		if !ok {
			t.Fatalf("move %s is not legal for %v", c, p.SideToMove())
		}
		p.MakeMove(m)
		p.NextTurn()
	}
}

func hasMove(p *Position, coord string) bool {
	_, ok := findMove(p, coord)
	return ok
}
