package rules

import (
	"sort"
	"sync"
	"testing"
)

type tableEntry struct {
	flags     MoveFlags
	to        Square
	capture   Square
	promotion PieceKind
}

func entries(moves []Move, transform func(Square) Square, skipCastle bool) []tableEntry {
	var out []tableEntry
	for _, m := range moves {
		if skipCastle && m.IsCastle() {
			continue
		}
		out = append(out, tableEntry{m.Flags, transform(m.To), transform(m.Capture), m.Promotion})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.to != b.to {
			return a.to < b.to
		}
		if a.flags != b.flags {
			return a.flags < b.flags
		}
		return a.promotion < b.promotion
	})
	return out
}

func sameEntries(a, b []tableEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTablesRotateBetweenColors(t *testing.T) {
	identity := func(s Square) Square { return s }
	for kind := Pawn; kind <= King; kind++ {
		for from := Square(0); from < 64; from++ {
			white := entries(TableMoves(Piece{kind, White}, from), Square.Rotate, true)
			black := entries(TableMoves(Piece{kind, Black}, from.Rotate()), identity, true)
			if !sameEntries(white, black) {
				t.Fatalf("%v on %v does not mirror Black on %v:\n%v\n%v", kind, from, from.Rotate(), white, black)
			}
		}
	}
}

func TestTableGroupsByDirection(t *testing.T) {
	// Moves of one direction are contiguous so the blocked-direction marker works.
	for kind := Pawn; kind <= King; kind++ {
		for c := White; c <= Black; c++ {
			for from := Square(0); from < 64; from++ {
				seen := map[Direction]bool{}
				last := NoDirection
				for _, m := range TableMoves(Piece{kind, c}, from) {
					if m.Dir != last {
						if seen[m.Dir] {
							t.Fatalf("%v %v from %v: direction %v split into two groups", c, kind, from, m.Dir)
						}
						seen[m.Dir] = true
						last = m.Dir
					}
					if m.From != from || !m.To.Valid() || !m.Capture.Valid() {
						t.Fatalf("%v %v from %v: malformed move %+v", c, kind, from, m)
					}
				}
			}
		}
	}
}

func TestTableMoveCounts(t *testing.T) {
	cases := []struct {
		piece Piece
		from  string
		want  int
	}{
		{Piece{Rook, White}, "A1", 14},
		{Piece{Rook, Black}, "D4", 14},
		{Piece{Bishop, White}, "D4", 13},
		{Piece{Bishop, White}, "A1", 7},
		{Piece{Queen, White}, "D4", 27},
		{Piece{Knight, White}, "A1", 2},
		{Piece{Knight, White}, "D4", 8},
		{Piece{King, White}, "D4", 8},
		{Piece{King, White}, "E1", 7}, // five steps and two castles
		{Piece{King, Black}, "E1", 5},
		{Piece{King, Black}, "E8", 7},
		{Piece{Pawn, White}, "E2", 4}, // single, double and two diagonals
		{Piece{Pawn, White}, "A2", 3},
		{Piece{Pawn, White}, "E5", 5}, // single, two diagonals and two en passant twins
		{Piece{Pawn, White}, "E7", 12},
		{Piece{Pawn, Black}, "E7", 4},
		{Piece{Pawn, Black}, "E2", 12},
	}
	for _, tc := range cases {
		if got := len(TableMoves(tc.piece, sq(t, tc.from))); got != tc.want {
			t.Errorf("%v on %s: %d table moves, want %d", tc.piece, tc.from, got, tc.want)
		}
	}
}

func TestPawnTableFlags(t *testing.T) {
	moves := TableMoves(Piece{Pawn, White}, sq(t, "E5"))
	var ep []Move
	for _, m := range moves {
		if m.IsEnPassant() {
			ep = append(ep, m)
		}
	}
	if len(ep) != 2 {
		t.Fatalf("expected 2 en passant moves from E5, got %d", len(ep))
	}
	for _, m := range ep {
		if m.Capture.Row() != 4 || m.Capture.Col() != m.To.Col() || m.To.Row() != 5 {
			t.Fatalf("en passant %v captures on %v", m, m.Capture)
		}
		if !m.Flags.Has(FlagCapture) || m.Flags.Has(FlagSimple) {
			t.Fatalf("en passant %v has flags %b", m, m.Flags)
		}
	}

	var promos []PieceKind
	for _, m := range TableMoves(Piece{Pawn, Black}, sq(t, "D2")) {
		if m.To == sq(t, "C1") {
			if !m.IsPromotion() || !m.Flags.Has(FlagCapture) {
				t.Fatalf("capture into the last row must promote: %+v", m)
			}
			promos = append(promos, m.Promotion)
		}
	}
	want := []PieceKind{Queen, Rook, Bishop, Knight}
	if len(promos) != len(want) {
		t.Fatalf("capture promotions %v, want %v", promos, want)
	}
	for i := range want {
		if promos[i] != want[i] {
			t.Fatalf("capture promotions %v, want %v", promos, want)
		}
	}

	for _, m := range TableMoves(Piece{Pawn, White}, sq(t, "B2")) {
		if m.To == sq(t, "B4") && !m.CreatesEnPassant() {
			t.Fatalf("double step must create en passant")
		}
		if m.To == sq(t, "B3") && m.CreatesEnPassant() {
			t.Fatalf("single step must not create en passant")
		}
	}
}

func TestTableMovesIgnoresBadInput(t *testing.T) {
	if TableMoves(NoPiece, E1) != nil {
		t.Fatalf("empty piece has no table moves")
	}
	if TableMoves(Piece{Queen, White}, NoSquare) != nil {
		t.Fatalf("invalid square has no table moves")
	}
}

func TestTablesBuildOnceConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	results := make([][]Move, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = TableMoves(Piece{Knight, Black}, sq(t, "G8"))
		}(i)
	}
	wg.Wait()
	for i := 1; i < len(results); i++ {
		if len(results[i]) != 3 || &results[i][0] != &results[0][0] {
			t.Fatalf("goroutine %d saw a different table", i)
		}
	}
}
