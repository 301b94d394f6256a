package rules

import "sync"

// moveTable lists, for every origin square, the geometrically reachable moves
// in direction groups. Tables carry no board context and are never modified
// after being built.
type moveTable [64][]Move

type tableSlot struct {
	once  sync.Once
	table moveTable
}

// One slot per (kind, color). Kinds whose moves do not depend on color only use the White slot.
var tables [King + 1][2]tableSlot

var (
	queenDirections  = []Direction{North, East, South, West, NorthEast, SouthEast, SouthWest, NorthWest}
	rookDirections   = []Direction{North, East, South, West}
	bishopDirections = []Direction{NorthEast, SouthEast, SouthWest, NorthWest}
	knightDirections = []Direction{
		NorthNorthEast, EastNorthEast, EastSouthEast, SouthSouthEast,
		NorthNorthWest, WestNorthWest, WestSouthWest, SouthSouthWest,
	}
	kingDirections = queenDirections
	pawnDirections = [2][]Direction{
		White: {North, NorthEast, NorthWest},
		Black: {South, SouthEast, SouthWest},
	}
	promotionKinds = []PieceKind{Queen, Rook, Bishop, Knight}
)

// Pawn geometry per color.
type pawnRanks struct {
	forward   Direction
	doubleRow int // row of the first step that allows a second one
	epRow     int // origin row from which en passant captures exist
	lastRow   int
	behind    Square // offset from an en passant landing square to the captured pawn
}

var pawnGeometry = [2]pawnRanks{
	White: {forward: North, doubleRow: 2, epRow: 4, lastRow: 7, behind: -8},
	Black: {forward: South, doubleRow: 5, epRow: 3, lastRow: 0, behind: 8},
}

// TableMoves returns the table moves of pc from sq. The slice is shared and must not be modified.
func TableMoves(pc Piece, from Square) []Move {
	if pc.IsNone() || !from.Valid() {
		return nil
	}
	return tableFor(pc.Kind, pc.Color)[from]
}

func tableFor(kind PieceKind, c Color) *moveTable {
	if kind != Pawn && kind != King {
		c = White
	}
	slot := &tables[kind][c]
	slot.once.Do(func() { slot.table = buildTable(kind, c) })
	return &slot.table
}

func buildTable(kind PieceKind, c Color) moveTable {
	switch kind {
	case Queen:
		return buildRayTable(queenDirections, true)
	case Rook:
		return buildRayTable(rookDirections, true)
	case Bishop:
		return buildRayTable(bishopDirections, true)
	case Knight:
		return buildRayTable(knightDirections, false)
	case King:
		return buildKingTable(c)
	case Pawn:
		return buildPawnTable(c)
	}
	panic("buildTable: unknown piece kind")
}

// buildRayTable emits one move per reachable square along each direction,
// stopping at the edge (sliders) or after the first step.
func buildRayTable(dirs []Direction, slide bool) (t moveTable) {
	for from := Square(0); from < 64; from++ {
		for _, d := range dirs {
			to := from
			for {
				next, ok := to.Step(d)
				if !ok {
					break
				}
				to = next
				t[from] = append(t[from], Move{Flags: FlagEither, Dir: d, From: from, To: to, Capture: to})
				if !slide {
					break
				}
			}
		}
	}
	return t
}

func buildKingTable(c Color) (t moveTable) {
	home := E1
	if c == Black {
		home = E8
	}
	for from := Square(0); from < 64; from++ {
		for _, d := range kingDirections {
			to, ok := from.Step(d)
			if !ok {
				continue
			}
			t[from] = append(t[from], Move{Flags: FlagEither, Dir: d, From: from, To: to, Capture: to})
			if from != home || (d != East && d != West) {
				continue
			}
			// Castling never captures and shares the direction group of the first step.
			if to2, ok := to.Step(d); ok {
				t[from] = append(t[from], Move{Flags: FlagSimple | FlagCastle, Dir: d, From: from, To: to2, Capture: to2})
			}
		}
	}
	return t
}

func buildPawnTable(c Color) (t moveTable) {
	g := pawnGeometry[c]
	for from := Square(0); from < 64; from++ {
		for _, d := range pawnDirections[c] {
			to, ok := from.Step(d)
			if !ok {
				continue
			}
			flags := FlagCapture
			if d == g.forward {
				flags = FlagSimple
			}
			t[from] = appendPawnMove(t[from], Move{Flags: flags, Dir: d, From: from, To: to, Capture: to}, g.lastRow)

			if d != g.forward && from.Row() == g.epRow {
				t[from] = append(t[from], Move{
					Flags:   FlagCapture | FlagRequiresEnPassant,
					Dir:     d,
					From:    from,
					To:      to,
					Capture: to + g.behind,
				})
			}
			if d == g.forward && to.Row() == g.doubleRow {
				if to2, ok := to.Step(d); ok {
					t[from] = append(t[from], Move{Flags: FlagSimple | FlagCreatesEnPassant, Dir: d, From: from, To: to2, Capture: to2})
				}
			}
		}
	}
	return t
}

// appendPawnMove adds m, or its four promotion variants when it reaches the last row.
func appendPawnMove(list []Move, m Move, lastRow int) []Move {
	if m.To.Row() != lastRow {
		return append(list, m)
	}
	for _, k := range promotionKinds {
		p := m
		p.Flags |= FlagPromotion
		p.Promotion = k
		list = append(list, p)
	}
	return list
}
