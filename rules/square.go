package rules

import (
	"errors"
	"strings"
)

// Square represents a board position (0-63). Row = index/8 (row 0 is rank 1),
// column = index%8 (column 0 is file A).
type Square int

const NoSquare Square = -1

// Named squares, A1 = 0 through H8 = 63.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// ErrBadSquare is returned by ParseSquare for anything that is not a file letter followed by a rank digit.
var ErrBadSquare = errors.New("invalid square name")

// NewSquare builds a square from a row and a column.
func NewSquare(row, col int) Square { return Square(row*8 + col) }

// Row returns the 0-based rank index.
func (s Square) Row() int { return int(s) >> 3 }

// Col returns the 0-based file index.
func (s Square) Col() int { return int(s) & 7 }

// Valid reports whether s is on the board.
func (s Square) Valid() bool { return s >= 0 && s < 64 }

// Rotate returns the square seen from the other side of the board (180° rotation).
func (s Square) Rotate() Square { return 63 - s }

// String returns the square name, e.g. "E4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'A' + byte(s.Col()), '1' + byte(s.Row())})
}

// ParseSquare converts a name like "E4" (either case) into a Square.
func ParseSquare(name string) (Square, error) {
	name = strings.TrimSpace(name)
	if len(name) != 2 {
		return NoSquare, ErrBadSquare
	}
	file := name[0] | 0x20 // lower-case
	rank := name[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, ErrBadSquare
	}
	return NewSquare(int(rank-'1'), int(file-'a')), nil
}

// Direction is one of the eight ray directions or one of the eight knight jumps.
type Direction uint8

const (
	NoDirection Direction = iota
	North
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
	NorthNorthEast
	EastNorthEast
	EastSouthEast
	SouthSouthEast
	SouthSouthWest
	WestSouthWest
	WestNorthWest
	NorthNorthWest
)

// row/column deltas indexed by Direction
var directionDeltas = [...][2]int{
	NoDirection:    {0, 0},
	North:          {1, 0},
	East:           {0, 1},
	South:          {-1, 0},
	West:           {0, -1},
	NorthEast:      {1, 1},
	SouthEast:      {-1, 1},
	SouthWest:      {-1, -1},
	NorthWest:      {1, -1},
	NorthNorthEast: {2, 1},
	EastNorthEast:  {1, 2},
	EastSouthEast:  {-1, 2},
	SouthSouthEast: {-2, 1},
	SouthSouthWest: {-2, -1},
	WestSouthWest:  {-1, -2},
	WestNorthWest:  {1, -2},
	NorthNorthWest: {2, -1},
}

var directionNames = [...]string{
	"-", "N", "E", "S", "W", "NE", "SE", "SW", "NW",
	"NNE", "ENE", "ESE", "SSE", "SSW", "WSW", "WNW", "NNW",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "?"
}

// Delta returns the (row, column) offset of one step.
func (d Direction) Delta() (dr, dc int) {
	v := directionDeltas[d]
	return v[0], v[1]
}

// Opposite returns the direction rotated by 180°.
func (d Direction) Opposite() Direction {
	dr, dc := d.Delta()
	for o := range directionDeltas {
		if directionDeltas[o][0] == -dr && directionDeltas[o][1] == -dc {
			return Direction(o)
		}
	}
	return NoDirection
}

// Step moves one step from s along d. ok is false when the step leaves the board.
func (s Square) Step(d Direction) (Square, bool) {
	dr, dc := d.Delta()
	row, col := s.Row()+dr, s.Col()+dc
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return NoSquare, false
	}
	return NewSquare(row, col), true
}
