package rules

import (
	"errors"
	"unicode"
)

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing color.
func (c Color) Other() Color { return 1 - c }

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// PieceKind is a colorless piece type. The zero value means "none" and is used
// for moves that do not promote.
type PieceKind uint8

const (
	NoPieceKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// pieceValues holds the relative material value of each kind. The king value is a sentinel.
var pieceValues = [...]int{
	NoPieceKind: 0,
	Pawn:        1,
	Knight:      3,
	Bishop:      3,
	Rook:        5,
	Queen:       9,
	King:        200,
}

var pieceLetters = [...]byte{'?', 'P', 'N', 'B', 'R', 'Q', 'K'}

// Value returns the material value of the kind.
func (k PieceKind) Value() int { return pieceValues[k] }

// Letter returns the upper-case letter of the kind (K Q R B N P).
func (k PieceKind) Letter() byte { return pieceLetters[k] }

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	}
	return "None"
}

// ErrBadPromotion is returned by PromotionKind for codes other than Q, R, B and N.
var ErrBadPromotion = errors.New("promotion code must be one of Q R B N")

// PromotionKind maps a single-character promotion code (Q/R/B/N, either case) to its kind.
func PromotionKind(code rune) (PieceKind, error) {
	switch unicode.ToUpper(code) {
	case 'Q':
		return Queen, nil
	case 'R':
		return Rook, nil
	case 'B':
		return Bishop, nil
	case 'N':
		return Knight, nil
	}
	return NoPieceKind, ErrBadPromotion
}

// Piece is a (kind, color) pair. The zero value is "no piece".
type Piece struct {
	Kind  PieceKind
	Color Color
}

// NoPiece is the empty-square value.
var NoPiece = Piece{}

// IsNone reports whether p is the empty value.
func (p Piece) IsNone() bool { return p.Kind == NoPieceKind }

// Value returns the material value of the piece.
func (p Piece) Value() int { return p.Kind.Value() }

// Letter returns the piece letter, upper-case for White and lower-case for Black.
func (p Piece) Letter() byte {
	if p.IsNone() {
		return '.'
	}
	l := p.Kind.Letter()
	if p.Color == Black {
		l |= 0x20
	}
	return l
}

func (p Piece) String() string {
	if p.IsNone() {
		return "none"
	}
	return p.Color.String() + " " + p.Kind.String()
}
