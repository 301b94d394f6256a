package rules

import "strings"

// MoveFlags is an independent bit-set describing what a table move may do.
type MoveFlags uint8

const (
	FlagSimple MoveFlags = 1 << iota // may land on an empty square
	FlagCapture                      // may capture on the capture square
	FlagCastle
	FlagRequiresEnPassant
	FlagCreatesEnPassant
	FlagPromotion

	FlagEither = FlagSimple | FlagCapture
)

// Has reports whether every bit of f is set.
func (m MoveFlags) Has(f MoveFlags) bool { return m&f == f }

// Move describes one candidate transition. Capture differs from To only for
// en passant. Promotion is NoPieceKind unless FlagPromotion is set.
type Move struct {
	Flags     MoveFlags
	Dir       Direction
	From      Square
	To        Square
	Capture   Square
	Promotion PieceKind
}

// IsCastle reports whether the move is the king's castling step.
func (m Move) IsCastle() bool { return m.Flags.Has(FlagCastle) }

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool { return m.Flags.Has(FlagRequiresEnPassant) }

// CreatesEnPassant reports whether the move is a pawn double step.
func (m Move) CreatesEnPassant() bool { return m.Flags.Has(FlagCreatesEnPassant) }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.Flags.Has(FlagPromotion) }

// String produces coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	str := strings.ToLower(m.From.String() + m.To.String())
	if m.IsPromotion() {
		str += strings.ToLower(string(m.Promotion.Letter()))
	}
	return str
}
