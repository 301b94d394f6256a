package rules

import "fmt"

// Castling rights bit flags
type CastlingRights uint8

const (
	CastleWhiteQueenside CastlingRights = 1 << iota
	CastleWhiteKingside
	CastleBlackQueenside
	CastleBlackKingside

	AllCastlingRights = CastleWhiteQueenside | CastleWhiteKingside | CastleBlackQueenside | CastleBlackKingside
)

// castleRight returns the flag guarding a castle of color c towards d (East = kingside, West = queenside).
func castleRight(c Color, d Direction) CastlingRights {
	if d == East {
		if c == White {
			return CastleWhiteKingside
		}
		return CastleBlackKingside
	}
	if c == White {
		return CastleWhiteQueenside
	}
	return CastleBlackQueenside
}

// Rights cleared when a piece leaves one of the home squares.
var vacatedRights = map[Square]CastlingRights{
	A1: CastleWhiteQueenside,
	E1: CastleWhiteQueenside | CastleWhiteKingside,
	H1: CastleWhiteKingside,
	A8: CastleBlackQueenside,
	E8: CastleBlackQueenside | CastleBlackKingside,
	H8: CastleBlackKingside,
}

// Position is the full board state. It holds no pointers or slices, so a plain
// assignment (child := *pos) is an independent deep copy.
type Position struct {
	// Piece placement for each square (NoPiece when empty)
	pieces [64]Piece

	// Squares held by each side, kept in sync with pieces
	occupancy [2]Bitboard

	sideToMove Color

	// Per-side en passant target: the square that side's pawn skipped on its
	// last double step, or NoSquare.
	enPassant [2]Square

	castling CastlingRights
}

// NewPosition returns an empty board with White to move, every castling right
// still available and no en passant targets.
func NewPosition() Position {
	return Position{
		sideToMove: White,
		enPassant:  [2]Square{NoSquare, NoSquare},
		castling:   AllCastlingRights,
	}
}

var backRank = [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StartPosition returns the standard initial setup with White to move.
func StartPosition() Position {
	p := NewPosition()
	for col, kind := range backRank {
		p.PutPiece(Piece{kind, White}, NewSquare(0, col))
		p.PutPiece(Piece{Pawn, White}, NewSquare(1, col))
		p.PutPiece(Piece{kind, Black}, NewSquare(7, col))
		p.PutPiece(Piece{Pawn, Black}, NewSquare(6, col))
	}
	return p
}

// PieceAt returns the piece on sq. ok is false for an empty square.
func (p *Position) PieceAt(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return NoPiece, false
	}
	pc := p.pieces[sq]
	return pc, !pc.IsNone()
}

// PutPiece places a piece on an empty square. Placing onto an occupied square
// is a programming error and panics.
func (p *Position) PutPiece(pc Piece, sq Square) {
	if pc.IsNone() {
		panic("PutPiece: no piece given")
	}
	if !sq.Valid() {
		panic(fmt.Sprintf("PutPiece: square %d off board", int(sq)))
	}
	if !p.pieces[sq].IsNone() {
		panic(fmt.Sprintf("PutPiece: %v already holds %v", sq, p.pieces[sq]))
	}
	p.pieces[sq] = pc
	p.occupancy[pc.Color] |= bb(sq)
}

// RemovePiece clears sq and returns whatever was there (NoPiece for an empty
// square). Vacating a king or rook home square drops the matching castling rights.
func (p *Position) RemovePiece(sq Square) Piece {
	pc, ok := p.PieceAt(sq)
	if ok {
		p.pieces[sq] = NoPiece
		p.occupancy[pc.Color] &^= bb(sq)
	}
	p.castling &^= vacatedRights[sq]
	return pc
}

// Occupancy returns the squares holding pieces of color c.
func (p *Position) Occupancy(c Color) Bitboard { return p.occupancy[c] }

// AllOccupancy returns every occupied square.
func (p *Position) AllOccupancy() Bitboard { return p.occupancy[White] | p.occupancy[Black] }

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color { return p.sideToMove }

// SetSideToMove updates the side to play. Normal play uses NextTurn.
func (p *Position) SetSideToMove(c Color) { p.sideToMove = c }

// FlipSide hands the move to the other side without touching en passant state.
func (p *Position) FlipSide() { p.sideToMove = p.sideToMove.Other() }

// EnPassant returns the en passant target recorded for color c, or NoSquare.
func (p *Position) EnPassant(c Color) Square { return p.enPassant[c] }

// SetEnPassant records sq as color c's en passant target.
func (p *Position) SetEnPassant(c Color, sq Square) { p.enPassant[c] = sq }

// ClearEnPassant drops color c's en passant target.
func (p *Position) ClearEnPassant(c Color) { p.enPassant[c] = NoSquare }

// CastlingRights returns the remaining rights.
func (p *Position) CastlingRights() CastlingRights { return p.castling }

// CanCastle reports whether color c still holds the right to castle towards d (East or West).
func (p *Position) CanCastle(c Color, d Direction) bool {
	return p.castling&castleRight(c, d) != 0
}

// DropCastlingRights clears the given rights. Rights can never be restored.
func (p *Position) DropCastlingRights(r CastlingRights) { p.castling &^= r }

// KingSquare returns the square of color c's king, or NoSquare.
func (p *Position) KingSquare(c Color) Square {
	occ := p.occupancy[c]
	for occ != 0 {
		sq := occ.popLSB()
		if p.pieces[sq].Kind == King {
			return sq
		}
	}
	return NoSquare
}

// Validate checks consistency between the placement array and the occupancy sets.
func (p *Position) Validate() bool {
	var occ [2]Bitboard
	for sq := Square(0); sq < 64; sq++ {
		pc := p.pieces[sq]
		if pc.IsNone() {
			continue
		}
		occ[pc.Color] |= bb(sq)
	}
	return occ == p.occupancy && occ[White]&occ[Black] == 0
}
