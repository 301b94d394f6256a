package rules

import "fmt"

// MakeMove applies a legal move to the position: it removes the captured
// piece, relocates (or promotes) the mover, brings the rook across for a
// castle and records the skipped square when a pawn double steps. The side to
// move is left unchanged; call NextTurn to hand over the move.
// It returns the piece that now stands on the landing square.
func (p *Position) MakeMove(m Move) Piece {
	if _, ok := p.PieceAt(m.Capture); ok {
		p.RemovePiece(m.Capture)
	}
	mover := p.RemovePiece(m.From)
	if mover.IsNone() {
		panic(fmt.Sprintf("MakeMove: no piece on %v for %v", m.From, m))
	}
	if m.IsPromotion() {
		mover.Kind = m.Promotion
	}
	p.PutPiece(mover, m.To)

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(m)
		if rook := p.RemovePiece(rookFrom); !rook.IsNone() {
			p.PutPiece(rook, rookTo)
		}
	}
	if m.CreatesEnPassant() {
		skipped, _ := m.From.Step(m.Dir)
		p.SetEnPassant(mover.Color, skipped)
	}
	return mover
}

// NextTurn passes the move to the other side and clears that side's own en
// passant target, which was only capturable during the ply just played.
func (p *Position) NextTurn() {
	p.FlipSide()
	p.ClearEnPassant(p.sideToMove)
}

// castleRookSquares returns the rook's corner and its square next to the king.
func castleRookSquares(m Move) (from, to Square) {
	row := m.From.Row()
	if m.Dir == West {
		return NewSquare(row, 0), NewSquare(row, 3)
	}
	return NewSquare(row, 7), NewSquare(row, 5)
}
