package rules

// blockMarker closes a direction once a move along it reaches an occupied
// square. Every later move in that direction is skipped, including the other
// promotion variants of a capture, so a capturing promotion only offers the
// queen.
type blockMarker struct {
	dir Direction
}

func (b *blockMarker) skip(m Move) bool { return m.Dir != NoDirection && m.Dir == b.dir }

func (b *blockMarker) close(m Move) { b.dir = m.Dir }

// PseudoLegalMoves returns the moves of the piece on from that respect its
// geometry and the current occupancy, ignoring the safety of its own king.
// An empty square yields no moves.
func PseudoLegalMoves(p *Position, from Square) []Move {
	var moves []Move
	forEachPseudoLegal(p, from, func(m Move) { moves = append(moves, m) })
	return moves
}

func forEachPseudoLegal(p *Position, from Square, visit func(Move)) {
	mover, ok := p.PieceAt(from)
	if !ok {
		return
	}
	var block blockMarker
	for _, m := range TableMoves(mover, from) {
		if block.skip(m) {
			continue
		}
		// Rejected castles and en passant captures leave the marker untouched.
		if m.IsCastle() && !p.castleAllowed(mover.Color, m) {
			continue
		}
		if m.IsEnPassant() && !p.enPassantAvailable(mover.Color, m) {
			continue
		}

		_, landingTaken := p.PieceAt(m.To)
		victim, victimFound := p.PieceAt(m.Capture)
		if (!landingTaken && m.Flags.Has(FlagSimple)) ||
			(victimFound && m.Flags.Has(FlagCapture) && victim.Color != mover.Color) {
			visit(m)
		}
		if landingTaken || victimFound {
			block.close(m)
		}
	}
}

// castleAllowed checks the right for the castle's wing. The squares the king
// crosses are covered by the direction marker; the B file square the rook
// passes on the queen side is never looked at.
func (p *Position) castleAllowed(c Color, m Move) bool {
	return p.CanCastle(c, m.Dir)
}

// enPassantAvailable reports whether the opponent pawn behind m's landing
// square made the double step that the opponent recorded as its target.
func (p *Position) enPassantAvailable(c Color, m Move) bool {
	victim, ok := p.PieceAt(m.Capture)
	if !ok || victim.Color == c || victim.Kind != Pawn {
		return false
	}
	if _, taken := p.PieceAt(m.To); taken {
		return false
	}
	return p.EnPassant(victim.Color) == m.To
}
