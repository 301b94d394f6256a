package rules

// MoveSet is the result of the legality filter for one origin square.
type MoveSet struct {
	From Square
	// Moves keeps table order.
	Moves []Move
	// Targets has a bit for every landing square in Moves.
	Targets Bitboard
}

// Count returns the number of legal moves.
func (s MoveSet) Count() int { return len(s.Moves) }

// To returns the moves landing on sq (several for a promotion).
func (s MoveSet) To(sq Square) []Move {
	var out []Move
	for _, m := range s.Moves {
		if m.To == sq {
			out = append(out, m)
		}
	}
	return out
}

// Find returns the move landing on to with the given promotion kind
// (NoPieceKind for ordinary moves).
func (s MoveSet) Find(to Square, promotion PieceKind) (Move, bool) {
	for _, m := range s.Moves {
		if m.To == to && m.Promotion == promotion {
			return m, true
		}
	}
	return Move{}, false
}

// LegalMoves filters the pseudo-legal moves of the piece on from, keeping the
// ones that do not leave its own king attacked. Castles must also not start
// from, cross or land on an attacked square. An empty square yields an empty
// set; whose turn it is is left to the caller.
func LegalMoves(p *Position, from Square) MoveSet {
	set := MoveSet{From: from}
	forEachPseudoLegal(p, from, func(m Move) {
		if !keepsKingSafe(p, m) {
			return
		}
		set.Moves = append(set.Moves, m)
		set.Targets |= bb(m.To)
	})
	return set
}

// AllLegalMoves returns every legal move of the side to move, origins in A1..H8 order.
func AllLegalMoves(p *Position) []Move {
	moves := make([]Move, 0, 64)
	occ := p.occupancy[p.sideToMove]
	for occ != 0 {
		moves = append(moves, LegalMoves(p, occ.popLSB()).Moves...)
	}
	return moves
}

// HasLegalMoves reports whether the side to move has any legal move.
func HasLegalMoves(p *Position) bool {
	occ := p.occupancy[p.sideToMove]
	for occ != 0 {
		if LegalMoves(p, occ.popLSB()).Count() > 0 {
			return true
		}
	}
	return false
}

// keepsKingSafe plays m on a scratch copy (no rook relocation, no en passant
// bookkeeping) and checks the opponent's reply attacks.
func keepsKingSafe(p *Position, m Move) bool {
	sim := *p
	if _, ok := sim.PieceAt(m.Capture); ok {
		sim.RemovePiece(m.Capture)
	}
	mover := sim.RemovePiece(m.From)
	if m.IsPromotion() {
		mover.Kind = m.Promotion
	}
	sim.PutPiece(mover, m.To)
	sim.FlipSide()

	threats := Attacks(&sim, sim.sideToMove)
	if threats.InCheck() {
		return false
	}
	if m.IsCastle() && threats.Squares&castleKingPath(m) != 0 {
		return false
	}
	return true
}

// castleKingPath covers the king's origin, the square it crosses and its landing square.
func castleKingPath(m Move) Bitboard {
	crossed, _ := m.From.Step(m.Dir)
	return BitboardOf(m.From, crossed, m.To)
}
