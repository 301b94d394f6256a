package rules

// AttackMap holds the squares one color attacks in one position and, when the
// opposing king stands on one of them, that king's square.
type AttackMap struct {
	Squares Bitboard
	Check   Square
}

// Has reports whether sq is attacked.
func (a AttackMap) Has(sq Square) bool { return a.Squares.Has(sq) }

// InCheck reports whether the opposing king is attacked.
func (a AttackMap) InCheck() bool { return a.Check != NoSquare }

// Attacks computes the attack map of color c. Only capture-capable moves
// count, sliders stop at (and include) the first occupied square, and en
// passant captures count only against a pawn whose recorded target matches.
func Attacks(p *Position, c Color) AttackMap {
	am := AttackMap{Check: NoSquare}
	occ := p.occupancy[c]
	for occ != 0 {
		from := occ.popLSB()
		attacker := p.pieces[from]
		var block blockMarker
		for _, m := range TableMoves(attacker, from) {
			if block.skip(m) || !m.Flags.Has(FlagCapture) {
				continue
			}
			victim, found := p.PieceAt(m.Capture)
			if m.IsEnPassant() {
				if found && victim.Kind == Pawn && victim.Color != c && p.EnPassant(victim.Color) == m.To {
					am.Squares |= bb(m.Capture)
				}
				continue
			}
			am.Squares |= bb(m.Capture)
			if !found {
				continue
			}
			if victim.Kind == King && victim.Color != c {
				am.Check = m.Capture
			}
			block.close(m)
		}
	}
	return am
}

// InCheck reports whether color c's king is attacked in p.
func InCheck(p *Position, c Color) bool {
	return Attacks(p, c.Other()).InCheck()
}
