package rules

import "math/bits"

// Bitboard is a set of squares, bit i standing for Square(i).
type Bitboard uint64

// bb returns a bitboard with the given square bit set.
func bb(sq Square) Bitboard { return 1 << uint64(sq) }

// BitboardOf returns a bitboard holding the given squares.
func BitboardOf(squares ...Square) Bitboard {
	var b Bitboard
	for _, sq := range squares {
		b |= bb(sq)
	}
	return b
}

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool { return sq.Valid() && b&bb(sq) != 0 }

// Count returns the number of squares in the set.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// Squares lists the members in A1..H8 order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for b != 0 {
		out = append(out, b.popLSB())
	}
	return out
}

// popLSB removes and returns the least significant set square.
func (b *Bitboard) popLSB() Square {
	idx := bits.TrailingZeros64(uint64(*b))
	*b &= *b - 1
	return Square(idx)
}
