package rules

// Perft counts leaf nodes (move sequences) from the position for a given depth.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := AllLegalMoves(p)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		child := *p
		child.MakeMove(m)
		child.NextTurn()
		nodes += Perft(&child, depth-1)
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf nodes
// reachable from that move at the given depth. Useful for debugging.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range AllLegalMoves(p) {
		child := *p
		child.MakeMove(m)
		child.NextTurn()
		result[m] = Perft(&child, depth-1)
	}
	return result
}
