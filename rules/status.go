package rules

// Outcome is the state of a game as seen from a position.
type Outcome uint8

const (
	Ongoing Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "White wins"
	case BlackWins:
		return "Black wins"
	case Draw:
		return "Draw"
	}
	return "Ongoing"
}

// Over reports whether the game has ended.
func (o Outcome) Over() bool { return o != Ongoing }

// Winner returns the winning color. ok is false for a draw or an ongoing game.
func (o Outcome) Winner() (c Color, ok bool) {
	switch o {
	case WhiteWins:
		return White, true
	case BlackWins:
		return Black, true
	}
	return White, false
}

func winFor(c Color) Outcome {
	if c == White {
		return WhiteWins
	}
	return BlackWins
}

// Status reports whether the side to move has run out of legal moves and, if
// so, whether that is a loss (the opponent's attack map holds its king) or a draw.
func Status(p *Position) Outcome {
	if HasLegalMoves(p) {
		return Ongoing
	}
	opponent := p.sideToMove.Other()
	if Attacks(p, opponent).InCheck() {
		return winFor(opponent)
	}
	return Draw
}
