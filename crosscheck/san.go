package crosscheck

import (
	"fmt"

	"github.com/notnil/chess"

	"chess-minimax/rules"
)

// SAN replays moves from the start position on a github.com/notnil/chess game
// and returns them in standard algebraic notation. It fails at the first move
// the library refuses, such as a queenside castle past an occupied B square.
func SAN(moves []rules.Move) ([]string, error) {
	record := chess.NewGame()
	out := make([]string, 0, len(moves))
	for i, m := range moves {
		pos := record.Position()
		mv, err := chess.UCINotation{}.Decode(pos, m.String())
		if err != nil {
			return out, fmt.Errorf("san ply %d (%v): %w", i+1, m, err)
		}
		san := chess.AlgebraicNotation{}.Encode(pos, mv)
		if err := record.Move(mv); err != nil {
			return out, fmt.Errorf("san ply %d (%v): %w", i+1, m, err)
		}
		out = append(out, san)
	}
	return out, nil
}
