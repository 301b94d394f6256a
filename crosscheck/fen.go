package crosscheck

import (
	"strconv"
	"strings"

	"chess-minimax/rules"
)

// fen encodes p for the reference generator. Castling rights are only listed
// when king and rook still stand on their home squares, and the en passant
// square is the target recorded by the side that just moved.
func fen(p *rules.Position) string {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		empty := 0
		for col := 0; col < 8; col++ {
			pc, ok := p.PieceAt(rules.NewSquare(row, col))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}

	if p.SideToMove() == rules.White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	sb.WriteString(castlingField(p))

	sb.WriteByte(' ')
	ep := p.EnPassant(p.SideToMove().Other())
	if ep == rules.NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(strings.ToLower(ep.String()))
	}
	sb.WriteString(" 0 1")
	return sb.String()
}

func castlingField(p *rules.Position) string {
	type wing struct {
		c      rules.Color
		dir    rules.Direction
		king   rules.Square
		corner rules.Square
		letter byte
	}
	wings := []wing{
		{rules.White, rules.East, rules.E1, rules.H1, 'K'},
		{rules.White, rules.West, rules.E1, rules.A1, 'Q'},
		{rules.Black, rules.East, rules.E8, rules.H8, 'k'},
		{rules.Black, rules.West, rules.E8, rules.A8, 'q'},
	}
	var out []byte
	for _, w := range wings {
		if !p.CanCastle(w.c, w.dir) {
			continue
		}
		king, _ := p.PieceAt(w.king)
		rook, _ := p.PieceAt(w.corner)
		if king == (rules.Piece{Kind: rules.King, Color: w.c}) && rook == (rules.Piece{Kind: rules.Rook, Color: w.c}) {
			out = append(out, w.letter)
		}
	}
	if len(out) == 0 {
		return "-"
	}
	return string(out)
}
