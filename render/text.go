// Package render draws positions for people: a plain-text diagram for
// terminals and logs, and an SVG diagram for the web front end.
package render

import (
	"fmt"
	"io"
	"strings"

	"chess-minimax/rules"
)

// Options selects the highlights drawn on top of the position.
type Options struct {
	// From marks a selected origin square.
	From rules.Square
	// Targets marks landing squares, usually a MoveSet's Targets.
	Targets rules.Bitboard
	// Check marks an attacked king.
	Check rules.Square
	// Color uses ANSI background colors instead of marker characters.
	Color bool
}

// NoHighlights draws the bare position.
var NoHighlights = Options{From: rules.NoSquare, Check: rules.NoSquare}

// Markers used by the plain diagram.
const (
	markOrigin = '>'
	markTarget = '*'
	markCheck  = '!'
)

const (
	ansiReset  = "\x1b[0m"
	ansiOrigin = "\x1b[44m"
	ansiTarget = "\x1b[42m"
	ansiCheck  = "\x1b[41m"
)

// Text writes the position rank 8 first, with rank and file labels and a
// footer listing en passant targets and castling rights.
func Text(w io.Writer, p *rules.Position, opts Options) error {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d", row+1)
		for col := 0; col < 8; col++ {
			sq := rules.NewSquare(row, col)
			writeCell(&sb, p, sq, opts)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  A B C D E F G H\n")
	fmt.Fprintf(&sb, "EPW:%v EPB:%v\n", p.EnPassant(rules.White), p.EnPassant(rules.Black))
	fmt.Fprintf(&sb, "WCW:%t WCE:%t BCW:%t BCE:%t\n",
		p.CanCastle(rules.White, rules.West), p.CanCastle(rules.White, rules.East),
		p.CanCastle(rules.Black, rules.West), p.CanCastle(rules.Black, rules.East))
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeCell(sb *strings.Builder, p *rules.Position, sq rules.Square, opts Options) {
	symbol := byte('.')
	if pc, ok := p.PieceAt(sq); ok {
		symbol = pc.Letter()
	}

	var mark byte = ' '
	ansi := ""
	switch {
	case sq == opts.Check && opts.Check != rules.NoSquare:
		mark, ansi = markCheck, ansiCheck
	case sq == opts.From && opts.From != rules.NoSquare:
		mark, ansi = markOrigin, ansiOrigin
	case opts.Targets.Has(sq):
		mark, ansi = markTarget, ansiTarget
	}

	if opts.Color {
		sb.WriteByte(' ')
		if ansi != "" {
			sb.WriteString(ansi)
			sb.WriteByte(symbol)
			sb.WriteString(ansiReset)
			return
		}
		sb.WriteByte(symbol)
		return
	}
	sb.WriteByte(mark)
	sb.WriteByte(symbol)
}

// Bitboard writes a set of squares as an X/. grid, useful for attack maps.
func Bitboard(w io.Writer, b rules.Bitboard) error {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d", row+1)
		for col := 0; col < 8; col++ {
			if b.Has(rules.NewSquare(row, col)) {
				sb.WriteString(" X")
			} else {
				sb.WriteString(" .")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  A B C D E F G H\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
