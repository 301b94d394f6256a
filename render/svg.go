package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"chess-minimax/rules"
)

const (
	squareSize = 60
	margin     = 24
	boardSize  = 8*squareSize + 2*margin
)

var (
	lightFill  = "fill:#f0d9b5"
	darkFill   = "fill:#b58863"
	originFill = "fill:#6495ed;fill-opacity:0.6"
	targetFill = "fill:#2e8b57;fill-opacity:0.5"
	checkFill  = "fill:#dc143c;fill-opacity:0.7"
	labelStyle = "font-family:sans-serif;font-size:14px;text-anchor:middle;fill:#333"
	pieceStyle = "font-family:serif;font-size:44px;text-anchor:middle;dominant-baseline:central"
)

var glyphs = [2][rules.King + 1]string{
	rules.White: {rules.Pawn: "♙", rules.Knight: "♘", rules.Bishop: "♗", rules.Rook: "♖", rules.Queen: "♕", rules.King: "♔"},
	rules.Black: {rules.Pawn: "♟", rules.Knight: "♞", rules.Bishop: "♝", rules.Rook: "♜", rules.Queen: "♛", rules.King: "♚"},
}

// SVG writes the position as an SVG document with White at the bottom.
func SVG(w io.Writer, p *rules.Position, opts Options) {
	canvas := svg.New(w)
	canvas.Start(boardSize, boardSize)
	canvas.Title(fmt.Sprintf("%v to move", p.SideToMove()))
	canvas.Rect(0, 0, boardSize, boardSize, "fill:#fff")

	for row := 7; row >= 0; row-- {
		for col := 0; col < 8; col++ {
			sq := rules.NewSquare(row, col)
			x, y := squareOrigin(sq)
			fill := darkFill
			if (row+col)%2 == 1 {
				fill = lightFill
			}
			canvas.Rect(x, y, squareSize, squareSize, fill)
			switch {
			case opts.Check != rules.NoSquare && sq == opts.Check:
				canvas.Rect(x, y, squareSize, squareSize, checkFill)
			case opts.From != rules.NoSquare && sq == opts.From:
				canvas.Rect(x, y, squareSize, squareSize, originFill)
			case opts.Targets.Has(sq):
				canvas.Rect(x, y, squareSize, squareSize, targetFill)
			}
			if pc, ok := p.PieceAt(sq); ok {
				canvas.Text(x+squareSize/2, y+squareSize/2, glyphs[pc.Color][pc.Kind], pieceStyle)
			}
		}
	}

	for i := 0; i < 8; i++ {
		file := string(rune('A' + i))
		x := margin + i*squareSize + squareSize/2
		canvas.Text(x, margin-8, file, labelStyle)
		canvas.Text(x, boardSize-8, file, labelStyle)
		rank := fmt.Sprint(i + 1)
		y := margin + (7-i)*squareSize + squareSize/2 + 5
		canvas.Text(margin/2, y, rank, labelStyle)
		canvas.Text(boardSize-margin/2, y, rank, labelStyle)
	}
	canvas.End()
}

func squareOrigin(sq rules.Square) (x, y int) {
	return margin + sq.Col()*squareSize, margin + (7-sq.Row())*squareSize
}
