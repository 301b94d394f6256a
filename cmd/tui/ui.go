package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"chess-minimax/engine"
	"chess-minimax/game"
	"chess-minimax/rules"
)

// Board geometry in screen cells.
const (
	boardX     = 3
	boardY     = 1
	cellWidth  = 3
	statusLine = boardY + 10
	helpLine   = statusLine + 1
)

var (
	styleLight    = tcell.StyleDefault.Background(tcell.ColorTan)
	styleDark     = tcell.StyleDefault.Background(tcell.ColorSaddleBrown)
	styleCursor   = tcell.StyleDefault.Background(tcell.ColorGold)
	styleSelected = tcell.StyleDefault.Background(tcell.ColorSteelBlue)
	styleTarget   = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	styleCheck    = tcell.StyleDefault.Background(tcell.ColorDarkRed)
)

type ui struct {
	screen tcell.Screen
	g      *game.Game

	cursor   rules.Square
	selected *rules.MoveSet
	// promoteTo is the landing square waiting for a promotion choice.
	promoteTo rules.Square
	status    string
	buttons   tcell.ButtonMask
}

func newUI(screen tcell.Screen, g *game.Game) *ui {
	return &ui{
		screen:    screen,
		g:         g,
		cursor:    rules.E2,
		promoteTo: rules.NoSquare,
		status:    "White to move",
	}
}

// run draws and handles events until the player quits.
func (u *ui) run() {
	for {
		u.draw()
		if u.g.ComputerToMove() {
			u.computerMove()
			continue
		}
		if u.handle(u.screen.PollEvent()) {
			return
		}
	}
}

func (u *ui) computerMove() {
	u.status = "Thinking..."
	u.draw()
	r, err := u.g.ComputerMove()
	if err != nil {
		u.status = err.Error()
		return
	}
	u.status = fmt.Sprintf("Computer played %v (%s)", r.Move, engine.FormatScore(r.Score))
	u.afterMove()
}

// handle processes one event and reports whether the player quit.
func (u *ui) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		return u.handleKey(ev)
	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0 && u.buttons&tcell.Button1 == 0
		u.buttons = ev.Buttons()
		if !pressed {
			return false
		}
		if sq, ok := squareAt(ev.Position()); ok {
			u.cursor = sq
			u.activate(sq)
		}
	}
	return false
}

func (u *ui) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		u.step(rules.North)
	case tcell.KeyDown:
		u.step(rules.South)
	case tcell.KeyLeft:
		u.step(rules.West)
	case tcell.KeyRight:
		u.step(rules.East)
	case tcell.KeyEnter:
		u.activate(u.cursor)
	case tcell.KeyRune:
		if u.promoteTo != rules.NoSquare {
			u.promote(ev.Rune())
		} else if ev.Rune() == ' ' {
			u.activate(u.cursor)
		}
	}
	return false
}

func (u *ui) step(d rules.Direction) {
	if sq, ok := u.cursor.Step(d); ok {
		u.cursor = sq
	}
}

// activate selects an origin or, with an origin selected, plays to sq.
func (u *ui) activate(sq rules.Square) {
	if u.g.Outcome().Over() || u.promoteTo != rules.NoSquare {
		return
	}
	p := u.g.Position()
	if pc, ok := p.PieceAt(sq); u.selected == nil || (ok && pc.Color == p.SideToMove()) {
		u.selectOrigin(sq)
		return
	}
	candidates := u.selected.To(sq)
	switch {
	case len(candidates) == 0:
		u.status = fmt.Sprintf("%v cannot move to %v", u.selected.From, sq)
		u.selected = nil
	case len(candidates) > 1:
		u.promoteTo = sq
		u.status = "Promote to q, r, b or n"
	default:
		u.play(sq, candidates[0].Promotion)
	}
}

func (u *ui) selectOrigin(sq rules.Square) {
	set, err := u.g.Moves(sq)
	if err != nil {
		u.selected = nil
		u.status = err.Error()
		return
	}
	u.selected = &set
	u.status = fmt.Sprintf("%v selected", sq)
}

func (u *ui) promote(r rune) {
	kind, err := rules.PromotionKind(r)
	if err != nil {
		u.status = err.Error()
		return
	}
	to := u.promoteTo
	u.promoteTo = rules.NoSquare
	u.play(to, kind)
}

func (u *ui) play(to rules.Square, promo rules.PieceKind) {
	m, err := u.g.Play(u.selected.From, to, promo)
	u.selected = nil
	if err != nil {
		u.status = err.Error()
		return
	}
	u.status = fmt.Sprintf("Played %v", m)
	u.afterMove()
}

func (u *ui) afterMove() {
	if o := u.g.Outcome(); o.Over() {
		u.status = outcomeMessage(o)
	}
}

func outcomeMessage(o rules.Outcome) string {
	if c, ok := o.Winner(); ok {
		return fmt.Sprintf("Game over. %v wins!", c)
	}
	return "Game over. It's a draw"
}

// squareAt maps a screen cell to the board square drawn there.
func squareAt(x, y int) (rules.Square, bool) {
	col := (x - boardX) / cellWidth
	row := 7 - (y - boardY)
	if x < boardX || col > 7 || y < boardY || row < 0 {
		return rules.NoSquare, false
	}
	return rules.NewSquare(row, col), true
}

func (u *ui) draw() {
	u.screen.Clear()
	p := u.g.Position()
	check := rules.NoSquare
	if rules.InCheck(&p, p.SideToMove()) {
		check = p.KingSquare(p.SideToMove())
	}

	for row := 7; row >= 0; row-- {
		y := boardY + 7 - row
		drawText(u.screen, 1, y, tcell.StyleDefault, fmt.Sprint(row+1))
		for col := 0; col < 8; col++ {
			sq := rules.NewSquare(row, col)
			u.drawSquare(&p, sq, u.squareStyle(sq, check))
		}
	}
	for col := 0; col < 8; col++ {
		drawText(u.screen, boardX+col*cellWidth+1, boardY+8, tcell.StyleDefault, string(rune('A'+col)))
	}
	drawText(u.screen, 1, statusLine, tcell.StyleDefault, u.status)
	drawText(u.screen, 1, helpLine, tcell.StyleDefault.Dim(true), "arrows/mouse move, enter/space/click select, esc quits")
	u.screen.Show()
}

func (u *ui) squareStyle(sq, check rules.Square) tcell.Style {
	switch {
	case sq == u.cursor:
		return styleCursor
	case u.selected != nil && sq == u.selected.From:
		return styleSelected
	case u.selected != nil && u.selected.Targets.Has(sq):
		return styleTarget
	case sq == check:
		return styleCheck
	case (sq.Row()+sq.Col())%2 == 0:
		return styleDark
	}
	return styleLight
}

func (u *ui) drawSquare(p *rules.Position, sq rules.Square, style tcell.Style) {
	x := boardX + sq.Col()*cellWidth
	y := boardY + 7 - sq.Row()
	glyph := ' '
	if pc, ok := p.PieceAt(sq); ok {
		glyph = rune(pc.Letter())
		if pc.Color == rules.White {
			style = style.Foreground(tcell.ColorWhite).Bold(true)
		} else {
			style = style.Foreground(tcell.ColorBlack).Bold(true)
		}
	}
	u.screen.SetContent(x, y, ' ', nil, style)
	u.screen.SetContent(x+1, y, glyph, nil, style)
	u.screen.SetContent(x+2, y, ' ', nil, style)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
