package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"chess-minimax/engine"
	"chess-minimax/game"
	"chess-minimax/render"
	"chess-minimax/rules"
)

func main() {
	computer := flag.String("computer", "white", "Sides played by the engine: none, white, black or both")
	depth := flag.Int("depth", engine.DefaultDepth, "Search depth in plies")
	seed := flag.Int64("seed", 0, "Seed for tie-breaking (0 = time based)")
	parallel := flag.Bool("parallel", false, "Score root moves in parallel")
	color := flag.Bool("color", false, "Highlight squares with ANSI colors")
	flag.Parse()

	players, err := game.ParsePlayers(*computer)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	opts := []game.Option{
		game.WithComputer(players),
		game.WithDepth(*depth),
		game.WithRandSource(rand.NewSource(*seed)),
	}
	if *parallel {
		opts = append(opts, game.WithParallelSearch())
	}

	c := newConsole(game.New(opts...), os.Stdin, os.Stdout)
	c.color = *color
	if err := c.run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// errQuit ends the loop early: the player typed quit or input ran out.
var errQuit = errors.New("quit")

type console struct {
	g       *game.Game
	scanner *bufio.Scanner
	out     io.Writer
	color   bool
}

func newConsole(g *game.Game, in io.Reader, out io.Writer) *console {
	return &console{g: g, scanner: bufio.NewScanner(in), out: out}
}

// run plays until the game ends or the player quits.
func (c *console) run() error {
	for {
		c.draw(rules.NoSquare, 0)
		if outcome := c.g.Outcome(); outcome.Over() {
			fmt.Fprintln(c.out, gameOverMessage(outcome))
			return nil
		}
		var err error
		if c.g.ComputerToMove() {
			err = c.computerTurn()
		} else {
			err = c.humanTurn()
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func gameOverMessage(o rules.Outcome) string {
	switch o {
	case rules.WhiteWins:
		return "Game over. White wins!"
	case rules.BlackWins:
		return "Game over. Black wins!"
	}
	return "Game over. It's a draw"
}

func (c *console) draw(from rules.Square, targets rules.Bitboard) {
	p := c.g.Position()
	opts := render.Options{From: from, Targets: targets, Check: rules.NoSquare, Color: c.color}
	if rules.InCheck(&p, p.SideToMove()) {
		opts.Check = p.KingSquare(p.SideToMove())
	}
	render.Text(c.out, &p, opts)
}

func (c *console) computerTurn() error {
	start := time.Now()
	r, err := c.g.ComputerMove()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Computer plays %v\n", r.Move)
	fmt.Fprintln(c.out, engine.InfoLine(c.g.Depth(), r, time.Since(start)))
	return nil
}

// read prints prompt and returns the next non-empty line.
func (c *console) read(prompt string) (string, error) {
	for {
		fmt.Fprintln(c.out, prompt)
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return "", err
			}
			return "", errQuit
		}
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") {
			return "", errQuit
		}
		return line, nil
	}
}

func (c *console) humanTurn() error {
	for {
		line, err := c.read("Enter start position:")
		if err != nil {
			return err
		}
		from, err := rules.ParseSquare(line)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid square, use a name like E2")
			continue
		}
		set, err := c.g.Moves(from)
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		c.draw(from, set.Targets)
		return c.chooseLanding(set)
	}
}

func (c *console) chooseLanding(set rules.MoveSet) error {
	for {
		line, err := c.read("Enter end position:")
		if err != nil {
			return err
		}
		to, err := rules.ParseSquare(line)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid square, use a name like E4")
			continue
		}
		candidates := set.To(to)
		if len(candidates) == 0 {
			fmt.Fprintf(c.out, "%v cannot move to %v\n", set.From, to)
			continue
		}
		// A capturing promotion has a single candidate and needs no question.
		promo := candidates[0].Promotion
		if len(candidates) > 1 {
			if promo, err = c.choosePromotion(); err != nil {
				return err
			}
		}
		_, err = c.g.Play(set.From, to, promo)
		return err
	}
}

func (c *console) choosePromotion() (rules.PieceKind, error) {
	for {
		line, err := c.read("Please select conversion type: Q R B N")
		if err != nil {
			return rules.NoPieceKind, err
		}
		kind, err := rules.PromotionKind(rune(line[0]))
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		return kind, nil
	}
}
