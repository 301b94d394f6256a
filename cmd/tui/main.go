package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"chess-minimax/game"
)

func main() {
	computer := flag.String("computer", "black", "Sides played by the engine: none, white, black or both")
	depth := flag.Int("depth", 3, "Search depth in plies")
	seed := flag.Int64("seed", 0, "Seed for tie-breaking (0 = time based)")
	flag.Parse()

	players, err := game.ParsePlayers(*computer)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	g := game.New(
		game.WithComputer(players),
		game.WithDepth(*depth),
		game.WithRandSource(rand.NewSource(*seed)),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	screen.EnableMouse()

	u := newUI(screen, g)
	u.run()
	screen.Fini()

	if h := g.History(); len(h) > 0 {
		fmt.Println(h)
	}
}
