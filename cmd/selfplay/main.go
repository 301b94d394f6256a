package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"chess-minimax/crosscheck"
	"chess-minimax/engine"
	"chess-minimax/game"
	"chess-minimax/rules"
)

func main() {
	games := flag.Int("games", 1, "number of games to play")
	depth := flag.Int("depth", 2, "search depth for both sides")
	maxPlies := flag.Int("maxplies", 200, "adjudicate a game as unfinished after this many plies")
	seed := flag.Int64("seed", 1, "seed of the first game; game i uses seed+i")
	parallel := flag.Bool("parallel", false, "score root moves in parallel")
	san := flag.Bool("san", false, "print every game's moves in algebraic notation (debugging aid)")
	flag.Parse()

	if *games <= 0 || *maxPlies <= 0 {
		log.Fatalf("-games and -maxplies must be positive")
	}

	var stats engine.SearchStatistics
	tally := map[rules.Outcome]int{}
	for i := 0; i < *games; i++ {
		opts := []game.Option{
			game.WithComputer(game.ComputerBoth),
			game.WithDepth(*depth),
			game.WithRandSource(rand.NewSource(*seed + int64(i))),
		}
		if *parallel {
			opts = append(opts, game.WithParallelSearch())
		}
		g := game.New(opts...)
		for ply := 0; ply < *maxPlies && !g.Outcome().Over(); ply++ {
			start := time.Now()
			r, err := g.ComputerMove()
			if err != nil {
				log.Fatalf("game %d ply %d: %v", i+1, ply+1, err)
			}
			stats.Add(r, time.Since(start))
		}
		tally[g.Outcome()]++
		fmt.Printf("game %d: %v after %d plies\n", i+1, g.Outcome(), len(g.History()))
		if *san {
			printSAN(g.History())
		}
	}

	fmt.Printf("white %d  black %d  draw %d  unfinished %d\n",
		tally[rules.WhiteWins], tally[rules.BlackWins], tally[rules.Draw], tally[rules.Ongoing])
	stats.Dump(os.Stdout)
}

// printSAN lists the moves in algebraic notation as far as the replay library
// follows them, then in coordinate notation.
func printSAN(history []rules.Move) {
	san, err := crosscheck.SAN(history)
	for _, m := range history[len(san):] {
		san = append(san, m.String())
	}
	fmt.Println(strings.Join(san, " "))
	if err != nil {
		log.Printf("replay stopped: %v", err)
	}
}
