package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"chess-minimax/engine"
	"chess-minimax/game"
)

func main() {
	depthFlag := flag.Int("depth", engine.DefaultDepth, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	movesFlag := flag.String("moves", "", "coordinate moves from the initial position (empty = startpos)")
	seedFlag := flag.Int64("seed", 1, "seed for tie-breaking")
	parallelFlag := flag.Bool("parallel", false, "score root moves in parallel")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 || *depthFlag > engine.MaxDepth {
		log.Fatalf("depth must be in 1..%d, got %d", engine.MaxDepth, *depthFlag)
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	g := game.New()
	for _, m := range strings.Fields(*movesFlag) {
		if _, err := g.PlayCoordinates(m); err != nil {
			log.Fatalf("move %s: %v", m, err)
		}
	}
	if g.Outcome().Over() {
		log.Fatalf("position is already decided: %v", g.Outcome())
	}
	pos := g.Position()

	var opts []engine.Option
	if *parallelFlag {
		opts = append(opts, engine.WithParallelRoot())
	}
	searcher := engine.NewSearcher(rand.NewSource(*seedFlag), opts...)

	fmt.Printf("searchbench: moves=%q depth=%d repeat=%d parallel=%t\n", *movesFlag, *depthFlag, *repeatFlag, *parallelFlag)

	var stats engine.SearchStatistics
	for i := 0; i < *repeatFlag; i++ {
		iterStart := time.Now()
		r := searcher.Search(&pos, *depthFlag)
		iterElapsed := time.Since(iterStart)
		stats.Add(r, iterElapsed)
		fmt.Println(engine.InfoLine(*depthFlag, r, iterElapsed))
		fmt.Printf("iteration %d: bestmove %v  time=%v\n", i+1, r.Move, iterElapsed)
	}
	stats.Dump(os.Stdout)

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
