package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-minimax/crosscheck"
	"chess-minimax/game"
	"chess-minimax/rules"
)

func main() {
	moves := flag.String("moves", "", "Coordinate moves played from the initial position, e.g. \"e2e4 e7e5\"")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "Compare every node's legal moves against the reference generator")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	p, err := positionAfter(*moves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "moves: %v\n", err)
		os.Exit(2)
	}

	if *verify {
		report := crosscheck.Compare(&p, *depth)
		for _, m := range report.Mismatches {
			fmt.Println(m)
		}
		fmt.Printf("Nodes: %d Tolerated: %d Mismatches: %d\n", report.Nodes, report.Tolerated, len(report.Mismatches))
		if !report.OK() {
			os.Exit(1)
		}
		return
	}

	if *divide {
		div := rules.PerftDivide(&p, *depth)
		keys := maps.Keys(div)
		slices.SortFunc(keys, func(a, b rules.Move) bool { return a.String() < b.String() })
		var sum uint64
		for _, m := range keys {
			fmt.Printf("%s: %d\n", m, div[m])
			sum += div[m]
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += rules.Perft(&p, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Label Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
}

// positionAfter replays coordinate moves from the initial position.
func positionAfter(moves string) (rules.Position, error) {
	g := game.New()
	for _, m := range strings.Fields(moves) {
		if _, err := g.PlayCoordinates(m); err != nil {
			return rules.Position{}, fmt.Errorf("%s: %w", m, err)
		}
	}
	return g.Position(), nil
}
