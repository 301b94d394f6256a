package engine

import (
	"fmt"
	"io"
	"time"
)

// SearchStatistics accumulates counters over a series of searches.
type SearchStatistics struct {
	Searches uint64
	Leaves   uint64
	Nodes    uint64
	TiedRoot uint64 // searches that had to draw among several best moves
	Elapsed  time.Duration
}

// Add records one search and the wall time it took.
func (s *SearchStatistics) Add(r Result, elapsed time.Duration) {
	s.Searches++
	s.Leaves += r.Leaves
	s.Nodes += r.Nodes
	if len(r.Ties) > 1 {
		s.TiedRoot++
	}
	s.Elapsed += elapsed
}

// NPS returns nodes per second over all recorded searches.
func (s *SearchStatistics) NPS() uint64 {
	ms := s.Elapsed.Milliseconds()
	if ms == 0 {
		ms = 1
	}
	return uint64(float64(s.Nodes*1000) / float64(ms))
}

// Dump writes the counters in the info-line format the tools print.
func (s *SearchStatistics) Dump(w io.Writer) {
	fmt.Fprintln(w, "info string Search statistics:")
	fmt.Fprintf(w, "info string   searches: %d\n", s.Searches)
	fmt.Fprintf(w, "info string   nodes: %d\n", s.Nodes)
	fmt.Fprintf(w, "info string   leaves: %d\n", s.Leaves)
	fmt.Fprintf(w, "info string   tied roots: %d\n", s.TiedRoot)
	fmt.Fprintf(w, "info string   time: %dms nps: %d\n", s.Elapsed.Milliseconds(), s.NPS())
}

// FormatScore renders a search score, naming the no-move sentinels.
func FormatScore(score int) string {
	switch score {
	case LostForMax:
		return "-inf"
	case LostForMin:
		return "+inf"
	}
	return fmt.Sprintf("cp %d", score)
}

// InfoLine formats one search result as a progress line.
func InfoLine(depth int, r Result, elapsed time.Duration) string {
	return fmt.Sprintf("info depth %d score %s nodes %d leaves %d time %d ties %d pv %v",
		depth, FormatScore(r.Score), r.Nodes, r.Leaves, elapsed.Milliseconds(), len(r.Ties), r.Move)
}
