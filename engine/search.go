package engine

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"

	"chess-minimax/rules"
)

// =============================================================================
// SEARCH CONSTANTS
// =============================================================================
const (
	DefaultDepth = 3
	MaxDepth     = 6

	// Scores returned by a node whose side has no legal move.
	LostForMax = math.MinInt
	LostForMin = math.MaxInt
)

// Result is the outcome of one root search.
type Result struct {
	Move  rules.Move
	Score int
	// Ties lists every root move that reached Score, in generation order.
	Ties   []rules.Move
	Leaves uint64
	Nodes  uint64
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithParallelRoot scores the root children on separate goroutines. The
// result is the same as a sequential search with the same random source.
func WithParallelRoot() Option {
	return func(s *Searcher) { s.parallel = true }
}

// Searcher runs fixed-depth minimax searches. It owns its random source for
// tie-breaking, so a Searcher must not be shared between goroutines.
type Searcher struct {
	rng      *rand.Rand
	parallel bool
}

// NewSearcher returns a Searcher that breaks ties with src.
func NewSearcher(src rand.Source, opts ...Option) *Searcher {
	s := &Searcher{rng: rand.New(src)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search looks depth plies ahead from p and picks a best move for the side to
// move, drawing uniformly among equally scored moves. p is not modified.
// It panics if depth < 1 or the side to move has no legal move; callers
// check for the end of the game first.
func (s *Searcher) Search(p *rules.Position, depth int) Result {
	if depth < 1 {
		panic("engine: search depth must be at least 1")
	}
	moves := rules.AllLegalMoves(p)
	if len(moves) == 0 {
		panic("engine: search called without legal moves")
	}

	maximize := (depth-1)%2 == 0
	scores := make([]int, len(moves))
	var leaves, nodes atomic.Uint64

	scoreChild := func(i int) {
		child := *p
		child.MakeMove(moves[i])
		var c counters
		scores[i] = minimax(child, depth-1, !maximize, &c)
		leaves.Add(c.leaves)
		nodes.Add(c.nodes)
	}

	if s.parallel {
		var wg sync.WaitGroup
		for i := range moves {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				scoreChild(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range moves {
			scoreChild(i)
		}
	}

	best := scores[0]
	for _, sc := range scores[1:] {
		if maximize {
			best = Max(best, sc)
		} else {
			best = Min(best, sc)
		}
	}
	var ties []rules.Move
	for i, sc := range scores {
		if sc == best {
			ties = append(ties, moves[i])
		}
	}

	return Result{
		Move:   ties[s.rng.Intn(len(ties))],
		Score:  best,
		Ties:   ties,
		Leaves: leaves.Load(),
		Nodes:  nodes.Load() + 1,
	}
}

type counters struct {
	leaves uint64
	nodes  uint64
}

// minimax scores p, in which the previous side has just moved. Leaves are
// evaluated for that side; inner nodes hand the turn over first.
func minimax(p rules.Position, depth int, maximize bool, c *counters) int {
	c.nodes++
	if depth == 0 {
		c.leaves++
		return Evaluate(&p)
	}

	p.NextTurn()
	moves := rules.AllLegalMoves(&p)

	best := LostForMin
	if maximize {
		best = LostForMax
	}
	for _, m := range moves {
		child := p
		child.MakeMove(m)
		score := minimax(child, depth-1, !maximize, c)
		if maximize {
			best = Max(best, score)
		} else {
			best = Min(best, score)
		}
	}
	return best
}
