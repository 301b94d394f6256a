// Package crosscheck compares the legal move generator against
// github.com/dylhunn/dragontoothmg by walking both move trees in lockstep.
//
// The two generators differ on purpose in two places, which a walk tolerates
// instead of reporting:
//   - a capturing promotion only promotes to a queen here, so the reference's
//     capturing under-promotions are dropped;
//   - queenside castling ignores the B1/B8 square here, so our castle past an
//     occupied B square has no reference twin and its subtree is not walked.
package crosscheck

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-minimax/rules"
)

// Mismatch is a node where the two generators disagree.
type Mismatch struct {
	Path []string // moves from the root, coordinate notation
	// Moves only one of the generators produced.
	OnlyOurs   []string
	OnlyOracle []string
	// Board is set when the two boards stopped agreeing on placement.
	Board string
}

func (m Mismatch) String() string {
	path := strings.Join(m.Path, " ")
	if path == "" {
		path = "(root)"
	}
	if m.Board != "" {
		return fmt.Sprintf("%s: %s", path, m.Board)
	}
	return fmt.Sprintf("%s: only ours %v, only oracle %v", path, m.OnlyOurs, m.OnlyOracle)
}

// Report sums up a lockstep walk.
type Report struct {
	Nodes uint64 // leaves reached by moves both sides agree on
	// Tolerated counts moves only one side produced that are known rule
	// differences.
	Tolerated  uint64
	Mismatches []Mismatch
}

// OK reports whether no disagreement was found.
func (r Report) OK() bool { return len(r.Mismatches) == 0 }

// MaxMismatches caps the number of mismatches recorded by a single walk.
const MaxMismatches = 32

// Compare walks depth plies from p. p is not modified.
func Compare(p *rules.Position, depth int) Report {
	board := dragontoothmg.ParseFen(fen(p))
	w := walker{}
	w.walk(*p, &board, depth)
	return w.report
}

// Oracle returns the reference generator's moves for p in coordinate notation,
// sorted and unfiltered.
func Oracle(p *rules.Position) []string {
	board := dragontoothmg.ParseFen(fen(p))
	moves := board.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for i := range moves {
		out = append(out, oracleString(&moves[i]))
	}
	slices.Sort(out)
	return out
}

type walker struct {
	path   []string
	report Report
}

func (w *walker) walk(p rules.Position, board *dragontoothmg.Board, depth int) {
	if depth == 0 {
		w.report.Nodes++
		return
	}
	if len(w.report.Mismatches) >= MaxMismatches {
		return
	}
	if desc := samePlacement(&p, board); desc != "" {
		w.record(Mismatch{Board: desc})
		return
	}

	ours := map[string]rules.Move{}
	for _, m := range rules.AllLegalMoves(&p) {
		ours[m.String()] = m
	}
	oracle := map[string]dragontoothmg.Move{}
	for _, m := range board.GenerateLegalMoves() {
		oracle[oracleString(&m)] = m
	}

	var onlyOurs, onlyOracle []string
	for k, m := range ours {
		if _, ok := oracle[k]; ok {
			continue
		}
		if castlesPastBSquare(&p, m) {
			w.report.Tolerated++
			continue
		}
		onlyOurs = append(onlyOurs, k)
	}
	for k, m := range oracle {
		if _, ok := ours[k]; ok {
			continue
		}
		if capturingUnderPromotion(m) {
			w.report.Tolerated++
			continue
		}
		onlyOracle = append(onlyOracle, k)
	}
	if len(onlyOurs) > 0 || len(onlyOracle) > 0 {
		slices.Sort(onlyOurs)
		slices.Sort(onlyOracle)
		w.record(Mismatch{OnlyOurs: onlyOurs, OnlyOracle: onlyOracle})
	}

	keys := maps.Keys(ours)
	slices.Sort(keys)
	for _, k := range keys {
		om, ok := oracle[k]
		if !ok {
			continue
		}
		child := p
		child.MakeMove(ours[k])
		child.NextTurn()
		undo := board.Apply(om)
		w.path = append(w.path, k)
		w.walk(child, board, depth-1)
		w.path = w.path[:len(w.path)-1]
		undo()
	}
}

func (w *walker) record(m Mismatch) {
	m.Path = slices.Clone(w.path)
	w.report.Mismatches = append(w.report.Mismatches, m)
}

// castlesPastBSquare reports a queenside castle whose rook passes an
// occupied B1/B8 square.
func castlesPastBSquare(p *rules.Position, m rules.Move) bool {
	if !m.IsCastle() || m.Dir != rules.West {
		return false
	}
	_, taken := p.PieceAt(rules.NewSquare(m.From.Row(), 1))
	return taken
}

// capturingUnderPromotion reports a diagonal pawn step promoting to anything
// but a queen.
func capturingUnderPromotion(m dragontoothmg.Move) bool {
	switch m.Promote() {
	case dragontoothmg.Rook, dragontoothmg.Bishop, dragontoothmg.Knight:
		return m.From()%8 != m.To()%8
	}
	return false
}

// samePlacement compares occupancy and side to move with the reference board.
func samePlacement(p *rules.Position, b *dragontoothmg.Board) string {
	if uint64(p.Occupancy(rules.White)) != b.White.All || uint64(p.Occupancy(rules.Black)) != b.Black.All {
		return fmt.Sprintf("placement differs: ours %s", fen(p))
	}
	if b.Wtomove != (p.SideToMove() == rules.White) {
		return "side to move differs"
	}
	return ""
}

func oracleString(m *dragontoothmg.Move) string {
	s := squareName(m.From()) + squareName(m.To())
	switch m.Promote() {
	case dragontoothmg.Queen:
		s += "q"
	case dragontoothmg.Rook:
		s += "r"
	case dragontoothmg.Bishop:
		s += "b"
	case dragontoothmg.Knight:
		s += "n"
	}
	return s
}

func squareName(sq uint8) string {
	return strings.ToLower(rules.Square(sq).String())
}
