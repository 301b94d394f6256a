package server

import (
	"strings"

	"chess-minimax/engine"
	"chess-minimax/game"
	"chess-minimax/rules"
)

// Snapshot is the JSON view of a game sent to clients.
type Snapshot struct {
	ID         string            `json:"id"`
	SideToMove string            `json:"sideToMove"`
	Board      [64]string        `json:"board"` // A1..H8, "wK", "bp" or ""
	Castling   map[string]bool   `json:"castling"`
	EnPassant  map[string]string `json:"enPassant"`
	History    []string          `json:"history"`
	Outcome    string            `json:"outcome"`
	InCheck    bool              `json:"inCheck"`
	Computer   string            `json:"computer"`
	Depth      int               `json:"depth"`
}

// ComputerReply describes a move chosen by the engine.
type ComputerReply struct {
	Move   string   `json:"move"`
	Score  string   `json:"score"`
	Leaves uint64   `json:"leaves"`
	Ties   []string `json:"ties"`
}

// MoveReply is returned by the move endpoints.
type MoveReply struct {
	Snapshot
	Played   string         `json:"played,omitempty"`
	Computer *ComputerReply `json:"computerMove,omitempty"`
}

// MovesReply lists the legal moves of one piece.
type MovesReply struct {
	From    string   `json:"from"`
	Moves   []string `json:"moves"`
	Targets []string `json:"targets"`
}

func colorName(c rules.Color) string { return strings.ToLower(c.String()) }

func pieceCode(pc rules.Piece) string {
	prefix := "w"
	if pc.Color == rules.Black {
		prefix = "b"
	}
	return prefix + string(pc.Letter())
}

func snapshotOf(id string, g *game.Game) Snapshot {
	p := g.Position()
	s := Snapshot{
		ID:         id,
		SideToMove: colorName(p.SideToMove()),
		Castling: map[string]bool{
			"whiteQueenside": p.CanCastle(rules.White, rules.West),
			"whiteKingside":  p.CanCastle(rules.White, rules.East),
			"blackQueenside": p.CanCastle(rules.Black, rules.West),
			"blackKingside":  p.CanCastle(rules.Black, rules.East),
		},
		EnPassant: map[string]string{},
		Outcome:   g.Outcome().String(),
		InCheck:   rules.InCheck(&p, p.SideToMove()),
		Computer:  g.Players().String(),
		Depth:     g.Depth(),
	}
	for sq := rules.Square(0); sq < 64; sq++ {
		if pc, ok := p.PieceAt(sq); ok {
			s.Board[sq] = pieceCode(pc)
		}
	}
	for _, c := range []rules.Color{rules.White, rules.Black} {
		if ep := p.EnPassant(c); ep != rules.NoSquare {
			s.EnPassant[colorName(c)] = ep.String()
		}
	}
	for _, m := range g.History() {
		s.History = append(s.History, m.String())
	}
	if s.History == nil {
		s.History = []string{}
	}
	return s
}

func computerReply(r engine.Result) *ComputerReply {
	reply := &ComputerReply{
		Move:   r.Move.String(),
		Score:  engine.FormatScore(r.Score),
		Leaves: r.Leaves,
	}
	for _, m := range r.Ties {
		reply.Ties = append(reply.Ties, m.String())
	}
	return reply
}

func movesReply(set rules.MoveSet) MovesReply {
	reply := MovesReply{From: set.From.String(), Moves: []string{}, Targets: []string{}}
	for _, m := range set.Moves {
		reply.Moves = append(reply.Moves, m.String())
	}
	for _, sq := range set.Targets.Squares() {
		reply.Targets = append(reply.Targets, sq.String())
	}
	return reply
}
