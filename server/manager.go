package server

import (
	"errors"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"chess-minimax/engine"
	"chess-minimax/game"
	"chess-minimax/rules"
)

var ErrGameNotFound = errors.New("game not found")

// Manager keeps the games served by one server.
type Manager struct {
	games map[string]*session
	mu    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*session)}
}

// Create starts a game and lets the engine open if it plays White alone.
func (m *Manager) Create(opts ...game.Option) MoveReply {
	s := &session{
		id:          uuid.New().String(),
		game:        game.New(opts...),
		subscribers: make(map[*websocket.Conn]struct{}),
	}
	m.mu.Lock()
	m.games[s.id] = s
	m.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	reply := MoveReply{}
	if r, ok := s.reply(); ok {
		reply.Computer = computerReply(r)
	}
	reply.Snapshot = snapshotOf(s.id, s.game)
	return reply
}

func (m *Manager) get(id string) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return s, nil
}

// Len returns the number of games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// session serializes access to one game and fans out its updates.
type session struct {
	id   string
	mu   sync.Mutex
	game *game.Game

	subMu       sync.Mutex
	subscribers map[*websocket.Conn]struct{}
}

func (s *session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.id, s.game)
}

func (s *session) Moves(from rules.Square) (rules.MoveSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Moves(from)
}

// Play applies a human move and the engine's answer when it is the engine's turn.
func (s *session) Play(from, to rules.Square, promo rules.PieceKind) (MoveReply, error) {
	s.mu.Lock()
	m, err := s.game.Play(from, to, promo)
	if err != nil {
		s.mu.Unlock()
		return MoveReply{}, err
	}
	reply := MoveReply{Played: m.String()}
	if r, ok := s.reply(); ok {
		reply.Computer = computerReply(r)
	}
	reply.Snapshot = snapshotOf(s.id, s.game)
	s.mu.Unlock()

	s.broadcast(reply.Snapshot)
	return reply, nil
}

// Computer forces one engine move for the side to move.
func (s *session) Computer() (MoveReply, error) {
	s.mu.Lock()
	r, err := s.game.ComputerMove()
	if err != nil {
		s.mu.Unlock()
		return MoveReply{}, err
	}
	reply := MoveReply{Played: r.Move.String(), Computer: computerReply(r), Snapshot: snapshotOf(s.id, s.game)}
	s.mu.Unlock()

	s.broadcast(reply.Snapshot)
	return reply, nil
}

// reply lets the engine answer a human move. Engine-only games advance one
// move per request instead. Callers hold s.mu.
func (s *session) reply() (engine.Result, bool) {
	if s.game.Players() == game.ComputerBoth || !s.game.ComputerToMove() {
		return engine.Result{}, false
	}
	r, err := s.game.ComputerMove()
	if err != nil {
		log.Printf("game %s: computer move: %v", s.id, err)
		return engine.Result{}, false
	}
	return r, true
}

func (s *session) subscribe(conn *websocket.Conn) {
	s.subMu.Lock()
	s.subscribers[conn] = struct{}{}
	s.subMu.Unlock()
}

func (s *session) unsubscribe(conn *websocket.Conn) {
	s.subMu.Lock()
	delete(s.subscribers, conn)
	s.subMu.Unlock()
}

// broadcast pushes a snapshot to every subscriber, dropping the ones that fail.
func (s *session) broadcast(snap Snapshot) {
	msg, err := newMessage(MessageTypeSnapshot, snap)
	if err != nil {
		log.Printf("game %s: marshal snapshot: %v", s.id, err)
		return
	}
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for conn := range s.subscribers {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: dropping subscriber: %v", s.id, err)
			delete(s.subscribers, conn)
		}
	}
}

// send writes one message to a single subscriber, serialized with broadcasts.
func (s *session) send(conn *websocket.Conn, msg Message) error {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return conn.WriteJSON(msg)
}
