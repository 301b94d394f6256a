// Package server exposes games against the minimax engine over HTTP and
// websockets.
package server

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"

	"chess-minimax/engine"
	"chess-minimax/game"
	"chess-minimax/render"
	"chess-minimax/rules"
)

// Config holds the server settings. Zero values fall back to DefaultConfig.
type Config struct {
	AllowOrigins string
	// DefaultDepth is used when a create request has no depth.
	DefaultDepth int
	// MaxDepth caps the depth a create request may ask for. Exhaustive
	// minimax holds the game's lock for minutes beyond depth 4.
	MaxDepth int
	// Seed makes tie-breaking reproducible; 0 seeds every game from the clock.
	Seed int64
	// Parallel enables the parallel root search.
	Parallel bool
	// AccessLog receives one line per request; nil disables it.
	AccessLog io.Writer
}

var DefaultConfig = Config{
	AllowOrigins: "*",
	DefaultDepth: engine.DefaultDepth,
	MaxDepth:     4,
	AccessLog:    os.Stdout,
}

// ErrBadDepth rejects a requested depth outside 1..Config.MaxDepth.
var ErrBadDepth = errors.New("bad search depth")

// Server wires the game manager to a fiber app.
type Server struct {
	cfg     Config
	app     *fiber.App
	manager *Manager
	games   atomic.Int64
}

// New builds the app and registers all routes.
func New(cfg Config) *Server {
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = DefaultConfig.AllowOrigins
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultConfig.MaxDepth
	}
	if cfg.DefaultDepth == 0 {
		cfg.DefaultDepth = DefaultConfig.DefaultDepth
	}
	cfg.DefaultDepth = engine.Min(cfg.DefaultDepth, cfg.MaxDepth)
	srv := &Server{
		cfg:     cfg,
		manager: NewManager(),
		app: fiber.New(fiber.Config{
			AppName:      "chess-minimax",
			ErrorHandler: errorHandler,
		}),
	}

	srv.app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	if cfg.AccessLog != nil {
		srv.app.Use(logger.New(logger.Config{
			Format: "${time} ${status} ${method} ${path} ${latency}\n",
			Output: cfg.AccessLog,
		}))
	}

	api := srv.app.Group("/api")
	games := api.Group("/games")
	games.Post("/", srv.createGame)
	games.Get("/:id", srv.getGame)
	games.Get("/:id/moves/:square", srv.getMoves)
	games.Post("/:id/moves", srv.postMove)
	games.Post("/:id/computer", srv.postComputer)
	games.Get("/:id/board.svg", srv.getBoardSVG)

	srv.app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	srv.app.Get("/ws/games/:id", websocket.New(srv.handleSocket, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))
	return srv
}

// App returns the fiber app, for Listen or app.Test.
func (srv *Server) App() *fiber.App { return srv.app }

// Manager returns the game registry.
func (srv *Server) Manager() *Manager { return srv.manager }

// Listen serves on addr until the app is shut down.
func (srv *Server) Listen(addr string) error { return srv.app.Listen(addr) }

// CreateRequest is the body of POST /api/games.
type CreateRequest struct {
	Computer string `json:"computer"`
	Depth    int    `json:"depth"`
}

func (srv *Server) createGame(c *fiber.Ctx) error {
	req := CreateRequest{Computer: "black"}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	players, err := game.ParsePlayers(req.Computer)
	if err != nil {
		return err
	}
	depth := req.Depth
	if depth == 0 {
		depth = srv.cfg.DefaultDepth
	}
	if depth < 1 || depth > srv.cfg.MaxDepth {
		return fmt.Errorf("%w: %d, want 1..%d", ErrBadDepth, depth, srv.cfg.MaxDepth)
	}
	opts := []game.Option{game.WithComputer(players), game.WithDepth(depth)}
	if srv.cfg.Seed != 0 {
		n := srv.games.Add(1)
		opts = append(opts, game.WithRandSource(rand.NewSource(srv.cfg.Seed+n)))
	}
	if srv.cfg.Parallel {
		opts = append(opts, game.WithParallelSearch())
	}
	return c.Status(fiber.StatusCreated).JSON(srv.manager.Create(opts...))
}

func (srv *Server) getGame(c *fiber.Ctx) error {
	s, err := srv.manager.get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(s.Snapshot())
}

func (srv *Server) getMoves(c *fiber.Ctx) error {
	s, err := srv.manager.get(c.Params("id"))
	if err != nil {
		return err
	}
	from, err := rules.ParseSquare(c.Params("square"))
	if err != nil {
		return err
	}
	set, err := s.Moves(from)
	if err != nil {
		return err
	}
	return c.JSON(movesReply(set))
}

func (srv *Server) postMove(c *fiber.Ctx) error {
	s, err := srv.manager.get(c.Params("id"))
	if err != nil {
		return err
	}
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	from, to, promo, err := req.parse()
	if err != nil {
		return err
	}
	reply, err := s.Play(from, to, promo)
	if err != nil {
		return err
	}
	return c.JSON(reply)
}

func (srv *Server) postComputer(c *fiber.Ctx) error {
	s, err := srv.manager.get(c.Params("id"))
	if err != nil {
		return err
	}
	reply, err := s.Computer()
	if err != nil {
		return err
	}
	return c.JSON(reply)
}

func (srv *Server) getBoardSVG(c *fiber.Ctx) error {
	s, err := srv.manager.get(c.Params("id"))
	if err != nil {
		return err
	}
	s.mu.Lock()
	p := s.game.Position()
	s.mu.Unlock()

	opts := render.NoHighlights
	if rules.InCheck(&p, p.SideToMove()) {
		opts.Check = p.KingSquare(p.SideToMove())
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	render.SVG(c, &p, opts)
	return nil
}

func (req MoveRequest) parse() (from, to rules.Square, promo rules.PieceKind, err error) {
	if from, err = rules.ParseSquare(req.From); err != nil {
		return
	}
	if to, err = rules.ParseSquare(req.To); err != nil {
		return
	}
	if p := strings.TrimSpace(req.Promotion); p != "" {
		promo, err = rules.PromotionKind(rune(p[0]))
	}
	return
}

// errorHandler maps domain errors to HTTP statuses.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, ErrGameNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, rules.ErrBadSquare), errors.Is(err, rules.ErrBadPromotion), errors.Is(err, game.ErrBadPlayers),
		errors.Is(err, ErrBadDepth):
		code = fiber.StatusBadRequest
	case errors.Is(err, game.ErrIllegalMove), errors.Is(err, game.ErrPromotionRequired):
		code = fiber.StatusUnprocessableEntity
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNotYourPiece),
		errors.Is(err, game.ErrEmptySquare), errors.Is(err, game.ErrNoMoves),
		errors.Is(err, game.ErrNotComputerTurn):
		code = fiber.StatusConflict
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
