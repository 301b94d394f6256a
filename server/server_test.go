package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/exp/slices"
)

func newTestServer() *Server {
	return New(Config{Seed: 42})
}

func request(t *testing.T, srv *Server, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func createGame(t *testing.T, srv *Server, body string) MoveReply {
	t.Helper()
	code, data := request(t, srv, http.MethodPost, "/api/games", body)
	if code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", code, data)
	}
	return decode[MoveReply](t, data)
}

func TestCreateGame(t *testing.T) {
	srv := newTestServer()
	g := createGame(t, srv, `{"computer":"none","depth":2}`)
	if g.ID == "" || g.SideToMove != "white" || g.Outcome != "Ongoing" {
		t.Fatalf("unexpected snapshot: %+v", g.Snapshot)
	}
	if g.Board[4] != "wK" || g.Board[60] != "bk" || g.Board[12] != "wP" {
		t.Fatalf("unexpected board: %v", g.Board)
	}
	if len(g.History) != 0 || g.Snapshot.Computer != "none" || g.Depth != 2 {
		t.Fatalf("unexpected game settings: %+v", g.Snapshot)
	}
	if !g.Castling["whiteKingside"] || !g.Castling["blackQueenside"] {
		t.Fatalf("castling rights missing: %v", g.Castling)
	}
	if srv.Manager().Len() != 1 {
		t.Fatalf("manager holds %d games", srv.Manager().Len())
	}

	code, data := request(t, srv, http.MethodGet, "/api/games/"+g.ID, "")
	if code != http.StatusOK {
		t.Fatalf("get: status %d", code)
	}
	if got := decode[Snapshot](t, data); got.ID != g.ID {
		t.Fatalf("get returned game %s", got.ID)
	}
}

func TestCreateGameRejectsBadPlayers(t *testing.T) {
	srv := newTestServer()
	code, data := request(t, srv, http.MethodPost, "/api/games", `{"computer":"purple"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("status %d: %s", code, data)
	}
	if !strings.Contains(string(data), "error") {
		t.Fatalf("missing error body: %s", data)
	}
}

func TestCreateGameCapsDepth(t *testing.T) {
	srv := newTestServer()
	for _, body := range []string{`{"depth":5}`, `{"depth":6}`, `{"depth":-1}`} {
		code, data := request(t, srv, http.MethodPost, "/api/games", body)
		if code != http.StatusBadRequest || !strings.Contains(string(data), "bad search depth") {
			t.Errorf("%s: status %d: %s", body, code, data)
		}
	}
	if g := createGame(t, srv, `{"computer":"none","depth":4}`); g.Depth != 4 {
		t.Fatalf("depth 4 is allowed, got %d", g.Depth)
	}
	if srv.Manager().Len() != 1 {
		t.Fatalf("rejected requests created games: %d", srv.Manager().Len())
	}

	shallow := New(Config{Seed: 1, MaxDepth: 2})
	if g := createGame(t, shallow, `{"computer":"none"}`); g.Depth != 2 {
		t.Fatalf("default depth should be capped at 2, got %d", g.Depth)
	}
	if code, _ := request(t, shallow, http.MethodPost, "/api/games", `{"depth":3}`); code != http.StatusBadRequest {
		t.Fatalf("depth 3 over a cap of 2: status %d", code)
	}
}

func TestUnknownGame(t *testing.T) {
	srv := newTestServer()
	for _, path := range []string{"/api/games/nope", "/api/games/nope/moves/E2", "/api/games/nope/board.svg"} {
		if code, _ := request(t, srv, http.MethodGet, path, ""); code != http.StatusNotFound {
			t.Errorf("GET %s: status %d", path, code)
		}
	}
}

func TestMovesEndpoint(t *testing.T) {
	srv := newTestServer()
	g := createGame(t, srv, `{"computer":"none"}`)
	base := "/api/games/" + g.ID + "/moves/"

	code, data := request(t, srv, http.MethodGet, base+"E2", "")
	if code != http.StatusOK {
		t.Fatalf("E2: status %d: %s", code, data)
	}
	moves := decode[MovesReply](t, data)
	if !slices.Equal(moves.Targets, []string{"E3", "E4"}) || len(moves.Moves) != 2 {
		t.Fatalf("E2 moves: %+v", moves)
	}

	cases := map[string]int{
		"Z9": http.StatusBadRequest,
		"E7": http.StatusConflict,
		"E4": http.StatusConflict,
		"A1": http.StatusConflict,
	}
	for square, want := range cases {
		if code, data := request(t, srv, http.MethodGet, base+square, ""); code != want {
			t.Errorf("%s: status %d, want %d: %s", square, code, want, data)
		}
	}
}

func TestPlayMove(t *testing.T) {
	srv := newTestServer()
	g := createGame(t, srv, `{"computer":"none"}`)
	path := "/api/games/" + g.ID + "/moves"

	if code, data := request(t, srv, http.MethodPost, path, `{"from":"E2","to":"E5"}`); code != http.StatusUnprocessableEntity {
		t.Fatalf("e2e5: status %d: %s", code, data)
	}
	code, data := request(t, srv, http.MethodPost, path, `{"from":"e2","to":"e4"}`)
	if code != http.StatusOK {
		t.Fatalf("e2e4: status %d: %s", code, data)
	}
	reply := decode[MoveReply](t, data)
	if reply.Played != "e2e4" || reply.SideToMove != "black" || reply.Computer != nil {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if reply.Board[28] != "wP" || reply.Board[12] != "" {
		t.Fatalf("pawn not moved: %v", reply.Board)
	}
	if code, _ := request(t, srv, http.MethodPost, path, `{"from":"e4","to":"e5"}`); code != http.StatusConflict {
		t.Fatalf("moving White on Black's turn: status %d", code)
	}
	if code, _ := request(t, srv, http.MethodPost, "/api/games/"+g.ID+"/computer", ""); code != http.StatusConflict {
		t.Fatalf("computer move in a human game: status %d", code)
	}
}

func TestComputerReplies(t *testing.T) {
	srv := newTestServer()
	g := createGame(t, srv, `{"computer":"black","depth":1}`)
	if g.Snapshot.Computer != "black" {
		t.Fatalf("computer plays %s", g.Snapshot.Computer)
	}
	code, data := request(t, srv, http.MethodPost, "/api/games/"+g.ID+"/moves", `{"from":"D2","to":"D4"}`)
	if code != http.StatusOK {
		t.Fatalf("status %d: %s", code, data)
	}
	reply := decode[MoveReply](t, data)
	if reply.Computer == nil || reply.Computer.Move == "" {
		t.Fatalf("engine did not answer: %+v", reply)
	}
	if reply.Computer.Leaves != 20 {
		t.Fatalf("depth 1 search visited %d leaves", reply.Computer.Leaves)
	}
	if reply.SideToMove != "white" || len(reply.History) != 2 {
		t.Fatalf("unexpected state after reply: %+v", reply.Snapshot)
	}
}

func TestComputerOpensAsWhite(t *testing.T) {
	srv := newTestServer()
	g := createGame(t, srv, `{"computer":"white","depth":1}`)
	if g.Computer == nil || len(g.History) != 1 || g.SideToMove != "black" {
		t.Fatalf("engine did not open: %+v", g)
	}
}

func TestSelfPlayAdvancesOneMovePerRequest(t *testing.T) {
	srv := newTestServer()
	g := createGame(t, srv, `{"computer":"both","depth":1}`)
	if len(g.History) != 0 {
		t.Fatalf("engine-only game moved on creation: %v", g.History)
	}
	path := "/api/games/" + g.ID + "/computer"
	for i := 1; i <= 3; i++ {
		code, data := request(t, srv, http.MethodPost, path, "")
		if code != http.StatusOK {
			t.Fatalf("request %d: status %d: %s", i, code, data)
		}
		if reply := decode[MoveReply](t, data); len(reply.History) != i {
			t.Fatalf("request %d: history %v", i, reply.History)
		}
	}
}

func TestBoardSVG(t *testing.T) {
	srv := newTestServer()
	g := createGame(t, srv, `{"computer":"none"}`)
	request(t, srv, http.MethodPost, "/api/games/"+g.ID+"/moves", `{"from":"E2","to":"E4"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/games/"+g.ID+"/board.svg", nil)
	resp, err := srv.App().Test(req, -1)
	if err != nil {
		t.Fatalf("board.svg: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("content type %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<svg") {
		t.Fatalf("not an svg document: %.80s", body)
	}
	if code, _ := request(t, srv, http.MethodGet, "/api/games/"+g.ID+"/pgn", ""); code != http.StatusNotFound {
		t.Fatalf("pgn route should not exist: status %d", code)
	}
}

func TestWebsocketRequiresUpgrade(t *testing.T) {
	srv := newTestServer()
	g := createGame(t, srv, `{"computer":"none"}`)
	if code, _ := request(t, srv, http.MethodGet, "/ws/games/"+g.ID, ""); code != http.StatusUpgradeRequired {
		t.Fatalf("plain GET on websocket route: status %d", code)
	}
}

func TestHandleMessage(t *testing.T) {
	srv := newTestServer()
	g := createGame(t, srv, `{"computer":"black","depth":1}`)
	s, err := srv.manager.get(g.ID)
	if err != nil {
		t.Fatal(err)
	}
	msg, err := newMessage(MessageTypeMove, MoveRequest{From: "G1", To: "F3"})
	if err != nil {
		t.Fatal(err)
	}
	if err := srv.handleMessage(s, msg); err != nil {
		t.Fatalf("move message: %v", err)
	}
	if snap := s.Snapshot(); len(snap.History) != 2 || snap.History[0] != "g1f3" {
		t.Fatalf("history after move message: %v", snap.History)
	}
	if err := srv.handleMessage(s, Message{Type: "resign"}); err == nil {
		t.Fatal("unknown message type accepted")
	}
	bad, _ := newMessage(MessageTypeMove, MoveRequest{From: "G1", To: "G3"})
	if err := srv.handleMessage(s, bad); err == nil {
		t.Fatal("illegal move accepted")
	}
}
