package httpapi_test

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	fws "github.com/fasthttp/websocket"

	"chess-core/httpapi"
)

func newServer() *httpapi.Server {
	return httpapi.New(httpapi.Config{MaxPerftDepth: 3}, &log.Logger{Handler: discard.New(), Level: log.ErrorLevel})
}

func do(t *testing.T, s *httpapi.Server, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
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

func create(t *testing.T, s *httpapi.Server, body string) httpapi.SessionState {
	t.Helper()
	code, data := do(t, s, http.MethodPost, "/sessions", body)
	if code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", code, data)
	}
	return decode[httpapi.SessionState](t, data)
}

func TestCreateAndGetSession(t *testing.T) {
	s := newServer()
	st := create(t, s, "")
	if st.ID == "" || st.SideToMove != "white" || len(st.LegalMoves) != 20 || st.Status != "ongoing" {
		t.Fatalf("created state: %+v", st)
	}
	code, data := do(t, s, http.MethodGet, "/sessions/"+st.ID, "")
	if code != http.StatusOK {
		t.Fatalf("get: status %d", code)
	}
	got := decode[httpapi.SessionState](t, data)
	if got.FEN != st.FEN || got.LegalMoves[0] != "a2a3" {
		t.Fatalf("get state: %+v", got)
	}
	code, data = do(t, s, http.MethodGet, "/sessions", "")
	if code != http.StatusOK || !strings.Contains(string(data), st.ID) {
		t.Fatalf("list: status %d body %s", code, data)
	}
}

func TestCreateFromFEN(t *testing.T) {
	s := newServer()
	st := create(t, s, `{"fen":"7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1"}`)
	if st.FEN != "7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1" {
		t.Fatalf("fen: got %q", st.FEN)
	}
	for _, body := range []string{`{"fen":"8/8/8 w - -"}`, `{"fen":"8/8/8/8/8/8/8/8 w - - 0 1"}`, `{"fen":`} {
		if code, data := do(t, s, http.MethodPost, "/sessions", body); code != http.StatusBadRequest {
			t.Fatalf("create %s: status %d body %s", body, code, data)
		}
	}
}

func TestPlayAndUndoMoves(t *testing.T) {
	s := newServer()
	id := create(t, s, "").ID
	code, data := do(t, s, http.MethodPost, "/sessions/"+id+"/moves", `{"move":"e2e4"}`)
	if code != http.StatusOK {
		t.Fatalf("move: status %d body %s", code, data)
	}
	st := decode[httpapi.SessionState](t, data)
	if st.SideToMove != "black" || st.LastMove != "e2e4" || !strings.Contains(st.FEN, " e3 ") {
		t.Fatalf("after e2e4: %+v", st)
	}

	code, data = do(t, s, http.MethodPost, "/sessions/"+id+"/moves", `{"move":"e2e4"}`)
	if code != http.StatusBadRequest || !strings.Contains(string(data), "error") {
		t.Fatalf("illegal move: status %d body %s", code, data)
	}
	code, _ = do(t, s, http.MethodPost, "/sessions/"+id+"/moves", `{"move":"z9"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("malformed move: status %d", code)
	}

	code, data = do(t, s, http.MethodDelete, "/sessions/"+id+"/moves", "")
	if code != http.StatusOK {
		t.Fatalf("undo: status %d body %s", code, data)
	}
	if st := decode[httpapi.SessionState](t, data); st.SideToMove != "white" || st.LastMove != "" {
		t.Fatalf("after undo: %+v", st)
	}
	if code, _ = do(t, s, http.MethodDelete, "/sessions/"+id+"/moves", ""); code != http.StatusBadRequest {
		t.Fatalf("undo on empty history: status %d", code)
	}
}

func TestCheckmateStatus(t *testing.T) {
	s := newServer()
	id := create(t, s, `{"fen":"7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1"}`).ID
	code, data := do(t, s, http.MethodPost, "/sessions/"+id+"/moves", `{"move":"g6g7"}`)
	if code != http.StatusOK {
		t.Fatalf("move: status %d body %s", code, data)
	}
	st := decode[httpapi.SessionState](t, data)
	if st.Status != "checkmate" || !st.InCheck || len(st.LegalMoves) != 0 {
		t.Fatalf("after g6g7: %+v", st)
	}
}

func TestPerftEndpoint(t *testing.T) {
	s := newServer()
	id := create(t, s, "").ID
	code, data := do(t, s, http.MethodGet, "/sessions/"+id+"/perft/2", "")
	if code != http.StatusOK {
		t.Fatalf("perft: status %d body %s", code, data)
	}
	resp := decode[httpapi.PerftResponse](t, data)
	if resp.Total != 400 || len(resp.Moves) != 20 || resp.Moves[0].Move != "a2a3" || resp.Moves[0].Count != 20 {
		t.Fatalf("perft: %+v", resp)
	}
	for _, depth := range []string{"0", "4", "x"} {
		if code, _ := do(t, s, http.MethodGet, "/sessions/"+id+"/perft/"+depth, ""); code != http.StatusBadRequest {
			t.Fatalf("perft depth %s: status %d", depth, code)
		}
	}
}

func TestBoardSVG(t *testing.T) {
	s := newServer()
	id := create(t, s, "").ID
	req := httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/board.svg", nil)
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("svg: status %d type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<svg") {
		t.Fatalf("svg body: %s", body)
	}
}

func TestUnknownSession(t *testing.T) {
	s := newServer()
	for _, path := range []string{"/sessions/nope", "/sessions/nope/perft/1", "/sessions/nope/board.svg"} {
		if code, _ := do(t, s, http.MethodGet, path, ""); code != http.StatusNotFound {
			t.Fatalf("GET %s: status %d want 404", path, code)
		}
	}
	if code, _ := do(t, s, http.MethodDelete, "/sessions/nope", ""); code != http.StatusNotFound {
		t.Fatalf("DELETE: status %d want 404", code)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newServer()
	id := create(t, s, "").ID
	if code, _ := do(t, s, http.MethodDelete, "/sessions/"+id, ""); code != http.StatusNoContent {
		t.Fatalf("delete: status %d", code)
	}
	if s.Sessions().Len() != 0 {
		t.Fatalf("registry still holds %v", s.Sessions().IDs())
	}
	if code, _ := do(t, s, http.MethodGet, "/sessions/"+id, ""); code != http.StatusNotFound {
		t.Fatalf("get after delete: status %d", code)
	}
}

func TestWebsocketRequiresUpgrade(t *testing.T) {
	s := newServer()
	id := create(t, s, "").ID
	if code, _ := do(t, s, http.MethodGet, "/ws/sessions/"+id+"/perft/1", ""); code != http.StatusUpgradeRequired {
		t.Fatalf("plain GET on websocket route: status %d", code)
	}
}

func TestWebsocketStreamsDivide(t *testing.T) {
	s := newServer()
	id := create(t, s, "").ID
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go s.App().Listener(ln)
	defer s.Shutdown()

	conn, _, err := fws.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws/sessions/"+id+"/perft/2", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	type frame struct {
		Move  string  `json:"move"`
		Count uint64  `json:"count"`
		Total *uint64 `json:"total"`
	}
	var moves []string
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("read after %d frames: %v", len(moves), err)
		}
		if f.Total != nil {
			if *f.Total != 400 {
				t.Fatalf("total: got %d want 400", *f.Total)
			}
			break
		}
		if f.Count != 20 {
			t.Fatalf("%s: got %d want 20", f.Move, f.Count)
		}
		moves = append(moves, f.Move)
	}
	if len(moves) != 20 || moves[0] != "a2a3" || moves[19] != "h2h4" {
		t.Fatalf("streamed moves: %v", moves)
	}
}

func TestWebsocketStreamsZeroCounts(t *testing.T) {
	s := newServer()
	// g6g7 mates, so its depth 2 subtree is empty
	id := create(t, s, `{"fen":"7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1"}`).ID
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go s.App().Listener(ln)
	defer s.Shutdown()

	conn, _, err := fws.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws/sessions/"+id+"/perft/2", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("stream ended without a g6g7 frame: %v", err)
		}
		if strings.Contains(string(data), `"total"`) {
			t.Fatalf("stream ended without a g6g7 frame")
		}
		if strings.Contains(string(data), `"g6g7"`) {
			if string(data) != `{"move":"g6g7","count":0}` {
				t.Fatalf("mating move frame: got %s", data)
			}
			return
		}
	}
}

func TestWebsocketRejectsBadDepth(t *testing.T) {
	s := newServer()
	id := create(t, s, "").ID
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go s.App().Listener(ln)
	defer s.Shutdown()

	conn, _, err := fws.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws/sessions/"+id+"/perft/9", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "invalid perft depth") {
		t.Fatalf("error frame: got %s", data)
	}
}
