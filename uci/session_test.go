package uci_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"

	gm "chess-core/mailbox"
	"chess-core/uci"
)

func quietLogger() log.Interface {
	return &log.Logger{Handler: discard.New(), Level: log.ErrorLevel}
}

func mustParse(t *testing.T, line string) uci.Request {
	t.Helper()
	req, err := uci.ParseRequest(line)
	if err != nil {
		t.Fatalf("ParseRequest(%q): %v", line, err)
	}
	return req
}

func TestSessionIDsAreUnique(t *testing.T) {
	a, b := uci.NewSession(quietLogger()), uci.NewSession(quietLogger())
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("session ids: %q %q", a.ID, b.ID)
	}
}

func TestHandleHandshake(t *testing.T) {
	s := uci.NewSession(quietLogger())
	out := s.Handle(mustParse(t, "uci"))
	if len(out) == 0 || out[len(out)-1] != "uciok" {
		t.Fatalf("uci: got %v", out)
	}
	if out := s.Handle(mustParse(t, "isready")); len(out) != 1 || out[0] != "readyok" {
		t.Fatalf("isready: got %v", out)
	}
}

func TestHandlePositionAndGo(t *testing.T) {
	s := uci.NewSession(quietLogger())
	if out := s.Handle(mustParse(t, "position startpos moves e2e4 e7e5")); out != nil {
		t.Fatalf("position: got %v", out)
	}
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
	if got := s.Board().FEN(); got != want {
		t.Fatalf("board: got %q want %q", got, want)
	}
	out := s.Handle(mustParse(t, "go depth 1"))
	if len(out) != 1 || !strings.HasPrefix(out[0], "bestmove ") || out[0] == "bestmove 0000" {
		t.Fatalf("go: got %v", out)
	}
}

func TestHandleGoWithoutMoves(t *testing.T) {
	s := uci.NewSession(quietLogger())
	s.Handle(mustParse(t, "position fen 7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"))
	if out := s.Handle(mustParse(t, "go")); len(out) != 1 || out[0] != "bestmove 0000" {
		t.Fatalf("go in stalemate: got %v", out)
	}
}

func TestHandlePositionStopsAtBadMove(t *testing.T) {
	s := uci.NewSession(quietLogger())
	out := s.Handle(mustParse(t, "position startpos moves e2e4 e7e5 e1e3 d7d5"))
	if len(out) != 1 || !strings.HasPrefix(out[0], "info string ") || !strings.Contains(out[0], "e1e3") {
		t.Fatalf("illegal move: got %v", out)
	}
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
	if got := s.Board().FEN(); got != want {
		t.Fatalf("board after rejected move: got %q want %q", got, want)
	}

	err := s.SetPosition(mustParse(t, "position moves e9e4"))
	if !errors.Is(err, gm.ErrInvalidMove) {
		t.Fatalf("malformed move: got %v want ErrInvalidMove", err)
	}
	err = s.SetPosition(mustParse(t, "position fen 8/8/8 w - -"))
	if !errors.Is(err, gm.ErrInvalidFEN) {
		t.Fatalf("bad fen: got %v want ErrInvalidFEN", err)
	}
	if got := s.Board().FEN(); got != want {
		t.Fatalf("bad fen replaced the board: %q", got)
	}
}

func TestHandlePositionPromotion(t *testing.T) {
	s := uci.NewSession(quietLogger())
	s.Handle(mustParse(t, "position fen 1n5k/P7/8/8/8/8/8/7K w - - 0 1 moves a7b8n"))
	if got := s.Board().PieceAt(gm.B8); got != gm.WhiteKnight {
		t.Fatalf("b8 after a7b8n: got %v", got)
	}
}

func TestHandlePerftDivide(t *testing.T) {
	s := uci.NewSession(quietLogger())
	out := s.Handle(mustParse(t, "go perft 2"))
	if len(out) != 22 {
		t.Fatalf("perft lines: got %d want 22", len(out))
	}
	if out[0] != "a2a3: 20" || out[19] != "h2h4: 20" {
		t.Fatalf("perft order: first %q last %q", out[0], out[19])
	}
	if out[20] != "" || out[21] != "400" {
		t.Fatalf("perft footer: got %q %q", out[20], out[21])
	}
}

func TestHandleNewGameResets(t *testing.T) {
	s := uci.NewSession(quietLogger())
	s.Handle(mustParse(t, "position startpos moves d2d4"))
	s.Handle(mustParse(t, "ucinewgame"))
	if s.Board().FEN() != gm.FENStartPos {
		t.Fatalf("ucinewgame: got %q", s.Board().FEN())
	}
}

func TestHandleDisplay(t *testing.T) {
	s := uci.NewSession(quietLogger())
	out := s.Handle(mustParse(t, "d"))
	joined := strings.Join(out, "\n")
	if !strings.Contains(joined, "Fen: "+gm.FENStartPos) {
		t.Fatalf("display missing fen:\n%s", joined)
	}
	if !strings.Contains(joined, "| r | n | b | q | k | b | n | r | 8") {
		t.Fatalf("display missing rank 8:\n%s", joined)
	}
}

func TestSessionUndo(t *testing.T) {
	s := uci.NewSession(quietLogger())
	if _, ok := s.Undo(); ok {
		t.Fatalf("undo on fresh session reported a move")
	}
	if _, err := s.Play("g1f3"); err != nil {
		t.Fatal(err)
	}
	m, ok := s.Undo()
	if !ok || m.String() != "g1f3" || s.Board().FEN() != gm.FENStartPos {
		t.Fatalf("undo: got %s %v %q", m, ok, s.Board().FEN())
	}
}
