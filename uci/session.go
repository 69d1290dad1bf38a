package uci

import (
	"fmt"

	"github.com/apex/log"
	"github.com/google/uuid"

	"chess-core/engine"
	gm "chess-core/mailbox"
)

// Session owns one board and its move history. It is not safe for concurrent
// use; the Runner and the HTTP service each serialize access to a session.
type Session struct {
	ID    string
	board *gm.Board
	log   log.Interface
}

// NewSession starts a session on the standard starting position. A nil
// logger selects the package-level apex logger.
func NewSession(logger log.Interface) *Session {
	if logger == nil {
		logger = log.Log
	}
	id := uuid.NewString()
	return &Session{
		ID:    id,
		board: gm.NewBoard(),
		log:   logger.WithField("session", id),
	}
}

// NewSessionFromFEN starts a session on the given position.
func NewSessionFromFEN(logger log.Interface, fen string) (*Session, error) {
	b, err := gm.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	s := NewSession(logger)
	s.board = b
	return s, nil
}

// Board exposes the session's board. Callers must not retain it across
// requests that may replace it.
func (s *Session) Board() *gm.Board { return s.board }

// Logger returns the session-scoped logger.
func (s *Session) Logger() log.Interface { return s.log }

// Reset returns to the starting position and drops the history.
func (s *Session) Reset() {
	s.board = gm.NewBoard()
}

// SetPosition applies a position request. A FEN that does not parse leaves
// the board untouched; a bad move leaves the board at the last good position.
func (s *Session) SetPosition(req Request) error {
	switch {
	case req.Startpos:
		s.board = gm.NewBoard()
	case req.FEN != "":
		b, err := gm.ParseFEN(req.FEN)
		if err != nil {
			return err
		}
		s.board = b
	}
	return s.ApplyMoves(req.Moves)
}

// ApplyMoves plays coordinate-notation moves in order, stopping at the first
// one that is malformed or illegal.
func (s *Session) ApplyMoves(moves []string) error {
	for i, str := range moves {
		if _, err := s.Play(str); err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return nil
}

// Play parses a single move, matches it against the legal moves and applies it.
func (s *Session) Play(str string) (gm.Move, error) {
	m, err := gm.ParseMove(str)
	if err != nil {
		return gm.NullMove, err
	}
	legal, err := s.board.FindLegal(m)
	if err != nil {
		return gm.NullMove, err
	}
	if err := s.board.Move(legal); err != nil {
		return gm.NullMove, err
	}
	return legal, nil
}

// Undo takes back the last move. It reports false when there is none.
func (s *Session) Undo() (gm.Move, bool) {
	m, ok := s.board.LastMove()
	if ok {
		s.board.Undo()
	}
	return m, ok
}

// Perft returns the divide of the current position.
func (s *Session) Perft(depth int) []gm.PerftResult {
	return gm.Perft(s.board, depth)
}

// BestMove picks a move with the one-ply search.
func (s *Session) BestMove() (gm.Move, bool) {
	return engine.BestMove(s.board)
}

// Status reports whether the game on the board is still running.
func (s *Session) Status() engine.GameStatus {
	return engine.Status(s.board)
}
