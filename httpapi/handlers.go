package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/exp/slices"

	gm "chess-core/mailbox"
	"chess-core/render"
	"chess-core/uci"
)

var (
	errBadDepth      = errors.New("invalid perft depth")
	errNothingToUndo = errors.New("no move to undo")
)

type createRequest struct {
	FEN string `json:"fen"`
}

type moveRequest struct {
	Move string `json:"move"`
}

// SessionState is the JSON view of a session.
type SessionState struct {
	ID         string   `json:"id"`
	FEN        string   `json:"fen"`
	SideToMove string   `json:"sideToMove"`
	InCheck    bool     `json:"inCheck"`
	Status     string   `json:"status"`
	LegalMoves []string `json:"legalMoves"`
	LastMove   string   `json:"lastMove,omitempty"`
}

// PerftLine is one root move of a divide.
type PerftLine struct {
	Move  string `json:"move"`
	Count uint64 `json:"count"`
}

// PerftResponse is a complete divide.
type PerftResponse struct {
	Depth int         `json:"depth"`
	Moves []PerftLine `json:"moves"`
	Total uint64      `json:"total"`
}

func stateOf(s *uci.Session) SessionState {
	b := s.Board()
	legal := b.LegalMoves()
	moves := make([]string, 0, len(legal))
	for _, m := range legal {
		moves = append(moves, m.String())
	}
	slices.Sort(moves)
	st := SessionState{
		ID:         s.ID,
		FEN:        b.FEN(),
		SideToMove: b.SideToMove().String(),
		InCheck:    b.InCheck(),
		Status:     s.Status().String(),
		LegalMoves: moves,
	}
	if m, ok := b.LastMove(); ok {
		st.LastMove = m.String()
	}
	return st
}

func (s *Server) listSessions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"sessions": s.sessions.IDs()})
}

func (s *Server) createSession(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	sess, err := s.sessions.Create(req.FEN)
	if err != nil {
		return err
	}
	sess.Logger().WithField("fen", sess.Board().FEN()).Info("session created")
	return c.Status(fiber.StatusCreated).JSON(stateOf(sess))
}

func (s *Server) getSession(c *fiber.Ctx) error {
	var st SessionState
	err := s.sessions.With(c.Params("id"), func(sess *uci.Session) error {
		st = stateOf(sess)
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(st)
}

func (s *Server) deleteSession(c *fiber.Ctx) error {
	if err := s.sessions.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) playMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	var st SessionState
	err := s.sessions.With(c.Params("id"), func(sess *uci.Session) error {
		if _, err := sess.Play(req.Move); err != nil {
			sess.Logger().WithError(err).Warn("move rejected")
			return err
		}
		st = stateOf(sess)
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(st)
}

func (s *Server) undoMove(c *fiber.Ctx) error {
	var st SessionState
	err := s.sessions.With(c.Params("id"), func(sess *uci.Session) error {
		if _, ok := sess.Undo(); !ok {
			return errNothingToUndo
		}
		st = stateOf(sess)
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(st)
}

func (s *Server) depthParam(raw string) (int, error) {
	depth, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w %q", errBadDepth, raw)
	}
	if depth < 1 || depth > s.cfg.MaxPerftDepth {
		return 0, fmt.Errorf("%w %d: must be between 1 and %d", errBadDepth, depth, s.cfg.MaxPerftDepth)
	}
	return depth, nil
}

// snapshot copies the session's board so long computations run without
// holding the session lock.
func (s *Server) snapshot(id string) (*gm.Board, error) {
	var b *gm.Board
	err := s.sessions.With(id, func(sess *uci.Session) error {
		b = sess.Board().Clone()
		return nil
	})
	return b, err
}

func divide(b *gm.Board, depth int) PerftResponse {
	results := gm.Perft(b, depth)
	counts := uci.DivideCounts(results)
	resp := PerftResponse{Depth: depth, Moves: make([]PerftLine, 0, len(counts)), Total: gm.Total(results)}
	for _, m := range uci.SortedMoves(counts) {
		resp.Moves = append(resp.Moves, PerftLine{Move: m, Count: counts[m]})
	}
	return resp
}

func (s *Server) perft(c *fiber.Ctx) error {
	depth, err := s.depthParam(c.Params("depth"))
	if err != nil {
		return err
	}
	b, err := s.snapshot(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(divide(b, depth))
}

func (s *Server) boardSVG(c *fiber.Ctx) error {
	b, err := s.snapshot(c.Params("id"))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	render.SVG(&buf, b)
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}
