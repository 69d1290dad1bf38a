package uci

import (
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
)

// Engine identification sent in reply to "uci".
const (
	EngineName   = "chess-core"
	EngineAuthor = "chess-core developers"
)

// Handle executes one request against the session and returns the response
// lines. Failures are reported in-band as "info string" lines; the session
// stays usable.
func (s *Session) Handle(req Request) []string {
	ctx := s.log.WithField("cmd", req.Line)
	switch req.Cmd {
	case CmdUCI:
		return []string{"id name " + EngineName, "id author " + EngineAuthor, "uciok"}
	case CmdIsReady:
		return []string{"readyok"}
	case CmdNewGame:
		s.Reset()
		ctx.Debug("new game")
		return nil
	case CmdPosition:
		if err := s.SetPosition(req); err != nil {
			ctx.WithError(err).Warn("position rejected")
			return []string{"info string " + err.Error()}
		}
		return nil
	case CmdGo:
		m, ok := s.BestMove()
		if !ok {
			return []string{"bestmove 0000"}
		}
		return []string{"bestmove " + m.String()}
	case CmdPerft:
		start := time.Now()
		results := s.Perft(req.Depth)
		ctx.WithFields(log.Fields{
			"depth":   req.Depth,
			"moves":   len(results),
			"elapsed": time.Since(start).String(),
		}).Debug("perft")
		return FormatDivide(results)
	case CmdDisplay:
		return FormatBoard(s.board)
	case CmdSetOption:
		ctx.WithFields(log.Fields{"name": req.Name, "value": req.Value}).Debug("option ignored")
		return nil
	case CmdStop, CmdQuit:
		return nil
	}
	return []string{UnknownCommand(req.Line)}
}

// UnknownCommand is the reply to a line that names no command.
func UnknownCommand(line string) string {
	return fmt.Sprintf("Unknown command %q", line)
}

// ErrorResponse renders a parse failure the way the protocol reports it.
func ErrorResponse(line string, err error) string {
	if errors.Is(err, ErrUnknownCommand) {
		return UnknownCommand(line)
	}
	return "info string " + err.Error()
}
