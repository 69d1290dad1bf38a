package httpapi

import (
	"github.com/apex/log"
	"github.com/gofiber/websocket/v2"
)

// streamMessage is one websocket frame of a streamed divide. Root moves come
// first in sorted order, then a final frame carrying only the total.
type streamMessage struct {
	Move  string  `json:"move,omitempty"`
	Count uint64  `json:"count"`
	Total *uint64 `json:"total,omitempty"`
	Error string  `json:"error,omitempty"`
}

func (s *Server) streamPerft(c *websocket.Conn) {
	id := c.Params("id")
	logger := s.log.WithField("session", id)
	defer c.Close()

	depth, err := s.depthParam(c.Params("depth"))
	if err != nil {
		s.streamError(c, logger, err)
		return
	}
	b, err := s.snapshot(id)
	if err != nil {
		s.streamError(c, logger, err)
		return
	}
	resp := divide(b, depth)
	for _, line := range resp.Moves {
		if err := c.WriteJSON(streamMessage{Move: line.Move, Count: line.Count}); err != nil {
			logger.WithError(err).Warn("perft stream closed")
			return
		}
	}
	if err := c.WriteJSON(streamMessage{Total: &resp.Total}); err != nil {
		logger.WithError(err).Warn("perft stream closed")
		return
	}
	logger.WithField("depth", depth).Debug("perft streamed")
}

func (s *Server) streamError(c *websocket.Conn, logger log.Interface, err error) {
	logger.WithError(err).Warn("perft stream rejected")
	if werr := c.WriteJSON(streamMessage{Error: err.Error()}); werr != nil {
		logger.WithError(werr).Warn("perft stream closed")
	}
}
