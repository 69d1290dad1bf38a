// Package httpapi serves game sessions over HTTP and websockets.
package httpapi

import (
	"errors"
	"time"

	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	gm "chess-core/mailbox"
)

// DefaultMaxPerftDepth caps perft requests when Config leaves it unset.
const DefaultMaxPerftDepth = 5

// Config tunes the service.
type Config struct {
	// MaxPerftDepth is the deepest perft a client may ask for.
	MaxPerftDepth int
}

// Server owns the session registry and the fiber application routing to it.
type Server struct {
	cfg      Config
	sessions *Registry
	log      log.Interface
	app      *fiber.App
}

// New builds the service. A nil logger selects the package-level apex logger.
func New(cfg Config, logger log.Interface) *Server {
	if cfg.MaxPerftDepth <= 0 {
		cfg.MaxPerftDepth = DefaultMaxPerftDepth
	}
	if logger == nil {
		logger = log.Log
	}
	s := &Server{
		cfg:      cfg,
		sessions: NewRegistry(logger),
		log:      logger,
	}
	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.routes()
	return s
}

// App exposes the fiber application, for Listen and for tests.
func (s *Server) App() *fiber.App { return s.app }

// Sessions exposes the registry.
func (s *Server) Sessions() *Registry { return s.sessions }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.log.WithField("addr", addr).Info("listening")
	return s.app.Listen(addr)
}

// Shutdown stops the listener and waits for active requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) routes() {
	s.app.Use(s.logRequest)

	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	s.app.Get("/ws/sessions/:id/perft/:depth", websocket.New(s.streamPerft))

	api := s.app.Group("/sessions")
	api.Get("/", s.listSessions)
	api.Post("/", s.createSession)
	api.Get("/:id", s.getSession)
	api.Delete("/:id", s.deleteSession)
	api.Post("/:id/moves", s.playMove)
	api.Delete("/:id/moves", s.undoMove)
	api.Get("/:id/perft/:depth", s.perft)
	api.Get("/:id/board.svg", s.boardSVG)
}

func (s *Server) logRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.WithFields(log.Fields{
		"method":  c.Method(),
		"path":    c.Path(),
		"status":  c.Response().StatusCode(),
		"elapsed": time.Since(start).String(),
	}).Debug("request")
	return err
}

// handleError renders every error as {"error": "..."} with a status derived
// from its kind.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, gm.ErrInvalidFEN),
		errors.Is(err, gm.ErrInvalidMove),
		errors.Is(err, gm.ErrIllegalMove),
		errors.Is(err, gm.ErrInvalidSquare),
		errors.Is(err, gm.ErrEmptySquare),
		errors.Is(err, gm.ErrNoKing),
		errors.Is(err, errBadDepth),
		errors.Is(err, errNothingToUndo):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
