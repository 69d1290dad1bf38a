package httpapi

import (
	"errors"
	"sync"

	"github.com/apex/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-core/uci"
)

// ErrSessionNotFound is returned for an id the registry does not hold.
var ErrSessionNotFound = errors.New("session not found")

type entry struct {
	mu      sync.Mutex
	session *uci.Session
}

// Registry maps session ids to sessions. The map has its own lock and every
// session has a mutex of its own, so requests on different sessions never
// wait for each other.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	log      log.Interface
}

// NewRegistry returns an empty registry.
func NewRegistry(logger log.Interface) *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		log:      logger,
	}
}

// Create starts a session on fen, or on the starting position when fen is
// empty. Positions without exactly one king per side are refused.
func (r *Registry) Create(fen string) (*uci.Session, error) {
	var s *uci.Session
	if fen == "" {
		s = uci.NewSession(r.log)
	} else {
		var err error
		if s, err = uci.NewSessionFromFEN(r.log, fen); err != nil {
			return nil, err
		}
		if err := s.Board().Validate(); err != nil {
			return nil, err
		}
	}
	r.mu.Lock()
	r.sessions[s.ID] = &entry{session: s}
	r.mu.Unlock()
	return s, nil
}

// With runs fn while holding the session's lock.
func (r *Registry) With(id string, fn func(*uci.Session) error) error {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Delete drops a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// IDs lists the live session ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := maps.Keys(r.sessions)
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
