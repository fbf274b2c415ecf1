package httpapi

import (
	"sync"

	"github.com/google/uuid"

	"github.com/doeshing/nlterm/internal/application/terminal"
	"github.com/doeshing/nlterm/internal/domain"
)

// DefaultSessionID names the session used by requests without a session header.
const DefaultSessionID = "default"

// Factory builds the terminal for a new session.
type Factory func(id string) *terminal.Service

// session serialises requests against one terminal.
type session struct {
	mu  sync.Mutex
	svc *terminal.Service
}

// Registry owns every HTTP session. Requests on one session run one at a
// time; different sessions proceed independently.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	factory  Factory
	max      int
}

// NewRegistry creates a registry holding at most max sessions (including
// the default one). max <= 0 uses domain.DefaultMaxSessions.
func NewRegistry(factory Factory, max int) *Registry {
	if max <= 0 {
		max = domain.DefaultMaxSessions
	}
	r := &Registry{
		sessions: make(map[string]*session),
		factory:  factory,
		max:      max,
	}
	r.sessions[DefaultSessionID] = &session{svc: factory(DefaultSessionID)}
	return r
}

// Create starts a new session and returns its id.
func (r *Registry) Create() (string, *terminal.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sessions) >= r.max {
		return "", nil, domain.ErrSessionLimit
	}
	id := uuid.NewString()
	s := &session{svc: r.factory(id)}
	r.sessions[id] = s
	return id, s.svc, nil
}

// With runs fn while holding the lock of session id. An empty id selects
// the default session.
func (r *Registry) With(id string, fn func(*terminal.Service)) error {
	if id == "" {
		id = DefaultSessionID
	}
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.svc)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
