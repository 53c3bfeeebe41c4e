// Package memory provides in-process implementations of handbook services.
// State kept here is lost when the process exits.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/handbook"
	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a session survives without activity.
const DefaultSessionTTL = 12 * time.Hour

// Compile-time interface verification.
var _ handbook.SessionService = (*SessionService)(nil)

// SessionService implements handbook.SessionService with a map. Sessions
// idle for longer than TTL are dropped.
type SessionService struct {
	mu       sync.Mutex
	sessions map[string]*handbook.Session

	// TTL is the idle time after which a session expires.
	TTL time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewSessionService creates a new SessionService.
func NewSessionService() *SessionService {
	return &SessionService{
		sessions: make(map[string]*handbook.Session),
		TTL:      DefaultSessionTTL,
		Now:      time.Now,
	}
}

// CreateSession creates a new session with a random ID. Expired sessions
// are swept first, so the store never holds more than the sessions active
// within one TTL.
func (s *SessionService) CreateSession(ctx context.Context) (*handbook.Session, error) {
	now := s.Now()
	session := handbook.NewSession(uuid.New().String())
	session.Touch(now)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, other := range s.sessions {
		if s.expired(other, now) {
			delete(s.sessions, id)
		}
	}
	s.sessions[session.ID] = session
	return session, nil
}

// FindSessionByID retrieves a session by ID and marks it active.
// An expired session is removed and reported as ENOTFOUND.
func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*handbook.Session, error) {
	now := s.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, handbook.Errorf(handbook.ENOTFOUND, "session not found")
	}
	if s.expired(session, now) {
		delete(s.sessions, id)
		return nil, handbook.Errorf(handbook.ENOTFOUND, "session expired")
	}
	session.Touch(now)
	return session, nil
}

// Len returns the number of stored sessions.
func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionService) expired(session *handbook.Session, now time.Time) bool {
	return s.TTL > 0 && now.Sub(session.LastSeen()) > s.TTL
}
