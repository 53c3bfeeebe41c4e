package handbook

import (
	"context"
	"sync"
	"time"
)

// Session holds one user's navigation state. A session selects at most one
// entry at a time; the selection changes only through Select and Clear.
type Session struct {
	ID string `json:"id"`

	mu       sync.Mutex
	selected int
	hasValue bool
	lastSeen time.Time

	// notice is the outcome of the last report, shown once.
	notice    DispatchStatus
	hasNotice bool
}

// NewSession returns a session with nothing selected.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// Select makes id the current selection. The id is not checked against the
// catalog; an unknown id renders as if nothing were selected.
func (s *Session) Select(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
	s.hasValue = true
}

// Current returns the selected entry ID and whether one is set.
func (s *Session) Current() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.hasValue
}

// Clear drops the current selection.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = 0
	s.hasValue = false
}

// Touch records activity on the session at t.
func (s *Session) Touch(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = t
}

// LastSeen returns the time of the last recorded activity.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SetNotice stores the outcome of a report submission until it is taken.
func (s *Session) SetNotice(status DispatchStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = status
	s.hasNotice = true
}

// TakeNotice returns the pending report outcome and clears it.
func (s *Session) TakeNotice() (DispatchStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.notice, s.hasNotice
	s.notice, s.hasNotice = "", false
	return status, ok
}

// SessionService represents a service for managing sessions.
type SessionService interface {
	// CreateSession creates a new session with nothing selected.
	CreateSession(ctx context.Context) (*Session, error)

	// FindSessionByID retrieves a session by ID.
	// Returns ENOTFOUND if the session does not exist.
	FindSessionByID(ctx context.Context, id string) (*Session, error)
}
