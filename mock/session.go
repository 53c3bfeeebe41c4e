package mock

import (
	"context"

	"github.com/fwojciec/handbook"
)

var _ handbook.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of handbook.SessionService.
type SessionService struct {
	CreateSessionFn   func(ctx context.Context) (*handbook.Session, error)
	FindSessionByIDFn func(ctx context.Context, id string) (*handbook.Session, error)
}

func (s *SessionService) CreateSession(ctx context.Context) (*handbook.Session, error) {
	return s.CreateSessionFn(ctx)
}

func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*handbook.Session, error) {
	return s.FindSessionByIDFn(ctx, id)
}
