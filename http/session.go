package http

import (
	"context"
	"net/http"

	"github.com/fwojciec/handbook"
)

// SessionCookieName is the cookie carrying the session ID.
const SessionCookieName = "handbook_session"

type sessionContextKey struct{}

// NewContextWithSession returns a new context carrying session.
func NewContextWithSession(ctx context.Context, session *handbook.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFromContext returns the session stored in ctx, if any.
func SessionFromContext(ctx context.Context) *handbook.Session {
	session, _ := ctx.Value(sessionContextKey{}).(*handbook.Session)
	return session
}

// loadSession attaches the caller's session to the request context. Safe
// requests without a known session get an unsaved blank session, so only
// requests that change state create and persist one.
func (s *Server) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var session *handbook.Session
		if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
			session, err = s.SessionService.FindSessionByID(ctx, c.Value)
			if err != nil && handbook.ErrorCode(err) != handbook.ENOTFOUND {
				s.Error(w, r, err)
				return
			}
		}

		if session == nil && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
			session = handbook.NewSession("")
		} else if session == nil {
			var err error
			if session, err = s.SessionService.CreateSession(ctx); err != nil {
				s.Error(w, r, err)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    session.ID,
				Path:     "/",
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(NewContextWithSession(ctx, session)))
	})
}
