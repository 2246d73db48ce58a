package middleware

import (
	"context"

	"github.com/amirhosseinghanipour/folio/internal/domain"
)

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession injects the admin session into the context.
func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// SessionFromContext returns the session set by RequireSession, or nil.
func SessionFromContext(ctx context.Context) *domain.Session {
	v := ctx.Value(sessionContextKey)
	if v == nil {
		return nil
	}
	s, _ := v.(*domain.Session)
	return s
}
