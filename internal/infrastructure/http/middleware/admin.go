package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/folio/internal/domain"
	domerrors "github.com/amirhosseinghanipour/folio/internal/domain/errors"
)

// SessionSource resolves the caller's admin session (auth.CurrentSession).
type SessionSource interface {
	Execute(ctx context.Context) (*domain.Session, error)
}

// RequireSession gates /admin/* on an unexpired token in the caller's own session and puts the
// decoded session in the context.
func RequireSession(sessions SessionSource, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := sessions.Execute(r.Context())
			switch {
			case errors.Is(err, domerrors.ErrNoSession):
				writeErr(w, http.StatusUnauthorized, "unauthorized", "login required")
				return
			case errors.Is(err, domerrors.ErrSessionExpired):
				writeErr(w, http.StatusUnauthorized, "session_expired", "session expired, login again")
				return
			case err != nil:
				log.Error().Err(err).Msg("resolve session failed")
				writeErr(w, http.StatusInternalServerError, "internal_error", "internal error")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

func writeErr(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}
