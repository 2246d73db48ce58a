package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	mw "github.com/amirhosseinghanipour/folio/internal/infrastructure/http/middleware"
)

// AuditLog logs an admin or auth action with who did it (when a session is known) and from where.
func AuditLog(log zerolog.Logger, r *http.Request, event, target string, success bool, errMsg string) {
	ev := log.Info()
	if !success {
		ev = log.Warn()
	}
	ev = ev.
		Str("event", event).
		Str("ip", r.RemoteAddr).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("success", success)
	if target != "" {
		ev = ev.Str("target", target)
	}
	if s := mw.SessionFromContext(r.Context()); s != nil && s.Username != "" {
		ev = ev.Str("username", s.Username)
	}
	if errMsg != "" {
		ev = ev.Str("error", errMsg)
	}
	ev.Msg("audit")
}
