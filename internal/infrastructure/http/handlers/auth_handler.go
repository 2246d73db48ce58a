package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/folio/internal/application/auth"
	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
	"github.com/amirhosseinghanipour/folio/internal/infrastructure/http/middleware"
)

// AuthHandler handles /auth/* and GET /admin/session. The token is never returned in a body;
// it goes into the caller's encrypted session cookie.
type AuthHandler struct {
	register *auth.Register
	login    *auth.Login
	tokens   ports.TokenStore
	log      zerolog.Logger
}

func NewAuthHandler(register *auth.Register, login *auth.Login, tokens ports.TokenStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{register: register, login: login, tokens: tokens, log: log}
}

// Register handles POST /auth/register. Body: { "username", "password", "confirmPassword" }.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	err := h.register.Execute(r.Context(), auth.RegisterInput{
		Username:        body.Username,
		Password:        body.Password,
		ConfirmPassword: body.ConfirmPassword,
	})
	h.done(w, r, "register", body.Username, err, http.StatusCreated)
}

// Login handles POST /auth/login. Body: { "username", "password" }.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body domain.Credentials
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	err := h.login.Execute(r.Context(), body)
	h.done(w, r, "login", body.Username, err, http.StatusOK)
}

func (h *AuthHandler) done(w http.ResponseWriter, r *http.Request, event, username string, err error, okStatus int) {
	middleware.RecordAuthAttempt(event, err == nil)
	if err != nil {
		AuditLog(h.log, r, "auth."+event, username, false, err.Error())
		var locked *auth.LockedError
		if errors.As(err, &locked) {
			w.Header().Set("Retry-After", strconv.Itoa(locked.RetryAfterSeconds))
			writeErr(w, http.StatusTooManyRequests, ErrCodeLoginLocked, err.Error())
			return
		}
		writeFailure(w, h.log, err, event+" failed")
		return
	}
	AuditLog(h.log, r, "auth."+event, username, true, "")
	writeJSON(w, okStatus, map[string]bool{"success": true})
}

// Logout handles POST /auth/logout. Logging out without a session is not an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := auth.Logout(r.Context(), h.tokens); err != nil {
		h.log.Error().Err(err).Msg("clear token failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, "auth.logout", "", true, "")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Session handles GET /admin/session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	s := middleware.SessionFromContext(r.Context())
	if s == nil {
		writeErr(w, http.StatusUnauthorized, "", "login required")
		return
	}
	writeJSON(w, http.StatusOK, s)
}
