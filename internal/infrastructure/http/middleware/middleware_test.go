package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/folio/internal/domain"
	domerrors "github.com/amirhosseinghanipour/folio/internal/domain/errors"
)

type sessionFunc func(ctx context.Context) (*domain.Session, error)

func (f sessionFunc) Execute(ctx context.Context) (*domain.Session, error) { return f(ctx) }

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name     string
		session  *domain.Session
		err      error
		wantCode int
		wantErr  string
	}{
		{"no token", nil, domerrors.ErrNoSession, http.StatusUnauthorized, "unauthorized"},
		{"expired", nil, domerrors.ErrSessionExpired, http.StatusUnauthorized, "session_expired"},
		{"storage failure", nil, errors.New("disk"), http.StatusInternalServerError, "internal_error"},
		{"valid", &domain.Session{Username: "admin"}, nil, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *domain.Session
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = SessionFromContext(r.Context())
			})
			mw := RequireSession(sessionFunc(func(context.Context) (*domain.Session, error) {
				return tt.session, tt.err
			}), zerolog.Nop())

			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/projects", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantErr != "" {
				var body map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, tt.wantErr, body["code"])
				assert.Nil(t, seen)
				return
			}
			assert.Equal(t, tt.session, seen)
		})
	}
}

func TestRatingLimiter_PerProject(t *testing.T) {
	limit, err := NewRatingLimiter("1-M")
	require.NoError(t, err)
	r := chi.NewRouter()
	r.With(limit).Post("/projects/{id}/rate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	do := func(id string) int {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/projects/"+id+"/rate", nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, do("p1"))
	assert.Equal(t, http.StatusTooManyRequests, do("p1"))
	assert.Equal(t, http.StatusNoContent, do("p2"), "another project has its own budget")
}

func TestRateLimiters_EmptyDisables(t *testing.T) {
	ip, err := NewIPRateLimiter("")
	require.NoError(t, err)
	rating, err := NewRatingLimiter("")
	require.NoError(t, err)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		ip(rating(h)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	_, err = NewIPRateLimiter("bogus")
	assert.Error(t, err)
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://folio.example"}, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "https://folio.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://folio.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}
