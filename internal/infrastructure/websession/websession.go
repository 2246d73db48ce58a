package websession

import (
	"context"
	"crypto/sha256"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/folio/internal/application/ports"
)

// CookieName is the cookie carrying a client's admin session.
const CookieName = "folio_session"

var errNoClient = errors.New("no client session in context")

type contextKey struct{}

type clientSession struct {
	w    http.ResponseWriter
	r    *http.Request
	sess *sessions.Session
}

// Store keeps the content API token inside each client's cookie session, so every browser logs in
// on its own. Code running outside a request (store init) reads the fallback store instead; writes
// always need a client session.
type Store struct {
	store    sessions.Store
	fallback ports.TokenStore
	log      zerolog.Logger
}

// NewCookieStore returns a cookie store that signs and encrypts admin sessions. Both keys are
// derived from secret.
func NewCookieStore(secret []byte, maxAge time.Duration, secure bool) *sessions.CookieStore {
	hashKey := deriveKey("hash", secret)
	blockKey := deriveKey("block", secret)
	cs := sessions.NewCookieStore(hashKey, blockKey)
	cs.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	cs.MaxAge(int(maxAge.Seconds()))
	return cs
}

func deriveKey(purpose string, secret []byte) []byte {
	sum := sha256.Sum256(append([]byte("folio-session-"+purpose+":"), secret...))
	return sum[:]
}

// New wraps a gorilla session store. fallback may be nil.
func New(store sessions.Store, fallback ports.TokenStore, log zerolog.Logger) *Store {
	return &Store{store: store, fallback: fallback, log: log}
}

// Middleware loads the caller's session into the request context. An unreadable cookie
// (bad signature, rotated secret) yields an empty session.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.store.Get(r, CookieName)
		if err != nil {
			s.log.Debug().Err(err).Msg("discarding unreadable session cookie")
		}
		if sess == nil {
			sess = sessions.NewSession(s.store, CookieName)
			sess.Options = &sessions.Options{Path: "/"}
		}
		cs := &clientSession{w: w, r: r, sess: sess}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, cs)))
	})
}

func fromContext(ctx context.Context) *clientSession {
	cs, _ := ctx.Value(contextKey{}).(*clientSession)
	return cs
}

func (s *Store) Token(ctx context.Context) (string, error) {
	cs := fromContext(ctx)
	if cs == nil {
		if s.fallback == nil {
			return "", nil
		}
		return s.fallback.Token(ctx)
	}
	token, _ := cs.sess.Values[ports.TokenKey].(string)
	return token, nil
}

// SetToken stores the token in the caller's session and writes the cookie. It must run before
// the response body is written.
func (s *Store) SetToken(ctx context.Context, token string) error {
	cs := fromContext(ctx)
	if cs == nil {
		return errNoClient
	}
	cs.sess.Values[ports.TokenKey] = token
	return cs.sess.Save(cs.r, cs.w)
}

// ClearToken drops the caller's session cookie. Other clients are unaffected.
func (s *Store) ClearToken(ctx context.Context) error {
	cs := fromContext(ctx)
	if cs == nil {
		return errNoClient
	}
	delete(cs.sess.Values, ports.TokenKey)
	cs.sess.Options.MaxAge = -1
	return cs.sess.Save(cs.r, cs.w)
}

var _ ports.TokenStore = (*Store)(nil)
