package ports

import (
	"context"

	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// TokenKey is the fixed storage key the bearer token is persisted under.
const TokenKey = "token"

// TokenStore persists the bearer token. Token returns "" and no error when nothing is stored.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// SessionDecoder reads the claims of a bearer token without verifying it.
type SessionDecoder interface {
	Decode(token string) (*domain.Session, error)
}
