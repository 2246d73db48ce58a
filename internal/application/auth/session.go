package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
	domerrors "github.com/amirhosseinghanipour/folio/internal/domain/errors"
)

// CurrentSession reads the stored token and describes it. A token whose claims cannot be decoded
// is still a session (the content API may issue opaque tokens); it just carries no details.
type CurrentSession struct {
	tokens  ports.TokenStore
	decoder ports.SessionDecoder
	now     func() time.Time
}

func NewCurrentSession(tokens ports.TokenStore, decoder ports.SessionDecoder) *CurrentSession {
	return &CurrentSession{tokens: tokens, decoder: decoder, now: time.Now}
}

// Execute returns ErrNoSession when nothing is stored and ErrSessionExpired when the token's exp has passed.
func (uc *CurrentSession) Execute(ctx context.Context) (*domain.Session, error) {
	token, err := uc.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return nil, domerrors.ErrNoSession
	}
	s, err := uc.decoder.Decode(token)
	if err != nil {
		return &domain.Session{}, nil
	}
	if s.Expired(uc.now()) {
		return nil, domerrors.ErrSessionExpired
	}
	return s, nil
}
