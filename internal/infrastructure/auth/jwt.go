package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// ClaimsDecoder implements ports.SessionDecoder. The signing key lives with the content API, so the
// signature is not checked here; the decoded session is only used to gate and describe the admin surface.
type ClaimsDecoder struct {
	parser *jwt.Parser
}

type sessionClaims struct {
	jwt.RegisteredClaims
	ID       string `json:"id,omitempty"`       // some backends put the user id here instead of sub
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

func NewClaimsDecoder() *ClaimsDecoder {
	return &ClaimsDecoder{parser: jwt.NewParser()}
}

// Decode parses the token payload without verifying its signature.
func (d *ClaimsDecoder) Decode(tokenString string) (*domain.Session, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}
	claims := &sessionClaims{}
	if _, _, err := d.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("decode token claims: %w", err)
	}
	s := &domain.Session{
		Subject:  claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}
	if s.Subject == "" {
		s.Subject = claims.ID
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		s.ExpiresAt = &exp
	}
	return s, nil
}

var _ ports.SessionDecoder = (*ClaimsDecoder)(nil)
