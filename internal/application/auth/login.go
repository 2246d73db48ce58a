package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amirhosseinghanipour/folio/internal/application/forms"
	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
	domerrors "github.com/amirhosseinghanipour/folio/internal/domain/errors"
)

// LockedError is returned while a username is cooling down after repeated rejected logins.
type LockedError struct {
	RetryAfterSeconds int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("too many failed logins, retry in %ds", e.RetryAfterSeconds)
}

// loginInput checks presence only; the password length rule applies to new accounts.
type loginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Login exchanges credentials for a token and stores it.
type Login struct {
	gateway  ports.AuthGateway
	tokens   ports.TokenStore
	validate *validator.Validate
	lockout  ports.LoginLockout
}

// NewLogin creates the login use case. lockout may be nil to disable throttling.
func NewLogin(gateway ports.AuthGateway, tokens ports.TokenStore, validate *validator.Validate, lockout ports.LoginLockout) *Login {
	return &Login{gateway: gateway, tokens: tokens, validate: validate, lockout: lockout}
}

// Execute counts only rejections from the content API towards the lockout; transport
// failures do not lock anyone out.
func (uc *Login) Execute(ctx context.Context, creds domain.Credentials) error {
	creds.Username = strings.TrimSpace(creds.Username)
	if err := forms.Check(uc.validate, loginInput{Username: creds.Username, Password: creds.Password}); err != nil {
		return err
	}
	if uc.lockout != nil {
		if locked, retry := uc.lockout.IsLocked(ctx, creds.Username); locked {
			return &LockedError{RetryAfterSeconds: retry}
		}
	}
	token, err := uc.gateway.Login(ctx, creds)
	if err != nil {
		if uc.lockout != nil && errors.Is(err, domerrors.ErrUnauthorized) {
			uc.lockout.RecordFailure(ctx, creds.Username)
		}
		return fmt.Errorf("login: %w", err)
	}
	if uc.lockout != nil {
		uc.lockout.RecordSuccess(ctx, creds.Username)
	}
	if err := uc.tokens.SetToken(ctx, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Logout forgets the stored token.
func Logout(ctx context.Context, tokens ports.TokenStore) error {
	return tokens.ClearToken(ctx)
}
