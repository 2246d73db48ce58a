package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amirhosseinghanipour/folio/internal/application/forms"
	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// Register creates an admin account and stores the returned token, so the caller is signed in.
type Register struct {
	gateway  ports.AuthGateway
	tokens   ports.TokenStore
	validate *validator.Validate
}

func NewRegister(gateway ports.AuthGateway, tokens ports.TokenStore, validate *validator.Validate) *Register {
	return &Register{gateway: gateway, tokens: tokens, validate: validate}
}

func (uc *Register) Execute(ctx context.Context, input RegisterInput) error {
	creds := domain.Credentials{Username: strings.TrimSpace(input.Username), Password: input.Password}
	if err := forms.Check(uc.validate, creds); err != nil {
		return err
	}
	if input.Password != input.ConfirmPassword {
		return forms.Invalid("password confirmation does not match")
	}
	token, err := uc.gateway.Register(ctx, creds)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err := uc.tokens.SetToken(ctx, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}
