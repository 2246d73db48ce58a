package apiclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

var errNoToken = errors.New("content API response carried no token")

type tokenResponse struct {
	Token string `json:"token"`
}

// Register implements ports.AuthGateway.
func (c *Client) Register(ctx context.Context, creds domain.Credentials) (string, error) {
	return c.authenticate(ctx, "/auth/register", creds)
}

// Login implements ports.AuthGateway.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

func (c *Client) authenticate(ctx context.Context, path string, creds domain.Credentials) (string, error) {
	var out tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, path, path, creds, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errNoToken
	}
	return out.Token, nil
}

var _ ports.AuthGateway = (*Client)(nil)
