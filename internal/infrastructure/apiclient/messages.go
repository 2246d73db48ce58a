package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// ListMessages implements ports.MessageGateway.
func (c *Client) ListMessages(ctx context.Context) ([]domain.Message, error) {
	var out []domain.Message
	if err := c.doJSON(ctx, http.MethodGet, "/messages", "/messages", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Message{}
	}
	return out, nil
}

// DeleteMessage implements ports.MessageGateway.
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/messages/"+url.PathEscape(id), "/messages/{id}", nil, nil)
}

var _ ports.MessageGateway = (*Client)(nil)
