package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// ListProjects implements ports.ProjectGateway.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	if err := c.doJSON(ctx, http.MethodGet, "/projects", "/projects", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Project{}
	}
	return out, nil
}

// CreateProject implements ports.ProjectGateway. The form is sent as multipart/form-data.
func (c *Client) CreateProject(ctx context.Context, input domain.NewProject) (*domain.Project, error) {
	body, contentType, err := multipartBody([]formField{
		{"title", input.Title},
		{"description", input.Description},
		{"technologies", input.Technologies},
		{"github", input.GitHub},
		{"liveDemo", input.LiveDemo},
	}, []formFile{{"image", input.Image}})
	if err != nil {
		return nil, err
	}
	var out domain.Project
	err = c.do(ctx, call{method: http.MethodPost, path: "/projects", route: "/projects", body: body, contentType: contentType}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject implements ports.ProjectGateway.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), "/projects/{id}", nil, nil)
}

// RateProject implements ports.ProjectGateway.
func (c *Client) RateProject(ctx context.Context, id string, rating float64) (*domain.Project, error) {
	in := struct {
		Rating float64 `json:"rating"`
	}{Rating: rating}
	var out domain.Project
	if err := c.doJSON(ctx, http.MethodPost, "/projects/rate/"+url.PathEscape(id), "/projects/rate/{id}", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

var _ ports.ProjectGateway = (*Client)(nil)
