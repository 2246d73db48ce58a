package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

func (c *Client) GetHome(ctx context.Context) (*domain.Home, error) {
	var out domain.Home
	if err := c.doJSON(ctx, http.MethodGet, "/home", "/home", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveHome posts the hero form as multipart; the image part is sent only when present.
func (c *Client) SaveHome(ctx context.Context, form domain.HomeForm) error {
	body, contentType, err := multipartBody([]formField{
		{"title", form.Title},
		{"subtitle", form.Subtitle},
		{"description", form.Description},
		{"skills", form.Skills},
	}, []formFile{{"image", form.Image}})
	if err != nil {
		return err
	}
	return c.do(ctx, call{method: http.MethodPost, path: "/home", route: "/home", body: body, contentType: contentType}, nil)
}

func (c *Client) GetAbout(ctx context.Context) (*domain.About, error) {
	var out domain.About
	if err := c.doJSON(ctx, http.MethodGet, "/about", "/about", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveAbout POSTs a new document or PUTs over an existing one.
func (c *Client) SaveAbout(ctx context.Context, about domain.About) (*domain.About, error) {
	method, path, route := http.MethodPost, "/about", "/about"
	if about.ID != "" {
		method, path, route = http.MethodPut, "/about/"+url.PathEscape(about.ID), "/about/{id}"
	}
	var out domain.About
	if err := c.doJSON(ctx, method, path, route, about, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	var out []domain.Skill
	if err := c.doJSON(ctx, http.MethodGet, "/skills", "/skills", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Skill{}
	}
	return out, nil
}

func (c *Client) AddSkill(ctx context.Context, skill domain.Skill) error {
	in := struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	}{Name: skill.Name, Icon: skill.Icon}
	return c.doJSON(ctx, http.MethodPost, "/skills", "/skills", in, nil)
}

func (c *Client) UploadCV(ctx context.Context, cv domain.Upload) error {
	body, contentType, err := multipartBody(nil, []formFile{{"cv", &cv}})
	if err != nil {
		return err
	}
	return c.do(ctx, call{method: http.MethodPost, path: "/skills/upload-cv", route: "/skills/upload-cv", body: body, contentType: contentType}, nil)
}

var _ ports.ContentGateway = (*Client)(nil)
