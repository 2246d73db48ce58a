package content

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/amirhosseinghanipour/folio/internal/application/forms"
	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// SaveHome validates and submits the home hero form.
type SaveHome struct {
	content  ports.ContentGateway
	validate *validator.Validate
}

func NewSaveHome(content ports.ContentGateway, validate *validator.Validate) *SaveHome {
	return &SaveHome{content: content, validate: validate}
}

// Execute rejects the form before any request when title or subtitle is missing.
func (uc *SaveHome) Execute(ctx context.Context, form domain.HomeForm) error {
	if err := forms.Check(uc.validate, form); err != nil {
		return err
	}
	if err := uc.content.SaveHome(ctx, form); err != nil {
		return fmt.Errorf("save home: %w", err)
	}
	return nil
}
