package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amirhosseinghanipour/folio/internal/application/forms"
	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// AddSkill validates and submits a new skill.
type AddSkill struct {
	content  ports.ContentGateway
	validate *validator.Validate
}

func NewAddSkill(content ports.ContentGateway, validate *validator.Validate) *AddSkill {
	return &AddSkill{content: content, validate: validate}
}

func (uc *AddSkill) Execute(ctx context.Context, skill domain.Skill) error {
	skill.Name = strings.TrimSpace(skill.Name)
	if err := forms.Check(uc.validate, skill); err != nil {
		return err
	}
	if err := uc.content.AddSkill(ctx, skill); err != nil {
		return fmt.Errorf("add skill: %w", err)
	}
	return nil
}

// UploadCV submits the résumé file.
type UploadCV struct {
	content ports.ContentGateway
}

func NewUploadCV(content ports.ContentGateway) *UploadCV {
	return &UploadCV{content: content}
}

func (uc *UploadCV) Execute(ctx context.Context, cv domain.Upload) error {
	if len(cv.Data) == 0 {
		return forms.Invalid("cv file is required")
	}
	if err := uc.content.UploadCV(ctx, cv); err != nil {
		return fmt.Errorf("upload cv: %w", err)
	}
	return nil
}
