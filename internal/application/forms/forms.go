// Package forms validates admin and auth form input before any content API call is made.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amirhosseinghanipour/folio/internal/domain"
	domerrors "github.com/amirhosseinghanipour/folio/internal/domain/errors"
)

// New returns a validator with the folio-specific tags registered (skillicon).
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("skillicon", func(fl validator.FieldLevel) bool {
		icon := fl.Field().String()
		for _, known := range domain.SkillIcons {
			if icon == known {
				return true
			}
		}
		return false
	})
	return v
}

// Check validates s and returns an error wrapping ErrValidation that names each failing field.
func Check(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domerrors.ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", domerrors.ErrValidation, strings.Join(msgs, "; "))
}

// Invalid returns a validation error with a fixed message.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", domerrors.ErrValidation, msg)
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "skillicon":
		return field + " is not a known icon"
	case "gte", "lte":
		return fmt.Sprintf("%s must be between 1 and 5", field)
	default:
		return field + " is invalid"
	}
}

// SplitList splits a comma-separated form value, trimming blanks.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
