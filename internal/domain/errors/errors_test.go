package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	for _, err := range []error{ErrNotFound, ErrUnauthorized, ErrValidation, ErrNoSession, ErrSessionExpired} {
		if err == nil {
			t.Fatal("sentinel should not be nil")
		}
	}
}

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("save home: %w", ErrValidation)
	if !errors.Is(wrapped, ErrValidation) {
		t.Error("wrapped ErrValidation should match with errors.Is")
	}
	if errors.Is(wrapped, ErrNotFound) {
		t.Error("wrapped ErrValidation should not match ErrNotFound")
	}
}
