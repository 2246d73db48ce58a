package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrNotFound       = errors.New("record not found")
	ErrUnauthorized   = errors.New("not authorized by content API")
	ErrValidation     = errors.New("validation failed")
	ErrNoSession      = errors.New("no stored session token")
	ErrSessionExpired = errors.New("stored session token has expired")
)
