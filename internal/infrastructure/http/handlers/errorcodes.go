package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } for stable client handling.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeValidation     = "validation_failed"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimited    = "rate_limited"
	ErrCodeLoginLocked    = "login_locked"
	ErrCodeUpstreamFailed = "upstream_failed"
	ErrCodeInternal       = "internal_error"
)
