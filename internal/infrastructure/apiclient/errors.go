package apiclient

import (
	"fmt"
	"net/http"

	domerrors "github.com/amirhosseinghanipour/folio/internal/domain/errors"
)

// NetworkError means no usable response was received (dial, timeout, cancelled context, truncated
// body, or a 2xx body that is not valid JSON).
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("content API %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response.
type HTTPError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("content API %s %s returned %d", e.Method, e.Path, e.Status)
}

// Is maps 404 to ErrNotFound and 401/403 to ErrUnauthorized.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case domerrors.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domerrors.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}
