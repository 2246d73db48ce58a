package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/amirhosseinghanipour/folio/internal/application/forms"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// Validation limits.
const (
	MaxUploadBytes   = 8 << 20
	MaxJSONBodyBytes = 1 << 20
)

// ratingInput is the body of every rate endpoint.
type ratingInput struct {
	Rating float64 `json:"rating" validate:"gte=1,lte=5"`
}

// decodeJSON reads a size-capped JSON body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(io.LimitReader(r.Body, MaxJSONBodyBytes)).Decode(v)
}

// parseForm accepts multipart and urlencoded bodies alike.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(MaxUploadBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// formUpload reads the named file part. A missing part is (nil, nil).
func formUpload(r *http.Request, field string) (*domain.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxUploadBytes {
		return nil, forms.Invalid(fmt.Sprintf("%s exceeds %d bytes", field, MaxUploadBytes))
	}
	return &domain.Upload{Filename: hdr.Filename, Data: data}, nil
}

// pathIndex parses a {index} URL param.
func pathIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, forms.Invalid("index must be a non-negative integer")
	}
	return i, nil
}
