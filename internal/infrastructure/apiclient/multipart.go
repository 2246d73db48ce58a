package apiclient

import (
	"bytes"
	"io"
	"mime/multipart"

	"github.com/amirhosseinghanipour/folio/internal/domain"
)

type formField struct {
	name  string
	value string
}

type formFile struct {
	name   string
	upload *domain.Upload
}

// multipartBody encodes fields and files. Empty fields and nil uploads are omitted.
func multipartBody(fields []formField, files []formFile) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}
	for _, f := range files {
		if f.upload == nil {
			continue
		}
		fw, err := mw.CreateFormFile(f.name, f.upload.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(f.upload.Data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
