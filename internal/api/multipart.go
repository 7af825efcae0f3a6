package api

import (
	"bytes"
	"mime/multipart"
)

// multipartBody assembles a multipart/form-data body via fill and returns the
// buffer together with the boundary-bearing content type.
func multipartBody(fill func(w *multipart.Writer) error) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	if err := fill(w); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
