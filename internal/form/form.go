// Package form contains helpers for reading submitted form fields.
package form

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
)

var (
	ErrNoFile       = errors.New("file not uploaded")
	ErrTooManyFiles = errors.New("more than one file uploaded")
)

// SingleFile returns the only file uploaded under field. A nil form or an
// empty field yields ErrNoFile.
func SingleFile(form *multipart.Form, field string) (*multipart.FileHeader, error) {
	if form == nil {
		return nil, ErrNoFile
	}
	files := form.File[field]
	switch len(files) {
	case 0:
		return nil, ErrNoFile
	case 1:
		return files[0], nil
	default:
		return nil, fmt.Errorf("field %q has %d files: %w", field, len(files), ErrTooManyFiles)
	}
}

// Value returns the first value submitted for field, or nil when the field
// was not submitted at all. An empty value is returned as an empty string.
func Value(values url.Values, field string) *string {
	v, ok := values[field]
	if !ok || len(v) == 0 {
		return nil
	}
	return &v[0]
}
