// Package json contains utilities for handling JSON request and response bodies.
package json

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	gojson "github.com/goccy/go-json"
)

var ErrEmptyBody = errors.New("empty body")

// DecodeJSON reads r to the end and decodes a single JSON value into dst.
// Trailing data after the value is rejected.
func DecodeJSON(dst any, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	if len(data) == 0 {
		return ErrEmptyBody
	}
	if err := gojson.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}
	return nil
}

// WriteJSON encodes v and writes it with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	body, err := gojson.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
