// Package requestid contains utilities for handling the request id.
package requestid

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type requestIDKeyType struct{}

var requestIDKey requestIDKeyType

// New returns a fresh request id. Ids made within the same millisecond
// still differ.
func New() ulid.ULID {
	return ulid.Make()
}

// InjectRequestID injects a given requestID into a context.
func InjectRequestID(ctx context.Context, requestID ulid.ULID) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ExtractRequestID extracts a requestID from a context if it exists.
// If none is found, then the zero ULID is returned.
func ExtractRequestID(ctx context.Context) ulid.ULID {
	if v, ok := ctx.Value(requestIDKey).(ulid.ULID); ok {
		return v
	}
	return ulid.ULID{}
}

// String returns the request id of ctx in the form reported in error bodies,
// or "" when ctx carries none.
func String(ctx context.Context) string {
	id := ExtractRequestID(ctx)
	if id == (ulid.ULID{}) {
		return ""
	}
	return id.String()
}
