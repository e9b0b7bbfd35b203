// Package correlation carries the request correlation ID through contexts.
package correlation

import (
	"context"

	"github.com/rs/xid"
)

const Header = "X-Correlation-ID"

type ctxKey struct{}

// WithID returns a copy of ctx carrying id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID retrieves the correlation ID from the context, or "" if none is set.
func ID(ctx context.Context) string {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok {
		return ""
	}
	return id
}

// New generates a fresh correlation ID.
func New() string {
	return xid.New().String()
}
