// Package correlation carries a request correlation ID across HTTP and Kafka.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// HeaderName is used both as the HTTP header and the Kafka message header key.
const HeaderName = "X-Correlation-ID"

type contextKey struct{}

// FromContext returns the correlation ID or an empty string.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// Ensure returns ctx unchanged when it already carries an ID, otherwise a
// child context with a fresh one.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); id != "" {
		return ctx, id
	}
	id := NewID()
	return WithID(ctx, id), id
}

func NewID() string {
	return uuid.New().String()
}
