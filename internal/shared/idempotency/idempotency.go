package idempotency

import (
	"context"
	"strings"
)

// Header carries the key between the order-flow API and the restaurant backend.
const Header = "Idempotency-Key"

type keyCtx struct{}

// WithKey attaches a caller supplied idempotency key. Blank keys are ignored.
func WithKey(ctx context.Context, key string) context.Context {
	key = strings.TrimSpace(key)
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, keyCtx{}, key)
}

// KeyFrom returns the key attached to ctx, if any.
func KeyFrom(ctx context.Context) string {
	key, _ := ctx.Value(keyCtx{}).(string)
	return key
}
