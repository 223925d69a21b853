// Package ctxkeys holds the shared context keys for the API layer.
// A leaf package so api and api/handlers avoid an import cycle.
package ctxkeys

import "context"

// Key is the named type for all API context keys. context.Value compares
// both type and value, so a named type cannot collide with plain strings.
type Key string

// UserID is the context key for the authenticated user, injected by
// AuthMiddleware from JWT claims.
const UserID Key = "user_id"

// WithValue adds a ctxkeys.Key value to the context.
func WithValue(ctx context.Context, key Key, value string) context.Context {
	return context.WithValue(ctx, key, value)
}
