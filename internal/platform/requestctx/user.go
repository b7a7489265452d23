// Package requestctx carries the authenticated identity through request
// contexts.
package requestctx

import (
	"context"
	"strings"
)

type identityContextKey struct{}

// Identity is the authenticated caller resolved by the session gate.
type Identity struct {
	UserID   string
	Username string
}

// Authenticated reports whether the identity names a user.
func (i Identity) Authenticated() bool {
	return strings.TrimSpace(i.UserID) != ""
}

// WithIdentity stores the caller identity in context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext returns the caller identity stored in context.
func IdentityFromContext(ctx context.Context) Identity {
	if ctx == nil {
		return Identity{}
	}
	value, _ := ctx.Value(identityContextKey{}).(Identity)
	return value
}

// UserIDFromContext returns the authenticated user id stored in context.
func UserIDFromContext(ctx context.Context) string {
	return IdentityFromContext(ctx).UserID
}
