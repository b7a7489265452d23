// Package session implements the login session gate: server-side sessions
// keyed by an opaque token, carried in a signed cookie.
//
// A request is Anonymous unless its cookie verifies, names a stored session,
// and that session has not expired. Login always replaces the previous session
// and logout deletes it server-side, so a captured cookie cannot be replayed.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates a token with no stored session.
var ErrNotFound = errors.New("session not found")

// tokenBytes is the entropy of an opaque session token.
const tokenBytes = 32

// Session binds an opaque token to an authenticated user.
type Session struct {
	Token     string
	UserID    string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}

// NewToken returns a random URL-safe session token.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
