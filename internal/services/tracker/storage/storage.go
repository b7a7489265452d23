package storage

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness constraint rejected a write.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrReferenceMissing indicates a foreign key rejected a write.
	ErrReferenceMissing = errors.New("referenced record missing")
)

// SessionRecord is a persisted login session.
type SessionRecord struct {
	Token     string
	UserID    string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionStore persists login sessions for the database-backed session store.
type SessionStore interface {
	PutSession(ctx context.Context, record SessionRecord) error
	GetSession(ctx context.Context, token string) (SessionRecord, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) error
}

// LikePattern wraps term for a substring LIKE match, escaping the LIKE
// wildcards with a backslash so they match literally. Queries must declare
// ESCAPE '\'.
func LikePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(term) + "%"
}
