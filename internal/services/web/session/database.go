package session

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
)

// DatabaseStore keeps sessions in the tracker database so they survive
// restarts and are shared between instances.
type DatabaseStore struct {
	records storage.SessionStore
}

// NewDatabaseStore adapts a storage backend to Store.
func NewDatabaseStore(records storage.SessionStore) *DatabaseStore {
	return &DatabaseStore{records: records}
}

// Create stores a session.
func (d *DatabaseStore) Create(ctx context.Context, s Session) error {
	return d.records.PutSession(ctx, storage.SessionRecord{
		Token:     s.Token,
		UserID:    s.UserID,
		Username:  s.Username,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	})
}

// Get returns the session for token.
func (d *DatabaseStore) Get(ctx context.Context, token string) (Session, error) {
	record, err := d.records.GetSession(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     record.Token,
		UserID:    record.UserID,
		Username:  record.Username,
		CreatedAt: record.CreatedAt,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// Delete removes the session for token.
func (d *DatabaseStore) Delete(ctx context.Context, token string) error {
	return d.records.DeleteSession(ctx, token)
}

// DeleteExpired purges sessions expired at now.
func (d *DatabaseStore) DeleteExpired(ctx context.Context, now time.Time) error {
	return d.records.DeleteExpiredSessions(ctx, now)
}

var _ Store = (*DatabaseStore)(nil)
