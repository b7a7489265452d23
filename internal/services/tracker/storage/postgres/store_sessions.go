package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
	"github.com/louisbranch/tasktrack/internal/services/tracker/user"
)

// PutSession stores a login session.
func (s *Store) PutSession(ctx context.Context, record storage.SessionRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.Token) == "" {
		return fmt.Errorf("session token is required")
	}
	_, err := s.pool.Exec(ctx, `
INSERT INTO sessions (token, user_id, username, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5)`,
		record.Token, record.UserID, record.Username, record.CreatedAt.UTC(), record.ExpiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("put session: %w", translateError(err))
	}
	return nil
}

// GetSession fetches a session by token, expired or not.
func (s *Store) GetSession(ctx context.Context, token string) (storage.SessionRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.SessionRecord{}, err
	}
	var record storage.SessionRecord
	err := s.pool.QueryRow(ctx,
		`SELECT token, user_id, username, created_at, expires_at FROM sessions WHERE token = $1`, token,
	).Scan(&record.Token, &record.UserID, &record.Username, &record.CreatedAt, &record.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.SessionRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.SessionRecord{}, fmt.Errorf("get session: %w", err)
	}
	record.CreatedAt = record.CreatedAt.UTC()
	record.ExpiresAt = record.ExpiresAt.UTC()
	return record, nil
}

// DeleteSession removes a session. Deleting a missing token is not an error.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions purges sessions that expired at or before now.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now.UTC()); err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}

var (
	_ user.Store           = (*Store)(nil)
	_ project.Store        = (*Store)(nil)
	_ task.Store           = (*Store)(nil)
	_ task.References      = (*Store)(nil)
	_ storage.SessionStore = (*Store)(nil)
)
