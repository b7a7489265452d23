package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/louisbranch/tasktrack/internal/platform/storage/migrate"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage/postgres/migrations"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Store implements tracker persistence over Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to databaseURL and applies bundled migrations.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database url is required")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	store := &Store{pool: pool}
	if err := store.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.pool.Ping(ctx)
}

// runMigrations applies each embedded file once, recording it in schema_migrations.
func (s *Store) runMigrations(ctx context.Context) error {
	loaded, err := migrate.Load(migrations.FS, "")
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
    name TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, migration := range loaded {
		var found int
		err := s.pool.QueryRow(ctx, `SELECT 1 FROM schema_migrations WHERE name = $1`, migration.Key).Scan(&found)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("check migration %s: %w", migration.Key, err)
		}
		if strings.TrimSpace(migration.Up) == "" {
			continue
		}
		if err := s.applyMigration(ctx, migration); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) applyMigration(ctx context.Context, migration migrate.Migration) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", migration.Key, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if _, err := tx.Exec(ctx, migration.Up); err != nil {
		return fmt.Errorf("exec migration %s: %w", migration.Key, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (name, applied_at) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		migration.Key, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("record migration %s: %w", migration.Key, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration %s: %w", migration.Key, err)
	}
	return nil
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.pool == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func (s *Store) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var found int
	err := s.pool.QueryRow(ctx, query, args...).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// translateError maps Postgres constraint failures onto storage sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %v", storage.ErrAlreadyExists, err)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %v", storage.ErrReferenceMissing, err)
		}
	}
	return err
}

func nullableString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func utcDate(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	normalized := time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
	return &normalized
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
