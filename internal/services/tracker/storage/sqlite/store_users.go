package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
	"github.com/louisbranch/tasktrack/internal/services/tracker/user"
)

const userColumns = `id, username, email, password_hash, created_at`

// PutUser inserts a user. A taken username surfaces as storage.ErrAlreadyExists.
func (s *Store) PutUser(ctx context.Context, u user.User) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, toMillis(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put user: %w", translateError(err))
	}
	return nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, userID string) (user.User, error) {
	if err := s.ready(ctx); err != nil {
		return user.User{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, userID)
	return scanUser(row)
}

// GetUserByUsername fetches a user by exact username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	if err := s.ready(ctx); err != nil {
		return user.User{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

// ListUsers returns every user ordered by username.
func (s *Store) ListUsers(ctx context.Context) ([]user.User, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UserExists reports whether a user has userID.
func (s *Store) UserExists(ctx context.Context, userID string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	found, err := s.exists(ctx, `SELECT 1 FROM users WHERE id = ?`, userID)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return found, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (user.User, error) {
	var u user.User
	var createdAt int64
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, storage.ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}
