// Package backend opens the configured tracker storage driver.
package backend

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage/postgres"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage/sqlite"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
	"github.com/louisbranch/tasktrack/internal/services/tracker/user"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and locates a storage driver.
type Config struct {
	Driver string
	// Path is the SQLite database file. Missing parent directories are created.
	Path string
	// DatabaseURL is the Postgres connection string.
	DatabaseURL string
}

// Store is the persistence surface shared by every driver.
type Store interface {
	user.Store
	project.Store
	task.Store
	task.References
	storage.SessionStore
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*sqlite.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// Open opens the store named by cfg.Driver. An empty driver selects SQLite.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverSQLite:
		path := strings.TrimSpace(cfg.Path)
		if path == "" {
			return nil, errors.New("sqlite path is required")
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	case DriverPostgres:
		store, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
