// Package mcp parses MCP command flags and serves the read-only tracker tools.
package mcp

import (
	"context"
	"flag"
	"fmt"

	"github.com/rs/zerolog"

	entrypoint "github.com/louisbranch/tasktrack/internal/platform/cmd"
	"github.com/louisbranch/tasktrack/internal/platform/logging"
	"github.com/louisbranch/tasktrack/internal/services/mcp/service"
	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage/backend"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
)

// Config holds MCP command configuration.
type Config struct {
	Transport   string `env:"TASKTRACK_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr    string `env:"TASKTRACK_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	DBDriver    string `env:"TASKTRACK_DB_DRIVER"     envDefault:"sqlite"`
	DBPath      string `env:"TASKTRACK_DB_PATH"       envDefault:"data/tasktrack.db"`
	DatabaseURL string `env:"TASKTRACK_DATABASE_URL"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Storage driver: sqlite or postgres")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the tracker store and serves the MCP tools until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		store, err := backend.Open(ctx, backend.Config{
			Driver:      cfg.DBDriver,
			Path:        cfg.DBPath,
			DatabaseURL: cfg.DatabaseURL,
		})
		if err != nil {
			return err
		}
		defer closeStore(logging.FromContext(ctx), store)

		server, err := service.NewServer(project.NewRegistry(store), task.NewRegistry(store, store))
		if err != nil {
			return fmt.Errorf("init mcp server: %w", err)
		}
		return server.Run(ctx, service.Config{Transport: cfg.Transport, HTTPAddr: cfg.HTTPAddr})
	})
}

func closeStore(logger *zerolog.Logger, store backend.Store) {
	if err := store.Close(); err != nil {
		logger.Error().Err(err).Msg("close store")
	}
}
