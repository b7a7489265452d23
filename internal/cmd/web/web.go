// Package web parses web command configuration and starts the tracker server.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/tasktrack/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/tasktrack/internal/platform/grpc"
	"github.com/louisbranch/tasktrack/internal/platform/timeouts"
	"github.com/louisbranch/tasktrack/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	Port                int           `env:"TASKTRACK_PORT"                  envDefault:"3000"`
	Host                string        `env:"TASKTRACK_HTTP_HOST"`
	SessionSecret       string        `env:"TASKTRACK_SESSION_SECRET"        envDefault:"default_secret_key"`
	SessionCookieSecure bool          `env:"TASKTRACK_SESSION_COOKIE_SECURE" envDefault:"false"`
	SessionTTL          time.Duration `env:"TASKTRACK_SESSION_TTL"           envDefault:"24h"`
	SessionStore        string        `env:"TASKTRACK_SESSION_STORE"         envDefault:"memory"`
	TrustForwardedProto bool          `env:"TASKTRACK_TRUST_FORWARDED_PROTO" envDefault:"false"`
	DBDriver            string        `env:"TASKTRACK_DB_DRIVER"             envDefault:"sqlite"`
	DBPath              string        `env:"TASKTRACK_DB_PATH"               envDefault:"data/tasktrack.db"`
	DatabaseURL         string        `env:"TASKTRACK_DATABASE_URL"`
	BcryptCost          int           `env:"TASKTRACK_BCRYPT_COST"           envDefault:"10"`
	HealthAddr          string        `env:"TASKTRACK_HEALTH_ADDR"`
	// CheckHealth probes HealthAddr and exits instead of serving.
	CheckHealth bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.IntVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	fs.StringVar(&cfg.Host, "host", cfg.Host, "HTTP listen host (empty for all interfaces)")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Storage driver: sqlite or postgres")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.HealthAddr, "health-addr", cfg.HealthAddr, "gRPC health listen address (empty disables)")
	fs.BoolVar(&cfg.CheckHealth, "check-health", false, "Probe the health listener and exit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// serverConfig maps command configuration onto the server inputs.
func (cfg Config) serverConfig() web.Config {
	return web.Config{
		HTTPAddr:            web.HTTPAddr(cfg.Host, cfg.Port),
		SessionSecret:       cfg.SessionSecret,
		SessionTTL:          cfg.SessionTTL,
		SessionCookieSecure: cfg.SessionCookieSecure,
		SessionStore:        cfg.SessionStore,
		TrustForwardedProto: cfg.TrustForwardedProto,
		DBDriver:            cfg.DBDriver,
		DBPath:              cfg.DBPath,
		DatabaseURL:         cfg.DatabaseURL,
		BcryptCost:          cfg.BcryptCost,
		HealthAddr:          cfg.HealthAddr,
	}
}

// Run starts the tracker web server and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	if cfg.CheckHealth {
		return CheckHealth(ctx, cfg)
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, cfg.serverConfig())
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

// CheckHealth reports whether a running server answers its health listener.
// Container health checks run the binary with -check-health.
func CheckHealth(ctx context.Context, cfg Config) error {
	addr := strings.TrimSpace(cfg.HealthAddr)
	if addr == "" {
		return errors.New("health address is required")
	}
	if err := platformgrpc.Probe(ctx, addr, timeouts.HealthDial); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}
