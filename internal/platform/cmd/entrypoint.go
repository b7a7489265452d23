// Package cmd holds the startup plumbing shared by tasktrack binaries.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/louisbranch/tasktrack/internal/platform/config"
	"github.com/louisbranch/tasktrack/internal/platform/logging"
	"github.com/louisbranch/tasktrack/internal/platform/otel"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// Service identifiers for command startup telemetry and log tagging.
const (
	ServiceMCP = "mcp"
	ServiceWeb = "web"
)

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// ShutdownTimeout sets the timeout used when stopping telemetry.
	ShutdownTimeout time.Duration
	// Logging overrides the logger settings read from the environment.
	Logging *logging.Config
}

// ParseConfig loads a .env file when present and then environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// ParseConfigFromArgs loads defaults from env and then parses flags.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	return ParseArgs(fs, args)
}

// RunWithTelemetry configures logging and tracing and executes a service run loop.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, service, RunOptions{}, run)
}

// RunWithTelemetryAndOptions configures logging and tracing and executes a
// service run loop. The logger is attached to the run context; retrieve it
// with logging.FromContext.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := newLogger(service, options.Logging)
	if err != nil {
		return err
	}
	ctx = logging.WithContext(ctx, logger)

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		shutdownTimeout := options.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = defaultOTelShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("otel shutdown")
		}
	}()
	return run(ctx)
}

func newLogger(service string, override *logging.Config) (zerolog.Logger, error) {
	var cfg logging.Config
	if override != nil {
		cfg = *override
	} else if err := config.ParseEnv(&cfg); err != nil {
		return zerolog.Nop(), err
	}
	// MCP speaks its protocol on stdout, so logs always go to stderr.
	return logging.New(service, cfg, os.Stderr)
}
