// Package logging configures the process-wide structured logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// FormatJSON writes one JSON object per line.
	FormatJSON = "json"
	// FormatConsole writes human-readable colored lines for local development.
	FormatConsole = "console"
)

// Config controls logger construction.
type Config struct {
	Level  string `env:"TASKTRACK_LOG_LEVEL" envDefault:"info"`
	Format string `env:"TASKTRACK_LOG_FORMAT" envDefault:"json"`
}

// New builds a logger tagged with the service name.
func New(service string, cfg Config, out io.Writer) (zerolog.Logger, error) {
	if out == nil {
		out = os.Stdout
	}
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatJSON:
	case FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", cfg.Format)
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", strings.TrimSpace(service)).
		Logger()
	return logger, nil
}

func parseLevel(raw string) (zerolog.Level, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithContext(ctx)
}

// FromContext returns the logger stored on ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return zerolog.Ctx(ctx)
}
