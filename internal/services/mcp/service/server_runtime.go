package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/tasktrack/internal/platform/logging"
	"github.com/louisbranch/tasktrack/internal/platform/timeouts"
)

// Transport names accepted by Run.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// defaultHTTPAddr binds locally unless configured otherwise.
const defaultHTTPAddr = "localhost:8081"

// Config selects the transport for Run.
type Config struct {
	Transport string
	HTTPAddr  string
}

// Run serves the MCP tools until ctx is cancelled. Stdio suits local agents;
// HTTP serves the streamable transport at /mcp.
func (s *Server) Run(ctx context.Context, cfg Config) error {
	switch strings.TrimSpace(cfg.Transport) {
	case "", TransportStdio:
		return s.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return s.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Handler exposes the streamable HTTP transport.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil))
	return mux
}

func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("mcp server is not configured")
	}
	if strings.TrimSpace(addr) == "" {
		addr = defaultHTTPAddr
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.serveHTTPListener(ctx, listener)
}

func (s *Server) serveHTTPListener(ctx context.Context, listener net.Listener) error {
	logger := logging.FromContext(ctx)
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", listener.Addr().String()).Msg("mcp http listening")
		serveErr <- httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown mcp http: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve mcp http: %w", err)
	}
}
