package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/tasktrack/internal/services/mcp/domain"
)

const (
	serverName = "tasktrack"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Server hosts the MCP tools over the tracker registries.
type Server struct {
	mcpServer *mcp.Server
}

// NewServer builds an MCP server with every tool registered.
func NewServer(projects domain.ProjectReader, tasks domain.TaskReader) (*Server, error) {
	if projects == nil {
		return nil, errors.New("project reader is required")
	}
	if tasks == nil {
		return nil, errors.New("task reader is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	if err := registerTools(mcpServer, projects, tasks); err != nil {
		return nil, err
	}
	return &Server{mcpServer: mcpServer}, nil
}

// serveWithTransport blocks until the transport closes or ctx is cancelled.
// Cancellation is a clean stop.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("mcp server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.mcpServer.Run(ctx, transport); err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("serve mcp: %w", err)
	}
	return nil
}
