package service

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/tasktrack/internal/services/mcp/domain"
)

type toolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newToolRegistrar[I any, O any]() toolRegistrar {
	return toolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var toolRegistrars = []toolRegistrar{
	newToolRegistrar[domain.ProjectListInput, domain.ProjectListResult](),
	newToolRegistrar[domain.ProjectGetInput, domain.ProjectGetResult](),
	newToolRegistrar[domain.TaskSearchInput, domain.TaskSearchResult](),
}

func addTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	if server == nil {
		return fmt.Errorf("mcp server is required")
	}
	for _, registrar := range toolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("unsupported handler type %T for tool %q", handler, toolName)
}

func registerTools(server *mcp.Server, projects domain.ProjectReader, tasks domain.TaskReader) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.ProjectListTool(), handler: domain.ProjectListHandler(projects)},
		{tool: domain.ProjectGetTool(), handler: domain.ProjectGetHandler(projects, tasks)},
		{tool: domain.TaskSearchTool(), handler: domain.TaskSearchHandler(tasks)},
	}
	for _, registration := range registrations {
		if err := addTool(server, registration.tool, registration.handler); err != nil {
			return fmt.Errorf("register tool %s: %w", registration.tool.Name, err)
		}
	}
	return nil
}
