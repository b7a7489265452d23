package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/tasktrack/internal/services/tracker/dates"
	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
)

// ProjectReader is the read side of the project registry.
type ProjectReader interface {
	ListAll(ctx context.Context) ([]project.Project, error)
	Search(ctx context.Context, term string) ([]project.Project, error)
	Get(ctx context.Context, projectID string) (project.Project, error)
}

// ProjectListInput represents the MCP tool input for listing projects.
type ProjectListInput struct {
	Query string `json:"query,omitempty" jsonschema:"optional term matched against project name and description"`
}

// ProjectEntry is one project as exposed to MCP clients.
type ProjectEntry struct {
	ID          string `json:"id" jsonschema:"project identifier"`
	Name        string `json:"name" jsonschema:"project name"`
	Description string `json:"description,omitempty" jsonschema:"project description"`
	Status      string `json:"status" jsonschema:"project status (Not Started, In Progress, Completed)"`
	StartDate   string `json:"start_date,omitempty" jsonschema:"YYYY-MM-DD start date"`
	EndDate     string `json:"end_date,omitempty" jsonschema:"YYYY-MM-DD end date"`
	CreatedBy   string `json:"created_by,omitempty" jsonschema:"username of the creator"`
	CreatedAt   string `json:"created_at" jsonschema:"RFC3339 timestamp when the project was created"`
}

// ProjectListResult represents the MCP tool output for listing projects.
type ProjectListResult struct {
	Projects []ProjectEntry `json:"projects" jsonschema:"projects, newest first"`
}

// ProjectGetInput represents the MCP tool input for reading one project.
type ProjectGetInput struct {
	ProjectID string `json:"project_id" jsonschema:"project identifier"`
}

// ProjectGetResult represents the MCP tool output for reading one project.
type ProjectGetResult struct {
	Project ProjectEntry `json:"project" jsonschema:"the project"`
	Tasks   []TaskEntry  `json:"tasks" jsonschema:"tasks of the project, soonest due first"`
}

// ProjectListTool defines the MCP tool schema for listing projects.
func ProjectListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "project_list",
		Description: "Lists projects, optionally filtered by a search term",
	}
}

// ProjectGetTool defines the MCP tool schema for reading a project.
func ProjectGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "project_get",
		Description: "Returns a project with its tasks",
	}
}

// ProjectListHandler lists or searches projects.
func ProjectListHandler(projects ProjectReader) mcp.ToolHandlerFor[ProjectListInput, ProjectListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProjectListInput) (*mcp.CallToolResult, ProjectListResult, error) {
		var (
			list []project.Project
			err  error
		)
		if query := strings.TrimSpace(input.Query); query != "" {
			list, err = projects.Search(ctx, query)
		} else {
			list, err = projects.ListAll(ctx)
		}
		if err != nil {
			return nil, ProjectListResult{}, fmt.Errorf("project list failed: %w", err)
		}
		result := ProjectListResult{Projects: make([]ProjectEntry, 0, len(list))}
		for _, p := range list {
			result.Projects = append(result.Projects, projectEntry(p))
		}
		return &mcp.CallToolResult{}, result, nil
	}
}

// ProjectGetHandler reads a project and its tasks.
func ProjectGetHandler(projects ProjectReader, tasks TaskReader) mcp.ToolHandlerFor[ProjectGetInput, ProjectGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProjectGetInput) (*mcp.CallToolResult, ProjectGetResult, error) {
		projectID := strings.TrimSpace(input.ProjectID)
		if projectID == "" {
			return nil, ProjectGetResult{}, fmt.Errorf("project_id is required")
		}
		p, err := projects.Get(ctx, projectID)
		if err != nil {
			return nil, ProjectGetResult{}, fmt.Errorf("project get failed: %w", err)
		}
		list, err := tasks.ListByProject(ctx, projectID)
		if err != nil {
			return nil, ProjectGetResult{}, fmt.Errorf("project tasks failed: %w", err)
		}
		return &mcp.CallToolResult{}, ProjectGetResult{Project: projectEntry(p), Tasks: taskEntries(list)}, nil
	}
}

func projectEntry(p project.Project) ProjectEntry {
	return ProjectEntry{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		StartDate:   dates.Format(p.StartDate),
		EndDate:     dates.Format(p.EndDate),
		CreatedBy:   p.CreatorName,
		CreatedAt:   formatTimestamp(p.CreatedAt),
	}
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

func taskEntries(list []task.Task) []TaskEntry {
	entries := make([]TaskEntry, 0, len(list))
	for _, t := range list {
		entries = append(entries, taskEntry(t))
	}
	return entries
}
