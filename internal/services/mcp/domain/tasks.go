package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/tasktrack/internal/services/tracker/dates"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
)

// TaskReader is the read side of the task registry.
type TaskReader interface {
	ListAll(ctx context.Context) ([]task.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]task.Task, error)
	Search(ctx context.Context, term string) ([]task.Task, error)
}

// TaskSearchInput represents the MCP tool input for searching tasks.
type TaskSearchInput struct {
	Query string `json:"query,omitempty" jsonschema:"term matched against task title and description; empty lists every task"`
}

// TaskEntry is one task as exposed to MCP clients.
type TaskEntry struct {
	ID          string `json:"id" jsonschema:"task identifier"`
	Title       string `json:"title" jsonschema:"task title"`
	Description string `json:"description,omitempty" jsonschema:"task description"`
	ProjectID   string `json:"project_id" jsonschema:"parent project identifier"`
	ProjectName string `json:"project_name,omitempty" jsonschema:"parent project name"`
	AssignedTo  string `json:"assigned_to,omitempty" jsonschema:"username of the assignee"`
	DueDate     string `json:"due_date,omitempty" jsonschema:"YYYY-MM-DD due date"`
	Priority    string `json:"priority" jsonschema:"priority (Low, Medium, High)"`
	Status      string `json:"status" jsonschema:"status (To Do, In Progress, Done)"`
	CreatedAt   string `json:"created_at" jsonschema:"RFC3339 timestamp when the task was created"`
}

// TaskSearchResult represents the MCP tool output for searching tasks.
type TaskSearchResult struct {
	Tasks []TaskEntry `json:"tasks" jsonschema:"matching tasks, soonest due first"`
}

// TaskSearchTool defines the MCP tool schema for searching tasks.
func TaskSearchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "task_search",
		Description: "Searches tasks by title and description",
	}
}

// TaskSearchHandler searches tasks, listing all of them for a blank query.
func TaskSearchHandler(tasks TaskReader) mcp.ToolHandlerFor[TaskSearchInput, TaskSearchResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TaskSearchInput) (*mcp.CallToolResult, TaskSearchResult, error) {
		var (
			list []task.Task
			err  error
		)
		if query := strings.TrimSpace(input.Query); query != "" {
			list, err = tasks.Search(ctx, query)
		} else {
			list, err = tasks.ListAll(ctx)
		}
		if err != nil {
			return nil, TaskSearchResult{}, fmt.Errorf("task search failed: %w", err)
		}
		return &mcp.CallToolResult{}, TaskSearchResult{Tasks: taskEntries(list)}, nil
	}
}

func taskEntry(t task.Task) TaskEntry {
	return TaskEntry{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		ProjectID:   t.ProjectID,
		ProjectName: t.ProjectName,
		AssignedTo:  t.AssigneeName,
		DueDate:     dates.Format(t.DueDate),
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedAt:   formatTimestamp(t.CreatedAt),
	}
}
