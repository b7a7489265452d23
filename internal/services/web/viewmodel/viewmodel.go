// Package viewmodel maps tracker records onto template rows and select
// options shared by the project and task pages.
package viewmodel

import (
	"time"

	"github.com/louisbranch/tasktrack/internal/services/tracker/dates"
	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
	"github.com/louisbranch/tasktrack/internal/services/tracker/user"
	"github.com/louisbranch/tasktrack/internal/services/web/templates"
)

const timestampLayout = "2006-01-02 15:04"

// ProjectRow maps a project for display.
func ProjectRow(p project.Project) templates.ProjectRow {
	return templates.ProjectRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		StartDate:   dates.Format(p.StartDate),
		EndDate:     dates.Format(p.EndDate),
		CreatorName: p.CreatorName,
		CreatedAt:   timestamp(p.CreatedAt),
	}
}

// ProjectRows maps a project listing.
func ProjectRows(projects []project.Project) []templates.ProjectRow {
	rows := make([]templates.ProjectRow, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, ProjectRow(p))
	}
	return rows
}

// TaskRow maps a task for display.
func TaskRow(t task.Task) templates.TaskRow {
	return templates.TaskRow{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		ProjectID:    t.ProjectID,
		ProjectName:  t.ProjectName,
		AssigneeName: t.AssigneeName,
		DueDate:      dates.Format(t.DueDate),
		Priority:     string(t.Priority),
		Status:       string(t.Status),
		CreatedAt:    timestamp(t.CreatedAt),
	}
}

// TaskRows maps a task listing.
func TaskRows(tasks []task.Task) []templates.TaskRow {
	rows := make([]templates.TaskRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, TaskRow(t))
	}
	return rows
}

// ProjectStatusOptions lists project statuses with selected marked. An empty
// selection marks the default.
func ProjectStatusOptions(selected project.Status) []templates.Option {
	if selected == "" {
		selected = project.DefaultStatus
	}
	statuses := project.Statuses()
	options := make([]templates.Option, 0, len(statuses))
	for _, s := range statuses {
		options = append(options, templates.Option{Value: string(s), Label: string(s), Selected: s == selected})
	}
	return options
}

// TaskPriorityOptions lists task priorities with selected marked.
func TaskPriorityOptions(selected task.Priority) []templates.Option {
	if selected == "" {
		selected = task.DefaultPriority
	}
	priorities := task.Priorities()
	options := make([]templates.Option, 0, len(priorities))
	for _, p := range priorities {
		options = append(options, templates.Option{Value: string(p), Label: string(p), Selected: p == selected})
	}
	return options
}

// TaskStatusOptions lists task statuses with selected marked.
func TaskStatusOptions(selected task.Status) []templates.Option {
	if selected == "" {
		selected = task.DefaultStatus
	}
	statuses := task.Statuses()
	options := make([]templates.Option, 0, len(statuses))
	for _, s := range statuses {
		options = append(options, templates.Option{Value: string(s), Label: string(s), Selected: s == selected})
	}
	return options
}

// UserOptions lists users for assignment, led by an unassigned entry.
func UserOptions(users []user.PublicUser, selectedID string, loc templates.Localizer) []templates.Option {
	options := make([]templates.Option, 0, len(users)+1)
	options = append(options, templates.Option{Label: templates.T(loc, "common.unassigned"), Selected: selectedID == ""})
	for _, u := range users {
		options = append(options, templates.Option{Value: u.ID, Label: u.Username, Selected: u.ID == selectedID})
	}
	return options
}

// ProjectOptions lists projects for a task form, led by a prompt entry.
func ProjectOptions(projects []project.Project, selectedID string, loc templates.Localizer) []templates.Option {
	options := make([]templates.Option, 0, len(projects)+1)
	options = append(options, templates.Option{Label: templates.T(loc, "task.select_project"), Selected: selectedID == ""})
	for _, p := range projects {
		options = append(options, templates.Option{Value: p.ID, Label: p.Name, Selected: p.ID == selectedID})
	}
	return options
}

func timestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(timestampLayout)
}
