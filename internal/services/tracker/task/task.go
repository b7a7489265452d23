// Package task implements the task registry.
package task

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/tasktrack/internal/platform/errors"
	"github.com/louisbranch/tasktrack/internal/services/tracker/dates"
)

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Status is the workflow state of a task.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

const (
	DefaultPriority = PriorityMedium
	DefaultStatus   = StatusToDo
)

// Priorities lists every priority in display order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Statuses lists every status in display order.
func Statuses() []Status {
	return []Status{StatusToDo, StatusInProgress, StatusDone}
}

var (
	ErrNotFound        = apperrors.EK(apperrors.KindNotFound, "task.not_found", "task not found")
	ErrFieldsRequired  = apperrors.EK(apperrors.KindInvalidInput, "task.fields_required", "title and project are required")
	ErrProjectMissing  = apperrors.EK(apperrors.KindInvalidInput, "task.project_missing", "project does not exist")
	ErrAssigneeMissing = apperrors.EK(apperrors.KindInvalidInput, "task.assignee_missing", "assignee does not exist")
	ErrInvalidPriority = apperrors.EK(apperrors.KindInvalidInput, "task.invalid_priority", "invalid task priority")
	ErrInvalidStatus   = apperrors.EK(apperrors.KindInvalidInput, "task.invalid_status", "invalid task status")
	ErrInvalidDueDate  = apperrors.EK(apperrors.KindInvalidInput, "task.invalid_due_date", "invalid due date")
)

// ParsePriority maps raw form input onto Priority. Blank input yields DefaultPriority.
func ParsePriority(raw string) (Priority, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPriority, nil
	}
	for _, p := range Priorities() {
		if strings.EqualFold(raw, string(p)) {
			return p, nil
		}
	}
	return "", ErrInvalidPriority
}

// ParseStatus maps raw form input onto Status. Blank input yields DefaultStatus.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultStatus, nil
	}
	for _, s := range Statuses() {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// Task is a stored task. ProjectName and AssigneeName are joined on read.
type Task struct {
	ID           string
	Title        string
	Description  string
	ProjectID    string
	AssignedTo   string
	DueDate      *time.Time
	Priority     Priority
	Status       Status
	CreatedAt    time.Time
	ProjectName  string
	AssigneeName string
}

// Assigned reports whether the task has an assignee.
func (t Task) Assigned() bool {
	return t.AssignedTo != ""
}

// Input is the raw, form-shaped payload for create and update.
type Input struct {
	Title       string
	Description string
	ProjectID   string
	AssignedTo  string
	DueDate     string
	Priority    string
	Status      string
}

type fields struct {
	title       string
	description string
	projectID   string
	assignedTo  string
	dueDate     *time.Time
	priority    Priority
	status      Status
}

func (in Input) normalize() (fields, error) {
	out := fields{
		title:       strings.TrimSpace(in.Title),
		description: strings.TrimSpace(in.Description),
		projectID:   strings.TrimSpace(in.ProjectID),
		assignedTo:  strings.TrimSpace(in.AssignedTo),
	}
	if out.title == "" || out.projectID == "" {
		return fields{}, ErrFieldsRequired
	}
	var err error
	if out.dueDate, err = dates.Parse(in.DueDate); err != nil {
		return fields{}, apperrors.Wrap(apperrors.KindInvalidInput, ErrInvalidDueDate.Key, "invalid due date", err)
	}
	if out.priority, err = ParsePriority(in.Priority); err != nil {
		return fields{}, err
	}
	if out.status, err = ParseStatus(in.Status); err != nil {
		return fields{}, err
	}
	return out, nil
}

func (f fields) apply(t Task) Task {
	t.Title = f.title
	t.Description = f.description
	t.ProjectID = f.projectID
	t.AssignedTo = f.assignedTo
	t.DueDate = f.dueDate
	t.Priority = f.priority
	t.Status = f.status
	return t
}
