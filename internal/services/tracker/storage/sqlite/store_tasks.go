package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
)

const taskSelect = `
SELECT t.id, t.title, t.description, t.project_id, t.assigned_to, t.due_date,
       t.priority, t.status, t.created_at, p.name, u.username
FROM tasks t
LEFT JOIN projects p ON p.id = t.project_id
LEFT JOIN users u ON u.id = t.assigned_to
`

// Undated tasks sort after every dated one.
const taskOrder = ` ORDER BY t.due_date IS NULL, t.due_date ASC, t.created_at ASC, t.rowid ASC`

// PutTask inserts a task. A missing project surfaces as storage.ErrReferenceMissing.
func (s *Store) PutTask(ctx context.Context, t task.Task) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("task id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO tasks (id, title, description, project_id, assigned_to, due_date, priority, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.ProjectID, nullableString(t.AssignedTo),
		nullableDate(t.DueDate), string(t.Priority), string(t.Status), toMillis(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put task: %w", translateError(err))
	}
	return nil
}

// UpdateTask replaces the editable fields and reports whether the row exists.
func (s *Store) UpdateTask(ctx context.Context, t task.Task) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE tasks
SET title = ?, description = ?, project_id = ?, assigned_to = ?, due_date = ?, priority = ?, status = ?
WHERE id = ?`,
		t.Title, t.Description, t.ProjectID, nullableString(t.AssignedTo),
		nullableDate(t.DueDate), string(t.Priority), string(t.Status), t.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update task: %w", translateError(err))
	}
	return affected(result)
}

// DeleteTask removes a task and reports whether it existed.
func (s *Store) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, taskID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return affected(result)
}

// GetTask fetches a task with its project name and assignee username.
func (s *Store) GetTask(ctx context.Context, taskID string) (task.Task, error) {
	if err := s.ready(ctx); err != nil {
		return task.Task{}, err
	}
	return scanTask(s.sqlDB.QueryRowContext(ctx, taskSelect+`WHERE t.id = ?`, taskID))
}

// ListTasks returns every task in due-date order.
func (s *Store) ListTasks(ctx context.Context) ([]task.Task, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.queryTasks(ctx, taskSelect+taskOrder)
}

// ListTasksByProject returns one project's tasks in due-date order.
func (s *Store) ListTasksByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.queryTasks(ctx, taskSelect+`WHERE t.project_id = ?`+taskOrder, projectID)
}

// SearchTasks matches term case-insensitively against title and description.
func (s *Store) SearchTasks(ctx context.Context, term string) ([]task.Task, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	pattern := storage.LikePattern(strings.ToLower(term))
	return s.queryTasks(ctx,
		taskSelect+`WHERE tracker_lower(t.title) LIKE ? ESCAPE '\' OR tracker_lower(t.description) LIKE ? ESCAPE '\'`+taskOrder,
		pattern, pattern,
	)
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...any) ([]task.Task, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(row rowScanner) (task.Task, error) {
	var (
		t            task.Task
		assignedTo   sql.NullString
		dueDate      sql.NullString
		priority     string
		status       string
		createdAt    int64
		projectName  sql.NullString
		assigneeName sql.NullString
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.ProjectID, &assignedTo, &dueDate,
		&priority, &status, &createdAt, &projectName, &assigneeName)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, storage.ErrNotFound
	}
	if err != nil {
		return task.Task{}, fmt.Errorf("scan task: %w", err)
	}
	if t.DueDate, err = parseNullableDate(dueDate); err != nil {
		return task.Task{}, fmt.Errorf("scan task due date: %w", err)
	}
	t.AssignedTo = assignedTo.String
	t.Priority = task.Priority(priority)
	t.Status = task.Status(status)
	t.CreatedAt = fromMillis(createdAt)
	t.ProjectName = projectName.String
	t.AssigneeName = assigneeName.String
	return t, nil
}
