package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

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

const taskOrder = ` ORDER BY t.due_date ASC NULLS LAST, t.created_at ASC, t.id ASC`

// PutTask inserts a task. A missing project surfaces as storage.ErrReferenceMissing.
func (s *Store) PutTask(ctx context.Context, t task.Task) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("task id is required")
	}
	_, err := s.pool.Exec(ctx, `
INSERT INTO tasks (id, title, description, project_id, assigned_to, due_date, priority, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Title, t.Description, t.ProjectID, nullableString(t.AssignedTo),
		utcDate(t.DueDate), string(t.Priority), string(t.Status), t.CreatedAt.UTC(),
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
	tag, err := s.pool.Exec(ctx, `
UPDATE tasks
SET title = $1, description = $2, project_id = $3, assigned_to = $4, due_date = $5, priority = $6, status = $7
WHERE id = $8`,
		t.Title, t.Description, t.ProjectID, nullableString(t.AssignedTo),
		utcDate(t.DueDate), string(t.Priority), string(t.Status), t.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update task: %w", translateError(err))
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteTask removes a task and reports whether it existed.
func (s *Store) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetTask fetches a task with its project name and assignee username.
func (s *Store) GetTask(ctx context.Context, taskID string) (task.Task, error) {
	if err := s.ready(ctx); err != nil {
		return task.Task{}, err
	}
	return scanTask(s.pool.QueryRow(ctx, taskSelect+`WHERE t.id = $1`, taskID))
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
	return s.queryTasks(ctx, taskSelect+`WHERE t.project_id = $1`+taskOrder, projectID)
}

// SearchTasks matches term case-insensitively against title and description.
func (s *Store) SearchTasks(ctx context.Context, term string) ([]task.Task, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.queryTasks(ctx,
		taskSelect+`WHERE t.title ILIKE $1 ESCAPE '\' OR t.description ILIKE $1 ESCAPE '\'`+taskOrder,
		storage.LikePattern(term),
	)
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...any) ([]task.Task, error) {
	rows, err := s.pool.Query(ctx, query, args...)
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

func scanTask(row pgx.Row) (task.Task, error) {
	var (
		t            task.Task
		assignedTo   *string
		priority     string
		status       string
		projectName  *string
		assigneeName *string
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.ProjectID, &assignedTo, &t.DueDate,
		&priority, &status, &t.CreatedAt, &projectName, &assigneeName)
	if errors.Is(err, pgx.ErrNoRows) {
		return task.Task{}, storage.ErrNotFound
	}
	if err != nil {
		return task.Task{}, fmt.Errorf("scan task: %w", err)
	}
	t.AssignedTo = derefString(assignedTo)
	t.DueDate = utcDate(t.DueDate)
	t.Priority = task.Priority(priority)
	t.Status = task.Status(status)
	t.CreatedAt = t.CreatedAt.UTC()
	t.ProjectName = derefString(projectName)
	t.AssigneeName = derefString(assigneeName)
	return t, nil
}
