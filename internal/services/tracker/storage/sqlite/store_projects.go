package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
)

const projectSelect = `
SELECT p.id, p.name, p.description, p.start_date, p.end_date, p.status,
       p.created_by, u.username, p.created_at
FROM projects p
LEFT JOIN users u ON u.id = p.created_by
`

const projectOrder = ` ORDER BY p.created_at DESC, p.rowid DESC`

// PutProject inserts a project.
func (s *Store) PutProject(ctx context.Context, p project.Project) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("project id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO projects (id, name, description, start_date, end_date, status, created_by, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description,
		nullableDate(p.StartDate), nullableDate(p.EndDate),
		string(p.Status), nullableString(p.CreatedBy), toMillis(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put project: %w", translateError(err))
	}
	return nil
}

// UpdateProject replaces the editable fields and reports whether the row exists.
func (s *Store) UpdateProject(ctx context.Context, p project.Project) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE projects
SET name = ?, description = ?, start_date = ?, end_date = ?, status = ?
WHERE id = ?`,
		p.Name, p.Description, nullableDate(p.StartDate), nullableDate(p.EndDate), string(p.Status), p.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update project: %w", translateError(err))
	}
	return affected(result)
}

// DeleteProject removes a project; its tasks go with it through ON DELETE CASCADE.
func (s *Store) DeleteProject(ctx context.Context, projectID string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, projectID)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return affected(result)
}

// GetProject fetches a project with its creator's username.
func (s *Store) GetProject(ctx context.Context, projectID string) (project.Project, error) {
	if err := s.ready(ctx); err != nil {
		return project.Project{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, projectSelect+`WHERE p.id = ?`, projectID)
	p, err := scanProject(row)
	if err != nil {
		return project.Project{}, err
	}
	return p, nil
}

// ListProjects returns every project, newest first.
func (s *Store) ListProjects(ctx context.Context) ([]project.Project, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.queryProjects(ctx, projectSelect+projectOrder)
}

// SearchProjects matches term case-insensitively against name and description.
func (s *Store) SearchProjects(ctx context.Context, term string) ([]project.Project, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	pattern := storage.LikePattern(strings.ToLower(term))
	return s.queryProjects(ctx,
		projectSelect+`WHERE tracker_lower(p.name) LIKE ? ESCAPE '\' OR tracker_lower(p.description) LIKE ? ESCAPE '\'`+projectOrder,
		pattern, pattern,
	)
}

// ProjectExists reports whether a project has projectID.
func (s *Store) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	found, err := s.exists(ctx, `SELECT 1 FROM projects WHERE id = ?`, projectID)
	if err != nil {
		return false, fmt.Errorf("check project: %w", err)
	}
	return found, nil
}

func (s *Store) queryProjects(ctx context.Context, query string, args ...any) ([]project.Project, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func scanProject(row rowScanner) (project.Project, error) {
	var (
		p           project.Project
		status      string
		startDate   sql.NullString
		endDate     sql.NullString
		createdBy   sql.NullString
		creatorName sql.NullString
		createdAt   int64
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &startDate, &endDate, &status, &createdBy, &creatorName, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return project.Project{}, storage.ErrNotFound
	}
	if err != nil {
		return project.Project{}, fmt.Errorf("scan project: %w", err)
	}
	if p.StartDate, err = parseNullableDate(startDate); err != nil {
		return project.Project{}, fmt.Errorf("scan project start date: %w", err)
	}
	if p.EndDate, err = parseNullableDate(endDate); err != nil {
		return project.Project{}, fmt.Errorf("scan project end date: %w", err)
	}
	p.Status = project.Status(status)
	p.CreatedBy = createdBy.String
	p.CreatorName = creatorName.String
	p.CreatedAt = fromMillis(createdAt)
	return p, nil
}
