package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
)

const projectSelect = `
SELECT p.id, p.name, p.description, p.start_date, p.end_date, p.status,
       p.created_by, u.username, p.created_at
FROM projects p
LEFT JOIN users u ON u.id = p.created_by
`

const projectOrder = ` ORDER BY p.created_at DESC, p.id DESC`

// PutProject inserts a project.
func (s *Store) PutProject(ctx context.Context, p project.Project) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("project id is required")
	}
	_, err := s.pool.Exec(ctx, `
INSERT INTO projects (id, name, description, start_date, end_date, status, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Name, p.Description, utcDate(p.StartDate), utcDate(p.EndDate),
		string(p.Status), nullableString(p.CreatedBy), p.CreatedAt.UTC(),
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
	tag, err := s.pool.Exec(ctx, `
UPDATE projects
SET name = $1, description = $2, start_date = $3, end_date = $4, status = $5
WHERE id = $6`,
		p.Name, p.Description, utcDate(p.StartDate), utcDate(p.EndDate), string(p.Status), p.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update project: %w", translateError(err))
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteProject removes a project; its tasks go with it through ON DELETE CASCADE.
func (s *Store) DeleteProject(ctx context.Context, projectID string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetProject fetches a project with its creator's username.
func (s *Store) GetProject(ctx context.Context, projectID string) (project.Project, error) {
	if err := s.ready(ctx); err != nil {
		return project.Project{}, err
	}
	return scanProject(s.pool.QueryRow(ctx, projectSelect+`WHERE p.id = $1`, projectID))
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
	return s.queryProjects(ctx,
		projectSelect+`WHERE p.name ILIKE $1 ESCAPE '\' OR p.description ILIKE $1 ESCAPE '\'`+projectOrder,
		storage.LikePattern(term),
	)
}

// ProjectExists reports whether a project has projectID.
func (s *Store) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	found, err := s.exists(ctx, `SELECT 1 FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return false, fmt.Errorf("check project: %w", err)
	}
	return found, nil
}

func (s *Store) queryProjects(ctx context.Context, query string, args ...any) ([]project.Project, error) {
	rows, err := s.pool.Query(ctx, query, args...)
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

func scanProject(row pgx.Row) (project.Project, error) {
	var (
		p           project.Project
		status      string
		createdBy   *string
		creatorName *string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate, &status, &createdBy, &creatorName, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return project.Project{}, storage.ErrNotFound
	}
	if err != nil {
		return project.Project{}, fmt.Errorf("scan project: %w", err)
	}
	p.StartDate = utcDate(p.StartDate)
	p.EndDate = utcDate(p.EndDate)
	p.Status = project.Status(status)
	p.CreatedBy = derefString(createdBy)
	p.CreatorName = derefString(creatorName)
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}
