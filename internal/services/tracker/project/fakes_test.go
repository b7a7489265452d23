package project

import (
	"context"
	"sort"
	"strings"

	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
)

type fakeStore struct {
	projects map[string]Project
	err      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{projects: map[string]Project{}}
}

func (s *fakeStore) PutProject(_ context.Context, p Project) error {
	if s.err != nil {
		return s.err
	}
	s.projects[p.ID] = p
	return nil
}

func (s *fakeStore) UpdateProject(_ context.Context, p Project) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	existing, ok := s.projects[p.ID]
	if !ok {
		return false, nil
	}
	p.CreatedBy = existing.CreatedBy
	p.CreatedAt = existing.CreatedAt
	s.projects[p.ID] = p
	return true, nil
}

func (s *fakeStore) DeleteProject(_ context.Context, projectID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.projects[projectID]; !ok {
		return false, nil
	}
	delete(s.projects, projectID)
	return true, nil
}

func (s *fakeStore) GetProject(_ context.Context, projectID string) (Project, error) {
	if s.err != nil {
		return Project{}, s.err
	}
	p, ok := s.projects[projectID]
	if !ok {
		return Project{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *fakeStore) ListProjects(ctx context.Context) ([]Project, error) {
	return s.SearchProjects(ctx, "")
}

func (s *fakeStore) SearchProjects(_ context.Context, term string) ([]Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	term = strings.ToLower(term)
	var out []Project
	for _, p := range s.projects {
		if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.Description), term) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
