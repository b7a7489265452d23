package task

import (
	"context"
	"strings"

	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
)

type fakeStore struct {
	tasks  map[string]Task
	putErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{tasks: map[string]Task{}}
}

func (s *fakeStore) PutTask(_ context.Context, t Task) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.tasks[t.ID] = t
	return nil
}

func (s *fakeStore) UpdateTask(_ context.Context, t Task) (bool, error) {
	existing, ok := s.tasks[t.ID]
	if !ok {
		return false, nil
	}
	t.CreatedAt = existing.CreatedAt
	s.tasks[t.ID] = t
	return true, nil
}

func (s *fakeStore) DeleteTask(_ context.Context, taskID string) (bool, error) {
	if _, ok := s.tasks[taskID]; !ok {
		return false, nil
	}
	delete(s.tasks, taskID)
	return true, nil
}

func (s *fakeStore) GetTask(_ context.Context, taskID string) (Task, error) {
	t, ok := s.tasks[taskID]
	if !ok {
		return Task{}, storage.ErrNotFound
	}
	return t, nil
}

func (s *fakeStore) ListTasks(context.Context) ([]Task, error) {
	var out []Task
	for _, t := range s.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (s *fakeStore) ListTasksByProject(_ context.Context, projectID string) ([]Task, error) {
	var out []Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeStore) SearchTasks(_ context.Context, term string) ([]Task, error) {
	var out []Task
	term = strings.ToLower(term)
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Title), term) || strings.Contains(strings.ToLower(t.Description), term) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeRefs struct {
	projects map[string]bool
	users    map[string]bool
	err      error
}

func (f fakeRefs) ProjectExists(_ context.Context, projectID string) (bool, error) {
	return f.projects[projectID], f.err
}

func (f fakeRefs) UserExists(_ context.Context, userID string) (bool, error) {
	return f.users[userID], f.err
}
