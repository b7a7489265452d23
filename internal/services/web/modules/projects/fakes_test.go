package projects

import (
	"context"
	"strings"

	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
	"github.com/louisbranch/tasktrack/internal/services/tracker/user"
)

// fakeProjects implements ProjectRegistry over an ordered slice.
type fakeProjects struct {
	projects []project.Project
	err      error

	createdBy  string
	lastInput  project.Input
	lastSearch string
}

func newFakeProjects() *fakeProjects {
	return &fakeProjects{projects: []project.Project{
		{ID: "p1", Name: "Launch", Description: "Go live", Status: project.StatusNotStarted, CreatedBy: "u1", CreatorName: "alice"},
		{ID: "p2", Name: "Docs", Status: project.StatusCompleted, CreatedBy: "u2", CreatorName: "bob"},
	}}
}

func (f *fakeProjects) ListAll(context.Context) ([]project.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.projects, nil
}

func (f *fakeProjects) Search(_ context.Context, term string) ([]project.Project, error) {
	f.lastSearch = term
	if f.err != nil {
		return nil, f.err
	}
	var out []project.Project
	for _, p := range f.projects {
		if strings.Contains(strings.ToLower(p.Name+" "+p.Description), strings.ToLower(term)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) Get(_ context.Context, projectID string) (project.Project, error) {
	if f.err != nil {
		return project.Project{}, f.err
	}
	for _, p := range f.projects {
		if p.ID == projectID {
			return p, nil
		}
	}
	return project.Project{}, project.ErrNotFound
}

func (f *fakeProjects) Create(_ context.Context, createdBy string, input project.Input) (project.Project, error) {
	f.createdBy = createdBy
	f.lastInput = input
	if f.err != nil {
		return project.Project{}, f.err
	}
	if strings.TrimSpace(input.Name) == "" {
		return project.Project{}, project.ErrNameRequired
	}
	p := project.Project{ID: "p-new", Name: input.Name, CreatedBy: createdBy}
	f.projects = append(f.projects, p)
	return p, nil
}

func (f *fakeProjects) Update(_ context.Context, projectID string, input project.Input) (bool, error) {
	f.lastInput = input
	if f.err != nil {
		return false, f.err
	}
	if strings.TrimSpace(input.Name) == "" {
		return false, project.ErrNameRequired
	}
	for i, p := range f.projects {
		if p.ID == projectID {
			f.projects[i].Name = input.Name
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProjects) Delete(_ context.Context, projectID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i, p := range f.projects {
		if p.ID == projectID {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeTasks struct {
	byProject map[string][]task.Task
	err       error
}

func (f *fakeTasks) ListByProject(_ context.Context, projectID string) ([]task.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byProject[projectID], nil
}

type fakeUsers struct {
	users []user.PublicUser
	err   error
}

func (f *fakeUsers) ListAll(context.Context) ([]user.PublicUser, error) {
	return f.users, f.err
}
