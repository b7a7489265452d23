package tasks

import (
	"context"
	"strings"

	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
	"github.com/louisbranch/tasktrack/internal/services/tracker/user"
)

// fakeTasks implements TaskRegistry with the registry's validation rules for
// required fields and project references.
type fakeTasks struct {
	tasks     []task.Task
	projects  map[string]string
	err       error
	deleteErr error

	lastInput  task.Input
	lastSearch string
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{
		projects: map[string]string{"p1": "Launch", "p2": "Docs"},
		tasks: []task.Task{
			{ID: "t1", Title: "Plan", ProjectID: "p1", ProjectName: "Launch", AssignedTo: "u2", AssigneeName: "bob", Priority: task.PriorityHigh, Status: task.StatusInProgress},
			{ID: "t2", Title: "Write", ProjectID: "p2", ProjectName: "Docs", Priority: task.PriorityLow, Status: task.StatusToDo},
		},
	}
}

func (f *fakeTasks) ListAll(context.Context) ([]task.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

func (f *fakeTasks) Search(_ context.Context, term string) ([]task.Task, error) {
	f.lastSearch = term
	if f.err != nil {
		return nil, f.err
	}
	var out []task.Task
	for _, t := range f.tasks {
		if strings.Contains(strings.ToLower(t.Title+" "+t.Description), strings.ToLower(term)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTasks) Get(_ context.Context, taskID string) (task.Task, error) {
	if f.err != nil {
		return task.Task{}, f.err
	}
	for _, t := range f.tasks {
		if t.ID == taskID {
			return t, nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

func (f *fakeTasks) validate(input task.Input) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.ProjectID) == "" {
		return task.ErrFieldsRequired
	}
	if _, ok := f.projects[input.ProjectID]; !ok {
		return task.ErrProjectMissing
	}
	if _, err := task.ParsePriority(input.Priority); err != nil {
		return err
	}
	return nil
}

func (f *fakeTasks) Create(_ context.Context, input task.Input) (task.Task, error) {
	f.lastInput = input
	if f.err != nil {
		return task.Task{}, f.err
	}
	if err := f.validate(input); err != nil {
		return task.Task{}, err
	}
	t := task.Task{ID: "t-new", Title: input.Title, ProjectID: input.ProjectID}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeTasks) Update(_ context.Context, taskID string, input task.Input) (bool, error) {
	f.lastInput = input
	if f.err != nil {
		return false, f.err
	}
	if err := f.validate(input); err != nil {
		return false, err
	}
	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks[i].Title = input.Title
			f.tasks[i].ProjectID = input.ProjectID
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTasks) Delete(_ context.Context, taskID string) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeProjects struct {
	projects []project.Project
	err      error
}

func (f *fakeProjects) ListAll(context.Context) ([]project.Project, error) {
	return f.projects, f.err
}

type fakeUsers struct {
	users []user.PublicUser
	err   error
}

func (f *fakeUsers) ListAll(context.Context) ([]user.PublicUser, error) {
	return f.users, f.err
}
