package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
	"github.com/louisbranch/tasktrack/internal/services/tracker/user"
)

// TaskRegistry is the task registry surface the pages use.
type TaskRegistry interface {
	ListAll(ctx context.Context) ([]task.Task, error)
	Search(ctx context.Context, term string) ([]task.Task, error)
	Get(ctx context.Context, taskID string) (task.Task, error)
	Create(ctx context.Context, input task.Input) (task.Task, error)
	Update(ctx context.Context, taskID string, input task.Input) (bool, error)
	Delete(ctx context.Context, taskID string) (bool, error)
}

// ProjectLister lists projects offered on task forms.
type ProjectLister interface {
	ListAll(ctx context.Context) ([]project.Project, error)
}

// UserLister lists users offered for assignment.
type UserLister interface {
	ListAll(ctx context.Context) ([]user.PublicUser, error)
}

// Gateway groups the tracker services the module reads and writes.
type Gateway struct {
	Tasks    TaskRegistry
	Projects ProjectLister
	Users    UserLister
}

func (g Gateway) complete() bool {
	return g.Tasks != nil && g.Projects != nil && g.Users != nil
}

// formChoices are the select options of a task form.
type formChoices struct {
	projects []project.Project
	users    []user.PublicUser
}

type service struct {
	gateway Gateway
}

func newService(gateway Gateway) service {
	return service{gateway: gateway}
}

func (s service) list(ctx context.Context) ([]task.Task, error) {
	return s.gateway.Tasks.ListAll(ctx)
}

// search lists every task when term is blank.
func (s service) search(ctx context.Context, term string) ([]task.Task, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.gateway.Tasks.ListAll(ctx)
	}
	return s.gateway.Tasks.Search(ctx, term)
}

func (s service) get(ctx context.Context, taskID string) (task.Task, error) {
	return s.gateway.Tasks.Get(ctx, taskID)
}

func (s service) choices(ctx context.Context) (formChoices, error) {
	projects, err := s.gateway.Projects.ListAll(ctx)
	if err != nil {
		return formChoices{}, fmt.Errorf("list projects: %w", err)
	}
	users, err := s.gateway.Users.ListAll(ctx)
	if err != nil {
		return formChoices{}, fmt.Errorf("list users: %w", err)
	}
	return formChoices{projects: projects, users: users}, nil
}

func (s service) create(ctx context.Context, input task.Input) (task.Task, error) {
	return s.gateway.Tasks.Create(ctx, input)
}

func (s service) update(ctx context.Context, taskID string, input task.Input) (bool, error) {
	return s.gateway.Tasks.Update(ctx, taskID, input)
}

// delete removes the task and returns it so callers can route back to its
// project.
func (s service) delete(ctx context.Context, taskID string) (task.Task, bool, error) {
	t, err := s.gateway.Tasks.Get(ctx, taskID)
	if err != nil {
		return task.Task{}, false, err
	}
	deleted, err := s.gateway.Tasks.Delete(ctx, t.ID)
	if err != nil {
		return task.Task{}, false, err
	}
	return t, deleted, nil
}
