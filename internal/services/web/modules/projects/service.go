package projects

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
	"github.com/louisbranch/tasktrack/internal/services/tracker/user"
)

// ProjectRegistry is the project registry surface the pages use.
type ProjectRegistry interface {
	ListAll(ctx context.Context) ([]project.Project, error)
	Search(ctx context.Context, term string) ([]project.Project, error)
	Get(ctx context.Context, projectID string) (project.Project, error)
	Create(ctx context.Context, createdBy string, input project.Input) (project.Project, error)
	Update(ctx context.Context, projectID string, input project.Input) (bool, error)
	Delete(ctx context.Context, projectID string) (bool, error)
}

// TaskLister lists the tasks of one project.
type TaskLister interface {
	ListByProject(ctx context.Context, projectID string) ([]task.Task, error)
}

// UserLister lists users offered for assignment.
type UserLister interface {
	ListAll(ctx context.Context) ([]user.PublicUser, error)
}

// Gateway groups the tracker services the module reads and writes.
type Gateway struct {
	Projects ProjectRegistry
	Tasks    TaskLister
	Users    UserLister
}

func (g Gateway) complete() bool {
	return g.Projects != nil && g.Tasks != nil && g.Users != nil
}

// projectDetail is one project with its tasks and assignable users.
type projectDetail struct {
	project project.Project
	tasks   []task.Task
	users   []user.PublicUser
}

type service struct {
	gateway Gateway
}

func newService(gateway Gateway) service {
	return service{gateway: gateway}
}

func (s service) list(ctx context.Context) ([]project.Project, error) {
	return s.gateway.Projects.ListAll(ctx)
}

// search lists every project when term is blank.
func (s service) search(ctx context.Context, term string) ([]project.Project, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.gateway.Projects.ListAll(ctx)
	}
	return s.gateway.Projects.Search(ctx, term)
}

func (s service) get(ctx context.Context, projectID string) (project.Project, error) {
	return s.gateway.Projects.Get(ctx, projectID)
}

func (s service) detail(ctx context.Context, projectID string) (projectDetail, error) {
	p, err := s.gateway.Projects.Get(ctx, projectID)
	if err != nil {
		return projectDetail{}, err
	}
	tasks, err := s.gateway.Tasks.ListByProject(ctx, p.ID)
	if err != nil {
		return projectDetail{}, fmt.Errorf("list project tasks: %w", err)
	}
	users, err := s.gateway.Users.ListAll(ctx)
	if err != nil {
		return projectDetail{}, fmt.Errorf("list users: %w", err)
	}
	return projectDetail{project: p, tasks: tasks, users: users}, nil
}

func (s service) create(ctx context.Context, createdBy string, input project.Input) (project.Project, error) {
	return s.gateway.Projects.Create(ctx, createdBy, input)
}

func (s service) update(ctx context.Context, projectID string, input project.Input) (bool, error) {
	return s.gateway.Projects.Update(ctx, projectID, input)
}

func (s service) delete(ctx context.Context, projectID string) (bool, error) {
	return s.gateway.Projects.Delete(ctx, projectID)
}
