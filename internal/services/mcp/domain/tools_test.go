package domain

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
)

type fakeProjects struct {
	projects   []project.Project
	err        error
	lastSearch string
}

func (f *fakeProjects) ListAll(context.Context) ([]project.Project, error) {
	return f.projects, f.err
}

func (f *fakeProjects) Search(_ context.Context, term string) ([]project.Project, error) {
	f.lastSearch = term
	if f.err != nil {
		return nil, f.err
	}
	var out []project.Project
	for _, p := range f.projects {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) Get(_ context.Context, projectID string) (project.Project, error) {
	for _, p := range f.projects {
		if p.ID == projectID {
			return p, nil
		}
	}
	return project.Project{}, project.ErrNotFound
}

type fakeTasks struct {
	tasks []task.Task
	err   error
}

func (f *fakeTasks) ListAll(context.Context) ([]task.Task, error) {
	return f.tasks, f.err
}

func (f *fakeTasks) ListByProject(_ context.Context, projectID string) ([]task.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []task.Task
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTasks) Search(_ context.Context, term string) ([]task.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []task.Task
	for _, t := range f.tasks {
		if strings.Contains(strings.ToLower(t.Title), strings.ToLower(term)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func fixtures() (*fakeProjects, *fakeTasks) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	projects := &fakeProjects{projects: []project.Project{
		{ID: "p1", Name: "Launch", Status: project.StatusInProgress, StartDate: &start, CreatorName: "alice", CreatedAt: created},
		{ID: "p2", Name: "Docs", Status: project.StatusNotStarted},
	}}
	tasks := &fakeTasks{tasks: []task.Task{
		{ID: "t1", Title: "Plan", ProjectID: "p1", ProjectName: "Launch", AssigneeName: "bob", DueDate: &due, Priority: task.PriorityHigh, Status: task.StatusToDo, CreatedAt: created},
		{ID: "t2", Title: "Write guide", ProjectID: "p2", ProjectName: "Docs", Priority: task.PriorityLow, Status: task.StatusDone},
	}}
	return projects, tasks
}

func TestProjectListHandler(t *testing.T) {
	t.Run("all", func(t *testing.T) {
		projects, _ := fixtures()
		toolResult, result, err := ProjectListHandler(projects)(context.Background(), nil, ProjectListInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toolResult == nil {
			t.Fatal("expected non-nil tool result")
		}
		if len(result.Projects) != 2 {
			t.Fatalf("expected 2 projects, got %d", len(result.Projects))
		}
		first := result.Projects[0]
		if first.StartDate != "2026-03-01" || first.EndDate != "" {
			t.Errorf("dates = %q/%q", first.StartDate, first.EndDate)
		}
		if first.CreatedBy != "alice" || first.CreatedAt != "2026-02-01T09:30:00Z" {
			t.Errorf("creator = %q at %q", first.CreatedBy, first.CreatedAt)
		}
		if first.Status != "In Progress" {
			t.Errorf("status = %q", first.Status)
		}
	})

	t.Run("search", func(t *testing.T) {
		projects, _ := fixtures()
		_, result, err := ProjectListHandler(projects)(context.Background(), nil, ProjectListInput{Query: " doc "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if projects.lastSearch != "doc" {
			t.Errorf("search term = %q", projects.lastSearch)
		}
		if len(result.Projects) != 1 || result.Projects[0].ID != "p2" {
			t.Fatalf("unexpected projects: %+v", result.Projects)
		}
	})

	t.Run("storage error", func(t *testing.T) {
		projects := &fakeProjects{err: errors.New("database is locked")}
		if _, _, err := ProjectListHandler(projects)(context.Background(), nil, ProjectListInput{}); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestProjectGetHandler(t *testing.T) {
	t.Run("with tasks", func(t *testing.T) {
		projects, tasks := fixtures()
		_, result, err := ProjectGetHandler(projects, tasks)(context.Background(), nil, ProjectGetInput{ProjectID: "p1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Project.Name != "Launch" {
			t.Errorf("project = %q", result.Project.Name)
		}
		if len(result.Tasks) != 1 {
			t.Fatalf("expected 1 task, got %d", len(result.Tasks))
		}
		got := result.Tasks[0]
		if got.AssignedTo != "bob" || got.DueDate != "2026-03-15" || got.Priority != "High" || got.Status != "To Do" {
			t.Errorf("unexpected task: %+v", got)
		}
	})

	t.Run("empty project has empty task list", func(t *testing.T) {
		projects, _ := fixtures()
		_, result, err := ProjectGetHandler(projects, &fakeTasks{})(context.Background(), nil, ProjectGetInput{ProjectID: "p2"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Tasks == nil || len(result.Tasks) != 0 {
			t.Fatalf("tasks = %#v, want empty slice", result.Tasks)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		projects, tasks := fixtures()
		if _, _, err := ProjectGetHandler(projects, tasks)(context.Background(), nil, ProjectGetInput{}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		projects, tasks := fixtures()
		_, _, err := ProjectGetHandler(projects, tasks)(context.Background(), nil, ProjectGetInput{ProjectID: "nope"})
		if !errors.Is(err, project.ErrNotFound) {
			t.Fatalf("err = %v, want not found", err)
		}
	})
}

func TestTaskSearchHandler(t *testing.T) {
	t.Run("blank query lists all", func(t *testing.T) {
		_, tasks := fixtures()
		_, result, err := TaskSearchHandler(tasks)(context.Background(), nil, TaskSearchInput{Query: "  "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Tasks) != 2 {
			t.Fatalf("expected 2 tasks, got %d", len(result.Tasks))
		}
	})

	t.Run("match", func(t *testing.T) {
		_, tasks := fixtures()
		_, result, err := TaskSearchHandler(tasks)(context.Background(), nil, TaskSearchInput{Query: "guide"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Tasks) != 1 || result.Tasks[0].ID != "t2" || result.Tasks[0].ProjectName != "Docs" {
			t.Fatalf("unexpected tasks: %+v", result.Tasks)
		}
		if result.Tasks[0].AssignedTo != "" || result.Tasks[0].DueDate != "" {
			t.Errorf("unassigned undated task rendered %+v", result.Tasks[0])
		}
	})

	t.Run("storage error", func(t *testing.T) {
		if _, _, err := TaskSearchHandler(&fakeTasks{err: errors.New("closed")})(context.Background(), nil, TaskSearchInput{Query: "x"}); err == nil {
			t.Fatal("expected error")
		}
	})
}
