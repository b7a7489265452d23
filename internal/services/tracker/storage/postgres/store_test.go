package postgres

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/tasktrack/internal/services/tracker/dates"
	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
	"github.com/louisbranch/tasktrack/internal/services/tracker/user"
)

// Tests share one database and truncate between runs, so none are parallel.
const testDatabaseURLEnv = "TASKTRACK_TEST_DATABASE_URL"

var baseTime = time.Date(2026, time.February, 22, 16, 40, 0, 0, time.UTC)

func TestOpenRequiresURL(t *testing.T) {
	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatal("expected empty url error")
	}
}

func TestTranslateErrorPassesThroughUnknown(t *testing.T) {
	cause := errors.New("boom")
	if got := translateError(cause); got != cause {
		t.Fatalf("translateError() = %v, want cause", got)
	}
	if translateError(nil) != nil {
		t.Fatal("expected nil")
	}
}

func TestUsersProjectsTasksRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	alice := user.User{ID: "u-alice", Username: "alice", Email: "a@x.com", PasswordHash: "h", CreatedAt: baseTime}
	if err := store.PutUser(ctx, alice); err != nil {
		t.Fatalf("put user: %v", err)
	}
	dup := alice
	dup.ID = "u-dup"
	if err := store.PutUser(ctx, dup); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	for i, name := range []string{"Launch", "Website"} {
		p := project.Project{
			ID: "p-" + name, Name: name, Status: project.DefaultStatus,
			CreatedBy: alice.ID, CreatedAt: baseTime.Add(time.Duration(i) * time.Hour),
		}
		if err := store.PutProject(ctx, p); err != nil {
			t.Fatalf("put project: %v", err)
		}
	}
	projects, err := store.ListProjects(ctx)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 2 || projects[0].Name != "Website" || projects[0].CreatorName != "alice" {
		t.Fatalf("unexpected projects %+v", projects)
	}
	found, err := store.SearchProjects(ctx, "LAUN")
	if err != nil || len(found) != 1 {
		t.Fatalf("search = %d, %v", len(found), err)
	}

	due, _ := dates.Parse("2026-04-01")
	for _, tk := range []task.Task{
		{ID: "t-undated", Title: "Someday", ProjectID: "p-Launch", CreatedAt: baseTime},
		{ID: "t-dated", Title: "Plan", ProjectID: "p-Launch", DueDate: due, AssignedTo: alice.ID, CreatedAt: baseTime},
	} {
		tk.Priority = task.DefaultPriority
		tk.Status = task.DefaultStatus
		if err := store.PutTask(ctx, tk); err != nil {
			t.Fatalf("put task: %v", err)
		}
	}
	tasks, err := store.ListTasksByProject(ctx, "p-Launch")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "t-dated" || tasks[0].AssigneeName != "alice" || dates.Format(tasks[0].DueDate) != "2026-04-01" {
		t.Fatalf("unexpected order or joins %+v", tasks)
	}

	ghost := task.Task{ID: "t-ghost", Title: "x", ProjectID: "missing", Priority: task.DefaultPriority, Status: task.DefaultStatus, CreatedAt: baseTime}
	if err := store.PutTask(ctx, ghost); !errors.Is(err, storage.ErrReferenceMissing) {
		t.Fatalf("expected ErrReferenceMissing, got %v", err)
	}

	if deleted, err := store.DeleteProject(ctx, "p-Launch"); err != nil || !deleted {
		t.Fatalf("delete project = %v, %v", deleted, err)
	}
	if _, err := store.GetTask(ctx, "t-dated"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected cascade, got %v", err)
	}
}

func TestSessions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutUser(ctx, user.User{ID: "u-1", Username: "bob", Email: "b@x.com", PasswordHash: "h", CreatedAt: baseTime}); err != nil {
		t.Fatalf("put user: %v", err)
	}
	record := storage.SessionRecord{Token: "tok", UserID: "u-1", Username: "bob", CreatedAt: baseTime, ExpiresAt: baseTime.Add(time.Hour)}
	if err := store.PutSession(ctx, record); err != nil {
		t.Fatalf("put session: %v", err)
	}
	got, err := store.GetSession(ctx, "tok")
	if err != nil || !got.ExpiresAt.Equal(record.ExpiresAt) {
		t.Fatalf("get session = %+v, %v", got, err)
	}
	if err := store.DeleteExpiredSessions(ctx, baseTime.Add(2*time.Hour)); err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if _, err := store.GetSession(ctx, "tok"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected purged session, got %v", err)
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := strings.TrimSpace(os.Getenv(testDatabaseURLEnv))
	if url == "" {
		t.Skipf("%s not set", testDatabaseURLEnv)
	}
	store, err := Open(context.Background(), url)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := store.pool.Exec(context.Background(), `TRUNCATE sessions, tasks, projects, users`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
