package projects

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/tasktrack/internal/platform/requestctx"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
	"github.com/louisbranch/tasktrack/internal/services/tracker/user"
)

var alice = requestctx.Identity{UserID: "u1", Username: "alice"}

type projectsFixture struct {
	projects *fakeProjects
	tasks    *fakeTasks
	users    *fakeUsers
	handler  http.Handler
}

func newProjectsFixture(t *testing.T) projectsFixture {
	t.Helper()
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	f := projectsFixture{
		projects: newFakeProjects(),
		tasks: &fakeTasks{byProject: map[string][]task.Task{
			"p1": {{ID: "t1", Title: "Plan", ProjectID: "p1", Priority: task.PriorityMedium, Status: task.StatusToDo, DueDate: &due}},
		}},
		users: &fakeUsers{users: []user.PublicUser{{ID: "u1", Username: "alice"}, {ID: "u2", Username: "bob"}}},
	}
	mount, err := New(WithGateway(Gateway{Projects: f.projects, Tasks: f.tasks, Users: f.users})).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	f.handler = mount.Handler
	return f
}

func (f projectsFixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req = req.WithContext(requestctx.WithIdentity(req.Context(), alice))
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func assertRedirect(t *testing.T, rr *httptest.ResponseRecorder, path, param, want string) {
	t.Helper()
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d (body %q)", rr.Code, http.StatusFound, rr.Body.String())
	}
	location, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if location.Path != path {
		t.Fatalf("location = %q, want path %q", location.String(), path)
	}
	if got := location.Query().Get(param); got != want {
		t.Fatalf("%s = %q, want %q", param, got, want)
	}
}

func assertBody(t *testing.T, rr *httptest.ResponseRecorder, status int, markers ...string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status = %d, want %d", rr.Code, status)
	}
	body := rr.Body.String()
	for _, marker := range markers {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
}

func TestListRendersProjectsWithCreator(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	for _, path := range []string{"/projects", "/projects/"} {
		rr := f.do(http.MethodGet, path, nil)
		assertBody(t, rr, http.StatusOK, `id="projects-root"`, "Launch", "Docs", `class="creator">alice<`, "Signed in as alice")
	}
}

func TestListNoticesFromQuery(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	rr := f.do(http.MethodGet, "/projects?success=Project+deleted+successfully", nil)
	assertBody(t, rr, http.StatusOK, "Project deleted successfully")
}

func TestListStorageFailureRendersServerError(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	f.projects.err = errors.New("select projects: connection refused")
	rr := f.do(http.MethodGet, "/projects", nil)
	assertBody(t, rr, http.StatusInternalServerError, "An error occurred. Please try again.")
	if strings.Contains(rr.Body.String(), "connection refused") {
		t.Fatal("storage detail leaked into page")
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	rr := f.do(http.MethodGet, "/projects/search?q=live", nil)
	assertBody(t, rr, http.StatusOK, "Launch", "Results for &#34;live&#34;")
	if strings.Contains(rr.Body.String(), ">Docs<") {
		t.Fatalf("search returned non-matching project: %q", rr.Body.String())
	}
	if f.projects.lastSearch != "live" {
		t.Fatalf("search term = %q, want %q", f.projects.lastSearch, "live")
	}
}

func TestSearchBlankListsAll(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	rr := f.do(http.MethodGet, "/projects/search?q=+", nil)
	assertBody(t, rr, http.StatusOK, "Launch", "Docs")
	if f.projects.lastSearch != "" {
		t.Fatalf("blank query reached Search with %q", f.projects.lastSearch)
	}
}

func TestNewFormDefaultsStatus(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	rr := f.do(http.MethodGet, "/projects/new", nil)
	assertBody(t, rr, http.StatusOK, `id="project-form"`, `action="/projects"`, `value="Not Started" selected`)
}

func TestCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		form     url.Values
		err      error
		wantPath string
		param    string
		want     string
	}{
		{name: "success", form: url.Values{"name": {"Launch 2"}}, wantPath: "/projects", param: "success", want: "Project created successfully"},
		{name: "missing name", form: url.Values{"description": {"x"}}, wantPath: "/projects/new", param: "error", want: "Project name is required"},
		{name: "storage failure", form: url.Values{"name": {"Launch 2"}}, err: errors.New("insert: disk full"), wantPath: "/projects/new", param: "error", want: "Error creating project"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newProjectsFixture(t)
			f.projects.err = tc.err
			assertRedirect(t, f.do(http.MethodPost, "/projects", tc.form), tc.wantPath, tc.param, tc.want)
		})
	}
}

func TestCreateRecordsCreator(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	f.do(http.MethodPost, "/projects", url.Values{"name": {"Launch 2"}, "status": {"In Progress"}, "start_date": {"2026-01-01"}})
	if f.projects.createdBy != "u1" {
		t.Fatalf("createdBy = %q, want %q", f.projects.createdBy, "u1")
	}
	if f.projects.lastInput.Status != "In Progress" || f.projects.lastInput.StartDate != "2026-01-01" {
		t.Fatalf("input = %+v", f.projects.lastInput)
	}
}

func TestViewListsTasksAndUsers(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	rr := f.do(http.MethodGet, "/projects/p1", nil)
	assertBody(t, rr, http.StatusOK,
		`id="project-detail"`,
		"Plan",
		"To Do",
		"Medium",
		"2026-05-01",
		`value="u2"`,
		"/tasks/t1/edit?from_project=1",
		"/tasks/new?project_id=p1",
	)
}

func TestViewMissingProjectIsNotFound(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	rr := f.do(http.MethodGet, "/projects/nope", nil)
	assertBody(t, rr, http.StatusNotFound, "Project not found")
}

func TestViewTaskFailureRendersServerError(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	f.tasks.err = errors.New("select tasks: timeout")
	rr := f.do(http.MethodGet, "/projects/p1", nil)
	assertBody(t, rr, http.StatusInternalServerError)
}

func TestEditFormPrefills(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	rr := f.do(http.MethodGet, "/projects/p2/edit", nil)
	assertBody(t, rr, http.StatusOK, `action="/projects/p2"`, `value="Docs"`, `value="Completed" selected`)

	missing := f.do(http.MethodGet, "/projects/nope/edit", nil)
	assertBody(t, missing, http.StatusNotFound)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		form     url.Values
		err      error
		wantPath string
		param    string
		want     string
	}{
		{name: "success", target: "/projects/p1", form: url.Values{"name": {"Relaunch"}}, wantPath: "/projects/p1", param: "success", want: "Project updated successfully"},
		{name: "missing name", target: "/projects/p1", form: url.Values{"name": {" "}}, wantPath: "/projects/p1/edit", param: "error", want: "Project name is required"},
		{name: "unknown id", target: "/projects/nope", form: url.Values{"name": {"X"}}, wantPath: "/projects/nope/edit", param: "error", want: "Project not found"},
		{name: "storage failure", target: "/projects/p1", form: url.Values{"name": {"X"}}, err: errors.New("update: locked"), wantPath: "/projects/p1/edit", param: "error", want: "Error updating project"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newProjectsFixture(t)
			f.projects.err = tc.err
			assertRedirect(t, f.do(http.MethodPost, tc.target, tc.form), tc.wantPath, tc.param, tc.want)
		})
	}
}

func TestDeleteTwiceReportsNotFound(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	assertRedirect(t, f.do(http.MethodPost, "/projects/p1/delete", url.Values{}), "/projects", "success", "Project deleted successfully")
	assertRedirect(t, f.do(http.MethodPost, "/projects/p1/delete", url.Values{}), "/projects", "error", "Project not found")
}

func TestDeleteStorageFailure(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	f.projects.err = errors.New("delete: locked")
	assertRedirect(t, f.do(http.MethodPost, "/projects/p1/delete", url.Values{}), "/projects", "error", "Error deleting project")
}

func TestDeleteRequiresPost(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	rr := f.do(http.MethodGet, "/projects/p1/delete", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if len(f.projects.projects) != 2 {
		t.Fatal("GET delete removed a project")
	}
}

func TestUnknownNestedPathIsNotFound(t *testing.T) {
	t.Parallel()

	f := newProjectsFixture(t)
	rr := f.do(http.MethodGet, "/projects/p1/unknown", nil)
	assertBody(t, rr, http.StatusNotFound, `id="error-root"`)
}
