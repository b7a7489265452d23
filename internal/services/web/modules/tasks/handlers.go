package tasks

import (
	"errors"
	"net/http"
	"strings"

	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/flash"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tasktrack/internal/services/web/routepath"
	"github.com/louisbranch/tasktrack/internal/services/web/templates"
	"github.com/louisbranch/tasktrack/internal/services/web/viewmodel"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.list(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc := h.PageLocalizer(r)
	view := templates.TaskListView{Tasks: viewmodel.TaskRows(tasks)}
	h.WritePage(w, r, templates.T(loc, "task.list.title"), http.StatusOK, templates.TaskList(view, loc))
}

func (h handlers) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	tasks, err := h.service.search(r.Context(), query)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc := h.PageLocalizer(r)
	view := templates.TaskListView{
		Tasks:    viewmodel.TaskRows(tasks),
		Query:    query,
		Searched: query != "",
	}
	h.WritePage(w, r, templates.T(loc, "task.list.title"), http.StatusOK, templates.TaskList(view, loc))
}

func (h handlers) handleNew(w http.ResponseWriter, r *http.Request) {
	choices, err := h.service.choices(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	projectID := strings.TrimSpace(r.URL.Query().Get(routepath.ProjectIDParam))
	loc := h.PageLocalizer(r)
	view := templates.TaskFormView{
		Task:       templates.TaskRow{ProjectID: projectID},
		Projects:   viewmodel.ProjectOptions(choices.projects, projectID, loc),
		Users:      viewmodel.UserOptions(choices.users, "", loc),
		Priorities: viewmodel.TaskPriorityOptions(""),
		Statuses:   viewmodel.TaskStatusOptions(""),
	}
	h.WritePage(w, r, templates.T(loc, "task.new.title"), http.StatusOK, templates.TaskForm(view, loc))
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, routepath.TasksNew, flash.Error("task.create_failed"))
		return
	}
	input := taskInput(r)
	created, err := h.service.create(r.Context(), input)
	if err != nil {
		h.RedirectError(w, r, routepath.TasksNewForProject(input.ProjectID), err, "task.create_failed")
		return
	}
	h.Redirect(w, r, routepath.Project(created.ProjectID), flash.Success("task.created"))
}

func (h handlers) handleView(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.get(r.Context(), r.PathValue("taskID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc := h.PageLocalizer(r)
	h.WritePage(w, r, t.Title, http.StatusOK, templates.TaskDetail(viewmodel.TaskRow(t), loc))
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.get(r.Context(), r.PathValue("taskID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	choices, err := h.service.choices(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc := h.PageLocalizer(r)
	view := templates.TaskFormView{
		Task:        viewmodel.TaskRow(t),
		Editing:     true,
		FromProject: fromProject(r),
		Projects:    viewmodel.ProjectOptions(choices.projects, t.ProjectID, loc),
		Users:       viewmodel.UserOptions(choices.users, t.AssignedTo, loc),
		Priorities:  viewmodel.TaskPriorityOptions(t.Priority),
		Statuses:    viewmodel.TaskStatusOptions(t.Status),
	}
	h.WritePage(w, r, templates.T(loc, "task.edit.title"), http.StatusOK, templates.TaskForm(view, loc))
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("taskID")
	edit := routepath.TaskEdit(taskID)
	if fromProject(r) {
		edit = routepath.WithFromProject(edit)
	}
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, edit, flash.Error("task.update_failed"))
		return
	}
	input := taskInput(r)
	updated, err := h.service.update(r.Context(), taskID, input)
	if err != nil {
		h.RedirectError(w, r, edit, err, "task.update_failed")
		return
	}
	if !updated {
		h.Redirect(w, r, edit, flash.Error("task.not_found"))
		return
	}
	next := routepath.Task(taskID)
	if fromProject(r) {
		next = routepath.Project(input.ProjectID)
	}
	h.Redirect(w, r, next, flash.Success("task.updated"))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	removed, deleted, err := h.service.delete(r.Context(), r.PathValue("taskID"))
	if errors.Is(err, task.ErrNotFound) || (err == nil && !deleted) {
		h.Redirect(w, r, routepath.Tasks, flash.Error("task.not_found"))
		return
	}
	if err != nil {
		h.RedirectError(w, r, routepath.Tasks, err, "task.delete_failed")
		return
	}
	next := routepath.Tasks
	if fromProject(r) {
		next = routepath.Project(removed.ProjectID)
	}
	h.Redirect(w, r, next, flash.Success("task.deleted"))
}

func fromProject(r *http.Request) bool {
	return r.URL.Query().Get(routepath.FromProjectParam) == "1"
}

func taskInput(r *http.Request) task.Input {
	return task.Input{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		ProjectID:   strings.TrimSpace(r.PostFormValue("project_id")),
		AssignedTo:  r.PostFormValue("assigned_to"),
		DueDate:     r.PostFormValue("due_date"),
		Priority:    r.PostFormValue("priority"),
		Status:      r.PostFormValue("status"),
	}
}
