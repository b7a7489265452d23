package projects

import (
	"net/http"
	"strings"

	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
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
	projects, err := h.service.list(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc := h.PageLocalizer(r)
	view := templates.ProjectListView{Projects: viewmodel.ProjectRows(projects)}
	h.WritePage(w, r, templates.T(loc, "project.list.title"), http.StatusOK, templates.ProjectList(view, loc))
}

func (h handlers) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	projects, err := h.service.search(r.Context(), query)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc := h.PageLocalizer(r)
	view := templates.ProjectListView{
		Projects: viewmodel.ProjectRows(projects),
		Query:    query,
		Searched: query != "",
	}
	h.WritePage(w, r, templates.T(loc, "project.list.title"), http.StatusOK, templates.ProjectList(view, loc))
}

func (h handlers) handleNew(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(r)
	view := templates.ProjectFormView{Statuses: viewmodel.ProjectStatusOptions("")}
	h.WritePage(w, r, templates.T(loc, "project.new.title"), http.StatusOK, templates.ProjectForm(view, loc))
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, routepath.ProjectsNew, flash.Error("project.create_failed"))
		return
	}
	if _, err := h.service.create(r.Context(), h.Identity(r).UserID, projectInput(r)); err != nil {
		h.RedirectError(w, r, routepath.ProjectsNew, err, "project.create_failed")
		return
	}
	h.Redirect(w, r, routepath.Projects, flash.Success("project.created"))
}

func (h handlers) handleView(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.detail(r.Context(), r.PathValue("projectID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc := h.PageLocalizer(r)
	view := templates.ProjectDetailView{
		Project:    viewmodel.ProjectRow(detail.project),
		Tasks:      viewmodel.TaskRows(detail.tasks),
		Users:      viewmodel.UserOptions(detail.users, "", loc),
		Priorities: viewmodel.TaskPriorityOptions(task.DefaultPriority),
	}
	h.WritePage(w, r, detail.project.Name, http.StatusOK, templates.ProjectDetail(view, loc))
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.get(r.Context(), r.PathValue("projectID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc := h.PageLocalizer(r)
	view := templates.ProjectFormView{
		Project:  viewmodel.ProjectRow(p),
		Statuses: viewmodel.ProjectStatusOptions(p.Status),
		Editing:  true,
	}
	h.WritePage(w, r, templates.T(loc, "project.edit.title"), http.StatusOK, templates.ProjectForm(view, loc))
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	edit := routepath.ProjectEdit(projectID)
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, edit, flash.Error("project.update_failed"))
		return
	}
	updated, err := h.service.update(r.Context(), projectID, projectInput(r))
	if err != nil {
		h.RedirectError(w, r, edit, err, "project.update_failed")
		return
	}
	if !updated {
		h.Redirect(w, r, edit, flash.Error("project.not_found"))
		return
	}
	h.Redirect(w, r, routepath.Project(projectID), flash.Success("project.updated"))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.delete(r.Context(), r.PathValue("projectID"))
	if err != nil {
		h.RedirectError(w, r, routepath.Projects, err, "project.delete_failed")
		return
	}
	if !deleted {
		h.Redirect(w, r, routepath.Projects, flash.Error("project.not_found"))
		return
	}
	h.Redirect(w, r, routepath.Projects, flash.Success("project.deleted"))
}

func projectInput(r *http.Request) project.Input {
	return project.Input{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		StartDate:   r.PostFormValue("start_date"),
		EndDate:     r.PostFormValue("end_date"),
		Status:      r.PostFormValue("status"),
	}
}
