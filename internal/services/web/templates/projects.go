package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/louisbranch/tasktrack/internal/services/web/routepath"
)

// ProjectRow is one project prepared for display.
type ProjectRow struct {
	ID          string
	Name        string
	Description string
	Status      string
	StartDate   string
	EndDate     string
	CreatorName string
	CreatedAt   string
}

// ProjectListView backs the project index and search pages.
type ProjectListView struct {
	Projects []ProjectRow
	Query    string
	Searched bool
}

// ProjectFormView backs the new and edit project forms.
type ProjectFormView struct {
	Project  ProjectRow
	Statuses []Option
	Editing  bool
}

// ProjectDetailView backs the project page with its tasks.
type ProjectDetailView struct {
	Project    ProjectRow
	Tasks      []TaskRow
	Users      []Option
	Priorities []Option
}

// ProjectList renders the project index with a search box.
func ProjectList(view ProjectListView, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section id="projects-root"><div class="heading">`)
		h.element("h1", "", T(loc, "project.list.title"))
		h.link(routepath.ProjectsNew, "button primary", T(loc, "project.new.title"))
		h.raw("</div>")
		h.searchForm(routepath.ProjectsSearch, view.Query, loc)
		if view.Searched {
			h.element("p", "muted", T(loc, "common.results_for", view.Query))
		}
		if len(view.Projects) == 0 {
			h.element("p", "empty", T(loc, "project.list.empty"))
			h.raw("</section>")
			return
		}
		h.raw(`<table class="list"><thead><tr>`)
		for _, key := range []string{"project.field.name", "common.status", "project.field.start_date", "project.field.end_date", "project.field.creator"} {
			h.element("th", "", T(loc, key))
		}
		h.raw("<th></th></tr></thead><tbody>")
		for _, p := range view.Projects {
			h.raw("<tr><td>")
			h.link(routepath.Project(p.ID), "", p.Name)
			h.raw("</td>")
			h.element("td", "status", p.Status)
			h.element("td", "", orDash(p.StartDate))
			h.element("td", "", orDash(p.EndDate))
			h.element("td", "creator", orDash(p.CreatorName))
			h.raw(`<td class="actions">`)
			h.link(routepath.ProjectEdit(p.ID), "", T(loc, "common.edit"))
			h.postButton(routepath.ProjectDelete(p.ID), "danger", T(loc, "common.delete"))
			h.raw("</td></tr>")
		}
		h.raw("</tbody></table></section>")
	})
}

// ProjectForm renders the create or edit project form.
func ProjectForm(view ProjectFormView, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		title, action, cancel := T(loc, "project.new.title"), routepath.Projects, routepath.Projects
		if view.Editing {
			title = T(loc, "project.edit.title")
			action = routepath.Project(view.Project.ID)
			cancel = action
		}
		p := view.Project
		h.raw(`<section class="card" id="project-form">`)
		h.element("h1", "", title)
		h.raw(`<form method="post"`)
		h.attr("action", action)
		h.raw(">")
		h.field(T(loc, "project.field.name"), "text", "name", p.Name, true)
		h.textarea(T(loc, "common.description"), "description", p.Description)
		h.field(T(loc, "project.field.start_date"), "date", "start_date", p.StartDate, false)
		h.field(T(loc, "project.field.end_date"), "date", "end_date", p.EndDate, false)
		h.selectField(T(loc, "common.status"), "status", view.Statuses, false)
		h.raw(`<div class="form-actions"><button type="submit" class="primary">`)
		h.text(T(loc, "common.save"))
		h.raw("</button>")
		h.link(cancel, "", T(loc, "common.cancel"))
		h.raw("</div></form></section>")
	})
}

// ProjectDetail renders one project with its tasks and a quick task form.
func ProjectDetail(view ProjectDetailView, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		p := view.Project
		h.raw(`<section id="project-detail"><div class="heading">`)
		h.element("h1", "", p.Name)
		h.raw(`<div class="actions">`)
		h.link(routepath.ProjectEdit(p.ID), "button", T(loc, "common.edit"))
		h.postButton(routepath.ProjectDelete(p.ID), "danger", T(loc, "common.delete"))
		h.raw("</div></div>")
		if p.Description != "" {
			h.element("p", "description", p.Description)
		}
		h.dataList(
			T(loc, "common.status"), p.Status,
			T(loc, "project.field.start_date"), orDash(p.StartDate),
			T(loc, "project.field.end_date"), orDash(p.EndDate),
			T(loc, "project.field.creator"), orDash(p.CreatorName),
			T(loc, "common.created"), p.CreatedAt,
		)
		h.raw(`<div class="heading">`)
		h.element("h2", "", T(loc, "project.tasks"))
		h.link(routepath.TasksNewForProject(p.ID), "button primary", T(loc, "project.add_task"))
		h.raw("</div>")
		h.taskTable(view.Tasks, loc, true)
		h.raw(`<form method="post" class="quick-task"`)
		h.attr("action", routepath.Tasks)
		h.raw("><input")
		h.attr("type", "hidden")
		h.attr("name", "project_id")
		h.attr("value", p.ID)
		h.raw(">")
		h.field(T(loc, "task.field.title"), "text", "title", "", true)
		h.selectField(T(loc, "task.field.assignee"), "assigned_to", view.Users, false)
		h.selectField(T(loc, "task.field.priority"), "priority", view.Priorities, false)
		h.field(T(loc, "task.field.due_date"), "date", "due_date", "", false)
		h.raw(`<button type="submit" class="primary">`)
		h.text(T(loc, "project.add_task"))
		h.raw("</button></form></section>")
	})
}

func (h *htmlWriter) searchForm(action, query string, loc Localizer) {
	h.raw(`<form method="get" class="search"`)
	h.attr("action", action)
	h.raw("><input")
	h.attr("type", "search")
	h.attr("name", "q")
	h.attr("value", query)
	h.attr("placeholder", T(loc, "common.search_placeholder"))
	h.raw(`><button type="submit">`)
	h.text(T(loc, "common.search"))
	h.raw("</button></form>")
}
