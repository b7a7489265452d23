package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/louisbranch/tasktrack/internal/services/web/routepath"
)

// TaskRow is one task prepared for display.
type TaskRow struct {
	ID           string
	Title        string
	Description  string
	ProjectID    string
	ProjectName  string
	AssigneeName string
	DueDate      string
	Priority     string
	Status       string
	CreatedAt    string
}

// TaskListView backs the task index and search pages.
type TaskListView struct {
	Tasks    []TaskRow
	Query    string
	Searched bool
}

// TaskFormView backs the new and edit task forms.
type TaskFormView struct {
	Task        TaskRow
	Editing     bool
	FromProject bool
	Projects    []Option
	Users       []Option
	Priorities  []Option
	Statuses    []Option
}

// TaskList renders the task index with a search box.
func TaskList(view TaskListView, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section id="tasks-root"><div class="heading">`)
		h.element("h1", "", T(loc, "task.list.title"))
		h.link(routepath.TasksNew, "button primary", T(loc, "task.new.title"))
		h.raw("</div>")
		h.searchForm(routepath.TasksSearch, view.Query, loc)
		if view.Searched {
			h.element("p", "muted", T(loc, "common.results_for", view.Query))
		}
		h.taskTable(view.Tasks, loc, false)
		h.raw("</section>")
	})
}

// TaskForm renders the create or edit task form.
func TaskForm(view TaskFormView, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		t := view.Task
		title, action, cancel := T(loc, "task.new.title"), routepath.Tasks, routepath.Tasks
		if t.ProjectID != "" {
			cancel = routepath.Project(t.ProjectID)
		}
		if view.Editing {
			title = T(loc, "task.edit.title")
			action = routepath.Task(t.ID)
			if view.FromProject {
				action = routepath.WithFromProject(action)
			} else {
				cancel = routepath.Task(t.ID)
			}
		}
		h.raw(`<section class="card" id="task-form">`)
		h.element("h1", "", title)
		h.raw(`<form method="post"`)
		h.attr("action", action)
		h.raw(">")
		h.field(T(loc, "task.field.title"), "text", "title", t.Title, true)
		h.textarea(T(loc, "common.description"), "description", t.Description)
		h.selectField(T(loc, "task.field.project"), "project_id", view.Projects, true)
		h.selectField(T(loc, "task.field.assignee"), "assigned_to", view.Users, false)
		h.field(T(loc, "task.field.due_date"), "date", "due_date", t.DueDate, false)
		h.selectField(T(loc, "task.field.priority"), "priority", view.Priorities, false)
		h.selectField(T(loc, "common.status"), "status", view.Statuses, false)
		h.raw(`<div class="form-actions"><button type="submit" class="primary">`)
		h.text(T(loc, "common.save"))
		h.raw("</button>")
		h.link(cancel, "", T(loc, "common.cancel"))
		h.raw("</div></form></section>")
	})
}

// TaskDetail renders one task.
func TaskDetail(task TaskRow, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section id="task-detail"><div class="heading">`)
		h.element("h1", "", task.Title)
		h.raw(`<div class="actions">`)
		h.link(routepath.TaskEdit(task.ID), "button", T(loc, "common.edit"))
		h.postButton(routepath.TaskDelete(task.ID), "danger", T(loc, "common.delete"))
		h.raw("</div></div>")
		if task.Description != "" {
			h.element("p", "description", task.Description)
		}
		h.raw(`<dl class="details"><dt>`)
		h.text(T(loc, "task.field.project"))
		h.raw("</dt><dd>")
		h.link(routepath.Project(task.ProjectID), "", orDash(task.ProjectName))
		h.raw("</dd></dl>")
		h.dataList(
			T(loc, "task.field.assignee"), assignee(task, loc),
			T(loc, "task.field.due_date"), orDash(task.DueDate),
			T(loc, "task.field.priority"), task.Priority,
			T(loc, "common.status"), task.Status,
			T(loc, "common.created"), task.CreatedAt,
		)
		h.raw("</section>")
	})
}

// taskTable lists tasks. Inside a project page the project column is dropped
// and row actions return to the project.
func (h *htmlWriter) taskTable(tasks []TaskRow, loc Localizer, inProject bool) {
	if len(tasks) == 0 {
		h.element("p", "empty", T(loc, "task.list.empty"))
		return
	}
	h.raw(`<table class="list tasks"><thead><tr>`)
	h.element("th", "", T(loc, "task.field.title"))
	if !inProject {
		h.element("th", "", T(loc, "task.field.project"))
	}
	for _, key := range []string{"task.field.assignee", "task.field.due_date", "task.field.priority", "common.status"} {
		h.element("th", "", T(loc, key))
	}
	h.raw("<th></th></tr></thead><tbody>")
	for _, t := range tasks {
		edit, remove := routepath.TaskEdit(t.ID), routepath.TaskDelete(t.ID)
		if inProject {
			edit, remove = routepath.WithFromProject(edit), routepath.WithFromProject(remove)
		}
		h.raw("<tr><td>")
		h.link(routepath.Task(t.ID), "", t.Title)
		h.raw("</td>")
		if !inProject {
			h.raw("<td>")
			h.link(routepath.Project(t.ProjectID), "", orDash(t.ProjectName))
			h.raw("</td>")
		}
		h.element("td", "", assignee(t, loc))
		h.element("td", "", orDash(t.DueDate))
		h.element("td", "priority priority-"+t.Priority, t.Priority)
		h.element("td", "status", t.Status)
		h.raw(`<td class="actions">`)
		h.link(edit, "", T(loc, "common.edit"))
		h.postButton(remove, "danger", T(loc, "common.delete"))
		h.raw("</td></tr>")
	}
	h.raw("</tbody></table>")
}

func assignee(t TaskRow, loc Localizer) string {
	if t.AssigneeName == "" {
		return T(loc, "common.unassigned")
	}
	return t.AssigneeName
}
