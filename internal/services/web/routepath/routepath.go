// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root = "/"

	AuthPrefix   = "/auth/"
	AuthLogin    = "/auth/login"
	AuthRegister = "/auth/register"
	AuthLogout   = "/auth/logout"

	Projects             = "/projects"
	ProjectsPrefix       = "/projects/"
	ProjectsSearch       = "/projects/search"
	ProjectsNew          = "/projects/new"
	ProjectPattern       = ProjectsPrefix + "{projectID}"
	ProjectEditPattern   = ProjectsPrefix + "{projectID}/edit"
	ProjectDeletePattern = ProjectsPrefix + "{projectID}/delete"

	Tasks             = "/tasks"
	TasksPrefix       = "/tasks/"
	TasksSearch       = "/tasks/search"
	TasksNew          = "/tasks/new"
	TaskPattern       = TasksPrefix + "{taskID}"
	TaskEditPattern   = TasksPrefix + "{taskID}/edit"
	TaskDeletePattern = TasksPrefix + "{taskID}/delete"

	StaticPrefix = "/static/"
	StaticCSS    = "/static/app.css"
)

// FromProjectParam marks task mutations that should return to the parent project.
const FromProjectParam = "from_project"

// ProjectIDParam preselects a project on the new task form.
const ProjectIDParam = "project_id"

// Project returns the project detail route.
func Project(projectID string) string {
	return ProjectsPrefix + escapeSegment(projectID)
}

// ProjectEdit returns the project edit form route.
func ProjectEdit(projectID string) string {
	return Project(projectID) + "/edit"
}

// ProjectDelete returns the project delete route.
func ProjectDelete(projectID string) string {
	return Project(projectID) + "/delete"
}

// Task returns the task detail route.
func Task(taskID string) string {
	return TasksPrefix + escapeSegment(taskID)
}

// TaskEdit returns the task edit form route.
func TaskEdit(taskID string) string {
	return Task(taskID) + "/edit"
}

// TaskDelete returns the task delete route.
func TaskDelete(taskID string) string {
	return Task(taskID) + "/delete"
}

// TasksNewForProject returns the new task form with a preselected project.
func TasksNewForProject(projectID string) string {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return TasksNew
	}
	return TasksNew + "?" + url.Values{ProjectIDParam: {projectID}}.Encode()
}

// WithFromProject appends the from_project marker to a task route.
func WithFromProject(path string) string {
	return path + "?" + FromProjectParam + "=1"
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
