package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Layout
	message.SetString(lang, "app.name", "Task Tracker")
	message.SetString(lang, "title.page", "%s | Task Tracker")
	message.SetString(lang, "nav.projects", "Projects")
	message.SetString(lang, "nav.tasks", "Tasks")
	message.SetString(lang, "nav.logout", "Log out")
	message.SetString(lang, "nav.login", "Log in")
	message.SetString(lang, "nav.register", "Register")
	message.SetString(lang, "nav.signed_in_as", "Signed in as %s")

	// Auth pages
	message.SetString(lang, "auth.login.title", "Log in")
	message.SetString(lang, "auth.login.submit", "Log in")
	message.SetString(lang, "auth.login.no_account", "No account yet?")
	message.SetString(lang, "auth.register.title", "Register")
	message.SetString(lang, "auth.register.submit", "Create account")
	message.SetString(lang, "auth.register.have_account", "Already registered?")
	message.SetString(lang, "auth.field.username", "Username")
	message.SetString(lang, "auth.field.email", "Email")
	message.SetString(lang, "auth.field.password", "Password")
	message.SetString(lang, "auth.field.password2", "Confirm password")

	// Auth errors
	message.SetString(lang, "auth.invalid_credentials", "Invalid username or password")
	message.SetString(lang, "auth.fields_required", "Please fill in all fields")
	message.SetString(lang, "auth.passwords_mismatch", "Passwords do not match")
	message.SetString(lang, "auth.password_too_short", "Password must be at least 6 characters")
	message.SetString(lang, "auth.username_taken", "Username already exists")
	message.SetString(lang, "user.not_found", "User not found")

	// Shared
	message.SetString(lang, "error.generic", "An error occurred. Please try again.")
	message.SetString(lang, "common.search", "Search")
	message.SetString(lang, "common.search_placeholder", "Search...")
	message.SetString(lang, "common.edit", "Edit")
	message.SetString(lang, "common.delete", "Delete")
	message.SetString(lang, "common.save", "Save")
	message.SetString(lang, "common.cancel", "Cancel")
	message.SetString(lang, "common.none", "None")
	message.SetString(lang, "common.unassigned", "Unassigned")
	message.SetString(lang, "common.description", "Description")
	message.SetString(lang, "common.status", "Status")
	message.SetString(lang, "common.created", "Created")
	message.SetString(lang, "common.results_for", "Results for \"%s\"")

	// Projects
	message.SetString(lang, "project.list.title", "Projects")
	message.SetString(lang, "project.list.empty", "No projects yet.")
	message.SetString(lang, "project.new.title", "New project")
	message.SetString(lang, "project.edit.title", "Edit project")
	message.SetString(lang, "project.field.name", "Name")
	message.SetString(lang, "project.field.start_date", "Start date")
	message.SetString(lang, "project.field.end_date", "End date")
	message.SetString(lang, "project.field.creator", "Created by")
	message.SetString(lang, "project.tasks", "Tasks")
	message.SetString(lang, "project.add_task", "Add task")
	message.SetString(lang, "project.members", "Team")
	message.SetString(lang, "project.created", "Project created successfully")
	message.SetString(lang, "project.updated", "Project updated successfully")
	message.SetString(lang, "project.deleted", "Project deleted successfully")
	message.SetString(lang, "project.create_failed", "Error creating project")
	message.SetString(lang, "project.update_failed", "Error updating project")
	message.SetString(lang, "project.delete_failed", "Error deleting project")
	message.SetString(lang, "project.not_found", "Project not found")
	message.SetString(lang, "project.name_required", "Project name is required")
	message.SetString(lang, "project.invalid_status", "Invalid project status")
	message.SetString(lang, "project.invalid_date", "Dates must use the YYYY-MM-DD format")
	message.SetString(lang, "project.date_range", "End date cannot be before start date")

	// Tasks
	message.SetString(lang, "task.list.title", "Tasks")
	message.SetString(lang, "task.list.empty", "No tasks yet.")
	message.SetString(lang, "task.new.title", "New task")
	message.SetString(lang, "task.edit.title", "Edit task")
	message.SetString(lang, "task.field.title", "Title")
	message.SetString(lang, "task.field.project", "Project")
	message.SetString(lang, "task.field.assignee", "Assigned to")
	message.SetString(lang, "task.field.due_date", "Due date")
	message.SetString(lang, "task.field.priority", "Priority")
	message.SetString(lang, "task.select_project", "Select a project")
	message.SetString(lang, "task.created", "Task created successfully")
	message.SetString(lang, "task.updated", "Task updated successfully")
	message.SetString(lang, "task.deleted", "Task deleted successfully")
	message.SetString(lang, "task.create_failed", "Error creating task")
	message.SetString(lang, "task.update_failed", "Error updating task")
	message.SetString(lang, "task.delete_failed", "Error deleting task")
	message.SetString(lang, "task.not_found", "Task not found")
	message.SetString(lang, "task.fields_required", "Title and project are required")
	message.SetString(lang, "task.project_missing", "Selected project does not exist")
	message.SetString(lang, "task.assignee_missing", "Selected assignee does not exist")
	message.SetString(lang, "task.invalid_priority", "Invalid task priority")
	message.SetString(lang, "task.invalid_status", "Invalid task status")
	message.SetString(lang, "task.invalid_due_date", "Due date must use the YYYY-MM-DD format")

	// Error pages
	message.SetString(lang, "error.not_found.title", "Not found")
	message.SetString(lang, "error.not_found.body", "The page you were looking for does not exist.")
	message.SetString(lang, "error.server.title", "Something went wrong")
	message.SetString(lang, "error.server.body", "An error occurred. Please try again.")
	message.SetString(lang, "error.back", "Back to projects")
}
