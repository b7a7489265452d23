// Package sqlite provides SQLite-backed tracker persistence.
//
// It is the default store: one file holds users, projects, tasks and the
// optional database-backed login sessions. Foreign keys are enabled on every
// connection so project deletes cascade to tasks.
package sqlite
