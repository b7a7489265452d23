// Package web hosts the browser-facing tracker server.
//
// It opens storage, builds the user directory and the project and task
// registries, and mounts the auth, projects and tasks modules behind the
// session gate.
package web
