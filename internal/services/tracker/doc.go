// Package tracker groups the domain of the project/task tracker: the user
// directory, the project and task registries, and their persistence.
package tracker
