// Package storage is implemented by storage/sqlite (default) and
// storage/postgres. Both translate driver errors into ErrNotFound,
// ErrAlreadyExists and ErrReferenceMissing so domain packages never inspect
// driver types.
package storage
