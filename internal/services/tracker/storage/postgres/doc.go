// Package postgres provides Postgres-backed tracker persistence over a pgx
// connection pool. It is selected with TASKTRACK_DB_DRIVER=postgres and
// mirrors the SQLite store's ordering and error translation.
package postgres
