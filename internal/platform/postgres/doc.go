// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in the store package, using database/sql over the
// pgx driver.
package postgres
