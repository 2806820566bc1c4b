// Package store defines the persistence interfaces consumed by the
// service and scheduler layers, together with the sentinel errors all
// implementations return. The PostgreSQL implementations live in
// internal/platform/postgres.
package store
