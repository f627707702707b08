// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. Connections go
// through the pgx stdlib driver; the schema is managed by embedded goose
// migrations applied with Migrate.
//
// Employees keep their named attributes in columns and every other
// attribute in a JSONB "extra" column, so updates merge with jsonb ||.
package postgres
