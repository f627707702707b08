package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/employee-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// invalidTextRepresentationCode is raised for malformed uuid literals
	invalidTextRepresentationCode = "22P02"
)

// Constraint names from the migrations.
const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// MapError maps a database error to the store's sentinel errors.
// entity selects the entity-specific not-found error ("user" or "employee").
func MapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		switch entity {
		case "user":
			return store.ErrUserNotFound
		case "employee":
			return store.ErrEmployeeNotFound
		default:
			return store.ErrNotFound
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			switch pgErr.ConstraintName {
			case usernameConstraint:
				return fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
			case emailConstraint:
				return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
			default:
				return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
			}
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ColumnName,
				err,
			)
		case invalidTextRepresentationCode:
			return store.ErrInvalidID
		}
	}

	// Return the original error for errors that don't have specific mappings
	return err
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
