package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// pgError returns the Postgres error in err's chain with the given code
func pgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

// isUniqueViolation reports a unique violation, optionally on a named constraint
func isUniqueViolation(err error, constraint string) bool {
	pgErr, ok := pgError(err, pgUniqueViolation)
	return ok && (constraint == "" || pgErr.ConstraintName == constraint)
}

// isForeignKeyViolation reports a foreign key violation, optionally on a named constraint
func isForeignKeyViolation(err error, constraint string) bool {
	pgErr, ok := pgError(err, pgForeignKeyViolation)
	return ok && (constraint == "" || pgErr.ConstraintName == constraint)
}
