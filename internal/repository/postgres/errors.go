package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSchemaMissing is returned when the docs tables have not been created.
var ErrSchemaMissing = errors.New("docs schema missing (run seed -schema-only)")

// pgCode returns the SQLSTATE of a postgres error, or "".
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	return pgCode(err) == "23505"
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError checks if error is a foreign key violation
func IsPgForeignKeyError(err error) bool {
	return pgCode(err) == "23503"
}

// IsPgUndefinedTableError checks if error reports a missing relation
func IsPgUndefinedTableError(err error) bool {
	return pgCode(err) == "42P01"
}

// WrapQueryError adds op context and maps a missing table to ErrSchemaMissing.
func WrapQueryError(op string, err error) error {
	if IsPgUndefinedTableError(err) {
		return fmt.Errorf("%s: %w", op, ErrSchemaMissing)
	}
	return fmt.Errorf("%s: %w", op, err)
}
