package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL unique_violation, per Appendix A of the protocol docs.
const uniqueViolation = "23505"

// MapError converts driver-level errors into the caller's domain sentinels:
// sql.ErrNoRows becomes notFoundErr and a unique constraint violation
// becomes duplicateErr. Anything else passes through untouched.
func MapError(err error, notFoundErr, duplicateErr error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return duplicateErr
	}

	return err
}
