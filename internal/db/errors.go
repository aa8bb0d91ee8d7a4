package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// invalid_text_representation: a supplied id literal could not be cast to
// uuid by Postgres.
const invalidTextRepresentation = "22P02"

// IsInvalidID reports whether err is Postgres rejecting a malformed id.
// Callers treat such ids the same as ids that match no row, so a stale or
// garbled identifier from a client never surfaces as a server error.
func IsInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}
