package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// constraintFields maps unique-constraint names from the schema to the
// request field they protect. A duplicate-key rejection that slips past
// the pre-write uniqueness check is translated through this table into
// the same field-tagged conflict the pre-check would have produced.
var constraintFields = map[string]string{
	"students_email_key":            "email",
	"students_admission_number_key": "admissionNumber",
	"admins_email_key":              "email",
}

// IsUniqueViolation checks if the error is a PostgreSQL unique
// violation (code 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ConflictField returns the request field guarded by the violated
// unique constraint. ok is false when the error is not a unique
// violation or the constraint is not a known one.
func ConflictField(err error) (field string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return "", false
	}
	field, ok = constraintFields[pgErr.ConstraintName]
	return field, ok
}
