package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
)

// PostgreSQL SQLSTATE codes this service reacts to.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
	CodeNotNullViolation    = "23502"
)

// AsPgError extracts the PostgreSQL error from an error chain.
func AsPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation reports a unique constraint violation.
func IsUniqueViolation(err error) bool {
	pgErr, ok := AsPgError(err)
	return ok && pgErr.Code == CodeUniqueViolation
}

// IsForeignKeyViolation reports a foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	pgErr, ok := AsPgError(err)
	return ok && pgErr.Code == CodeForeignKeyViolation
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := AsPgError(err)
	return ok && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraintName
}

// ConstraintField resolves the API field blamed for an integrity violation
// using the constraint name. ok is false for unknown constraints or for
// errors that are not integrity violations.
func ConstraintField(err error, fields map[string]string) (field string, ok bool) {
	pgErr, isPg := AsPgError(err)
	if !isPg {
		return "", false
	}
	switch pgErr.Code {
	case CodeUniqueViolation, CodeForeignKeyViolation, CodeCheckViolation, CodeNotNullViolation:
	default:
		return "", false
	}
	field, ok = fields[pgErr.ConstraintName]
	return field, ok
}

// ToValidationError converts an integrity violation on a known constraint
// into a ValidationError on the blamed field.
func ToValidationError(err error, fields map[string]string) (*apperrors.ValidationError, bool) {
	field, ok := ConstraintField(err, fields)
	if !ok {
		return nil, false
	}
	pgErr, _ := AsPgError(err)

	var msg string
	switch pgErr.Code {
	case CodeUniqueViolation:
		msg = "A record with this value already exists."
	case CodeForeignKeyViolation:
		msg = "Invalid pk - object does not exist."
	case CodeNotNullViolation:
		msg = "This field may not be null."
	default:
		msg = "Invalid value."
	}
	return apperrors.NewValidationError(field, msg), true
}
