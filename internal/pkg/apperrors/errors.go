package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Authentication errors
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Entity specific not-found errors. Each one matches ErrResourceNotFound.
var (
	ErrTrainingCenterNotFound = NewNotFoundError("training center")
	ErrStudentNotFound        = NewNotFoundError("student")
	ErrQuotaRequestNotFound   = NewNotFoundError("quota request")
	ErrScheduleBlockNotFound  = NewNotFoundError("schedule block")
	ErrUserNotFound           = NewNotFoundError("user")
)

// NotFoundError names the kind of resource that was missing.
type NotFoundError struct {
	Resource string
}

// NewNotFoundError creates a not-found error for a resource kind
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// Is lets errors.Is(err, ErrResourceNotFound) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}

// FieldError is a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field level problems of one request. It unwraps
// to ErrValidationFailed.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError with a single field problem
func NewValidationError(field, message string) *ValidationError {
	return (&ValidationError{}).Add(field, message)
}

// Add appends a field problem
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any field problem was recorded
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns nil when no field problem was recorded, so callers can
// `return v.OrNil()` without handing back a typed nil.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Field returns the message recorded for a field, if any.
func (e *ValidationError) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message, true
		}
	}
	return "", false
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// AsValidationError extracts a *ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
