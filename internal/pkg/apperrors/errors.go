package apperrors

import "errors"

// Base errors for the service-layer outcome taxonomy. The HTTP boundary
// maps each of these to a status code in middleware.HandleAPIError.
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrMalformedID      = errors.New("malformed identifier")

	// Uniqueness conflicts
	ErrConflict = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("authentication required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
)

// CustomError carries the outcome kind together with a human-readable
// message and, where applicable, the offending field name.
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a field-tagged validation failure.
func NewValidationError(message, field string) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}

// NewConflictError creates a field-tagged uniqueness conflict.
func NewConflictError(message, field string) *CustomError {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
		Field:   field,
	}
}

// NewNotFoundError creates a not-found error for a lookup key.
func NewNotFoundError(message, field string) *CustomError {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
		Field:   field,
	}
}

// NewMalformedIDError creates an error for identifiers that are not in
// the store's addressable-key shape.
func NewMalformedIDError(message string) *CustomError {
	return &CustomError{
		Err:     ErrMalformedID,
		Message: message,
	}
}

// FieldOf extracts the field name from an error chain, if any.
func FieldOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}
