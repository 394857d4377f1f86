// Package apperror defines the error taxonomy shared by the store, the
// services and the HTTP layer.
//
// Every AppError wraps one of the sentinel values below, so callers can
// branch with errors.Is without caring about the message text. The HTTP
// layer maps each sentinel to exactly one status code (see handler.writeError).
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrTooLarge        = errors.New("payload too large")
	ErrStorage         = errors.New("storage error")
)

type AppError struct {
	Err     error  // sentinel, one of the Err* values
	Message string // safe to show to API clients
	Field   string // optional: request field causing the error
	Cause   error  // optional: underlying failure, logged but never returned to clients
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// InvalidFile is the validation error raised by the upload filter.
func InvalidFile(message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   "file",
	}
}

// Unauthenticated covers both a missing bearer token and a failed login.
// HTTP handlers map this to 401.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// Forbidden returns an AppError for a presented but unusable token.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

func TooLarge(limit int64) *AppError {
	return &AppError{
		Err:     ErrTooLarge,
		Message: fmt.Sprintf("File too large (limit %d bytes)", limit),
		Field:   "file",
	}
}

// Storage wraps a filesystem failure. The cause is kept for logging only.
func Storage(message string, cause error) *AppError {
	return &AppError{
		Err:     ErrStorage,
		Message: message,
		Cause:   cause,
	}
}
