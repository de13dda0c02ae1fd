package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common sentinel errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)

// Translation and cache errors. Callers match them with errors.Is.
var (
	// ErrUnsupportedShape marks a graph fragment that matches no known axiom
	// shape or sub-expression kind.
	ErrUnsupportedShape = errors.New("unsupported shape")

	// ErrRecursiveStructure marks an anonymous node revisited on the current
	// descent path. It is never downgraded to a warning.
	ErrRecursiveStructure = errors.New("recursive structure")

	// ErrTranslatorNotFound marks a request for a shape with no registered translator.
	ErrTranslatorNotFound = errors.New("translator not found")

	// ErrModificationDenied marks a mutation attempted on a read-only graph or view.
	ErrModificationDenied = errors.New("modification denied")
)

// Is and As forward to the standard library so callers need one import.
func Is(err, target error) bool     { return errors.Is(err, target) }
func As(err error, target any) bool { return errors.As(err, target) }

// Unsupported wraps ErrUnsupportedShape with a description of the offending fragment.
func Unsupported(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedShape, fmt.Sprintf(format, args...))
}

// Recursive wraps ErrRecursiveStructure for the given node label.
func Recursive(node string) error {
	return fmt.Errorf("%w: node %s revisited", ErrRecursiveStructure, node)
}

// Denied wraps ErrModificationDenied with the attempted operation.
func Denied(op string) error {
	return fmt.Errorf("%w: %s", ErrModificationDenied, op)
}

// AppError represents an application-specific error with an HTTP status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MapError maps a common error to an AppError with an appropriate HTTP status code.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return NewAppError(http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrTranslatorNotFound):
		return NewAppError(http.StatusNotFound, "Resource not found", err)
	case errors.Is(err, ErrModificationDenied):
		return NewAppError(http.StatusForbidden, "Modification denied", err)
	case errors.Is(err, ErrUnsupportedShape), errors.Is(err, ErrRecursiveStructure):
		return NewAppError(http.StatusUnprocessableEntity, "Malformed graph structure", err)
	}

	return NewAppError(http.StatusInternalServerError, "Internal server error", err)
}
