package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller's scope is not permitted to act on the target scope.
var ErrForbidden = errors.New("caller scope is not permitted to perform this action")

// ErrInvalidState indicates a workflow operation attempted from a state that does not permit it.
var ErrInvalidState = errors.New("operation not permitted in the current state")

// ErrInvalidHierarchy indicates a stock request between incompatible scope levels.
var ErrInvalidHierarchy = errors.New("invalid scope hierarchy for request")

// ErrInsufficientBalance indicates the source wallet balance cannot cover a transfer.
var ErrInsufficientBalance = errors.New("insufficient wallet balance")

// ErrInsufficientStock indicates the stock balance cannot cover a movement.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrTransient indicates a retryable store failure (deadlock, lock timeout, connectivity).
// This is the only error class safe for the caller to retry with the same inputs.
var ErrTransient = errors.New("transient store failure")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with a code and a human readable message.
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

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
