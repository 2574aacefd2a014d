package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrAlreadySettled indicates an attempt to pay an installment that is already paid.
var ErrAlreadySettled = errors.New("installment already settled")

// ErrEntryCancelled indicates an attempt to pay an installment whose parent
// journal entry is cancelled.
var ErrEntryCancelled = errors.New("journal entry is cancelled")

// ErrTransactionFailure indicates that the underlying storage transaction
// aborted. It is propagated unmodified; retry policy belongs to the caller.
var ErrTransactionFailure = errors.New("storage transaction failure")

// AppError carries an HTTP-like status code alongside the wrapped cause.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
