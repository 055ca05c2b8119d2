package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services wraps exactly one of these.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("resource not found")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence error")

	// ErrDuplicate is a unique-constraint collision. It is a conflict.
	ErrDuplicate = fmt.Errorf("%w: resource already exists", ErrConflict)
)

// AppError carries an error kind, a human readable message and the underlying cause.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewAppError builds an AppError of the given kind.
func NewAppError(kind error, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewValidationError(format string, args ...any) error {
	return NewAppError(ErrValidation, fmt.Sprintf(format, args...), nil)
}

func NewNotFoundError(message string) error {
	return NewAppError(ErrNotFound, message, nil)
}

func NewConflictError(message string, err error) error {
	return NewAppError(ErrConflict, message, err)
}

func NewPersistenceError(message string, err error) error {
	return NewAppError(ErrPersistence, message, err)
}

// KindOf reports the kind of err, defaulting to ErrPersistence for unclassified failures.
func KindOf(err error) error {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrPersistence} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrPersistence
}

// Message returns the human readable part of err without the kind prefix when available.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
