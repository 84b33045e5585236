package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both an unknown public id and an id/email mismatch.
	ErrNotFound  = errors.New("request not found")
	ErrReaderNil = errors.New("reader is nil")

	ErrValidation              = errors.New("validation failed")
	ErrRequiredField           = errors.New("field is required")
	ErrInvalidEmail            = errors.New("invalid email address")
	ErrEmailMismatch           = errors.New("email confirmation does not match")
	ErrInvalidDeadline         = errors.New("invalid deadline")
	ErrInvalidDocType          = errors.New("invalid document type")
	ErrFileTooLarge            = errors.New("file too large")
	ErrExtensionNotAllowed     = errors.New("file extension not allowed")
	ErrFieldTooLong            = errors.New("field too long")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrRequestFinalized        = errors.New("request already finalized")

	ErrNoInternalRecipient = errors.New("no internal recipient configured")
)

// ValidationError is a user-facing rejection of one input field.
// It matches ErrValidation and the concrete sentinel in Err.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Err: err}
}
