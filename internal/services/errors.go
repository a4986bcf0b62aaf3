package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/attendance-service/internal/validator"
)

// ===== SENTINEL ERRORS =====

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource conflict")
	ErrPersistence        = errors.New("persistence failure")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

// Error codes carried in every error response body.
const (
	CodeValidationFailed   = "validation_failed"
	CodeConflict           = "conflict"
	CodeNotFound           = "not_found"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeInternal           = "internal_error"
)

// ===== TYPED ERRORS =====

// ValidationErrors is the per-field list produced by the request validator.
type ValidationErrors = validator.ValidationErrors

// ValidationError is returned before any store is touched.
type ValidationError struct {
	Fields ValidationErrors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidationFailed, e.Fields}
}

// NewValidationError wraps a validator result; other errors become a single "request" field error.
func NewValidationError(err error) *ValidationError {
	var fields ValidationErrors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return &ValidationError{Fields: validator.ToValidationErrors(err)}
}

func newFieldError(field, message, rule string) *ValidationError {
	return &ValidationError{Fields: ValidationErrors{{Field: field, Message: message, Rule: rule}}}
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

type ConflictError struct {
	Resource string
	Field    string
	Value    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Resource, e.Field, e.Value)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// PersistenceError hides the store failure from clients but keeps it for logs.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

func newPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

type PermissionError struct {
	Resource string
	Action   string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("cannot %s %s: %s", e.Action, e.Resource, e.Reason)
}

func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

// ErrorCode maps an error to its response code. Unknown errors are internal.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrValidationFailed):
		return CodeValidationFailed
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	default:
		return CodeInternal
	}
}
