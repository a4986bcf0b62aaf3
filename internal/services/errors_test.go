package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", newFieldError("date", "is required", "required"), CodeValidationFailed},
		{"conflict", &ConflictError{Resource: "account", Field: "email", Value: "a@b.com"}, CodeConflict},
		{"not found", &NotFoundError{Resource: "student", ID: "1"}, CodeNotFound},
		{"wrapped not found", fmt.Errorf("handler: %w", &NotFoundError{Resource: "student", ID: "1"}), CodeNotFound},
		{"credentials", ErrInvalidCredentials, CodeInvalidCredentials},
		{"forbidden", &PermissionError{Resource: "attendance", Action: "save", Reason: "other teacher"}, CodeForbidden},
		{"persistence", newPersistenceError("save attendance", errors.New("connection reset")), CodeInternal},
		{"unknown", errors.New("boom"), CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.want {
				t.Errorf("ErrorCode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPersistenceError_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := newPersistenceError("save attendance", cause)

	if !errors.Is(err, ErrPersistence) || !errors.Is(err, cause) {
		t.Errorf("PersistenceError must match both ErrPersistence and its cause")
	}
}

func TestNewValidationError_ExposesFields(t *testing.T) {
	err := NewValidationError(errors.New("json: cannot unmarshal"))

	var fields ValidationErrors
	if !errors.As(err, &fields) || len(fields) != 1 || fields[0].Field != "request" {
		t.Errorf("fields = %+v", fields)
	}
}
