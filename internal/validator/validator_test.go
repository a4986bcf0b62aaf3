package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/SAP-F-2025/attendance-service/internal/models"
)

func TestValidator_SaveAttendanceRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       SaveAttendanceRequest
		wantErr   bool
		wantField string
	}{
		{
			name: "valid",
			req: SaveAttendanceRequest{
				Date:      "2024-01-15",
				TeacherID: "t1",
				Updates:   []AttendanceUpdate{{StudentID: "s1", Status: models.StatusPresent}},
			},
		},
		{
			name: "empty updates allowed",
			req:  SaveAttendanceRequest{Date: "2024-01-15", TeacherID: "t1"},
		},
		{
			name:      "bad date format",
			req:       SaveAttendanceRequest{Date: "15/01/2024", TeacherID: "t1"},
			wantErr:   true,
			wantField: "date",
		},
		{
			name:      "impossible date",
			req:       SaveAttendanceRequest{Date: "2024-02-30", TeacherID: "t1"},
			wantErr:   true,
			wantField: "date",
		},
		{
			name:      "missing teacher",
			req:       SaveAttendanceRequest{Date: "2024-01-15"},
			wantErr:   true,
			wantField: "teacherId",
		},
		{
			name: "bad status",
			req: SaveAttendanceRequest{
				Date:      "2024-01-15",
				TeacherID: "t1",
				Updates:   []AttendanceUpdate{{StudentID: "s1", Status: "late"}},
			},
			wantErr:   true,
			wantField: "updates[0].status",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error type = %T, want ValidationErrors", err)
			}
			if verrs[0].Field != tt.wantField {
				t.Errorf("field = %q, want %q", verrs[0].Field, tt.wantField)
			}
		})
	}
}

func TestValidator_CreateTeacherRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     CreateTeacherRequest
		wantErr bool
	}{
		{name: "valid", req: CreateTeacherRequest{Name: "Ms. Hoover", Email: "hoover@classtrack.com", Password: "teacher123"}},
		{name: "blank name", req: CreateTeacherRequest{Name: "   ", Email: "a@b.com", Password: "secret1"}, wantErr: true},
		{name: "bad email", req: CreateTeacherRequest{Name: "A", Email: "not-an-email", Password: "secret1"}, wantErr: true},
		{name: "short password", req: CreateTeacherRequest{Name: "A", Email: "a@b.com", Password: "123"}, wantErr: true},
		{name: "72 ascii bytes", req: CreateTeacherRequest{Name: "A", Email: "a@b.com", Password: strings.Repeat("a", 72)}},
		{name: "multibyte password over 72 bytes", req: CreateTeacherRequest{Name: "A", Email: "a@b.com", Password: strings.Repeat("漢", 40)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.Validate(&tt.req); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	one := ValidationErrors{{Field: "name", Message: "is required"}}
	if got := one.Error(); got != "validation failed: name is required" {
		t.Errorf("Error() = %q", got)
	}
	two := ValidationErrors{{Field: "a"}, {Field: "b"}}
	if got := two.Error(); got != "validation failed: 2 field errors" {
		t.Errorf("Error() = %q", got)
	}
}
