package validator

import (
	"github.com/SAP-F-2025/attendance-service/internal/models"
)

// LoginRequest carries email/password credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,bcrypt_len"`
}

// CreateTeacherRequest creates an account and its teacher row together.
type CreateTeacherRequest struct {
	Name     string `json:"name" validate:"required,not_blank,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,bcrypt_len"`
}

type CreateStudentRequest struct {
	Name      string `json:"name" validate:"required,not_blank,max=100"`
	TeacherID string `json:"teacherId" validate:"required,max=36"`
}

type AttendanceUpdate struct {
	StudentID string                  `json:"studentId" validate:"required,max=36"`
	Status    models.AttendanceStatus `json:"status" validate:"required,attendance_status"`
}

// SaveAttendanceRequest replaces the listed students' records for one date.
// An empty Updates list is valid and saves nothing.
type SaveAttendanceRequest struct {
	Date      string             `json:"date" validate:"required,calendar_date"`
	TeacherID string             `json:"teacherId" validate:"required,max=36"`
	Updates   []AttendanceUpdate `json:"updates" validate:"dive"`
}

type DayAttendanceQuery struct {
	Date      string `json:"date" validate:"required,calendar_date"`
	TeacherID string `json:"teacherId" validate:"required,max=36"`
}

type ExportAttendanceRequest struct {
	TeacherID string `json:"teacherId" validate:"required,max=36"`
	From      string `json:"from" validate:"required,calendar_date"`
	To        string `json:"to" validate:"required,calendar_date"`
}
