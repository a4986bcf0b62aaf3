package models

import "time"

// ===== STATS =====

type TeacherStat struct {
	ID           string  `json:"id"`
	TeacherID    *string `json:"teacherId"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	StudentCount int64   `json:"studentCount"`
}

type AdminStats struct {
	TotalTeachers int64         `json:"totalTeachers"`
	TotalStudents int64         `json:"totalStudents"`
	TeacherStats  []TeacherStat `json:"teacherStats"`
}

// ===== AUTH =====

type LoginResponse struct {
	User      *PublicUser `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// ===== RESPONSES =====

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Rule    string `json:"rule"`
}

type ErrorResponse struct {
	Error            string                    `json:"error"`
	Message          string                    `json:"message"`
	Details          interface{}               `json:"details,omitempty"`
	ValidationErrors []ValidationErrorResponse `json:"validationErrors,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
