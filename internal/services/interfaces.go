package services

import (
	"context"

	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/validator"
)

// ===== ATTENDANCE =====

type AttendanceService interface {
	// GetByDay returns one teacher's records for a date; never nil.
	GetByDay(ctx context.Context, query *validator.DayAttendanceQuery) ([]models.AttendanceView, error)
	// GetStudentHistory returns a student's records newest first.
	GetStudentHistory(ctx context.Context, studentID string) ([]models.AttendanceView, error)
	// Save replaces the listed students' records for the date in one transaction.
	Save(ctx context.Context, req *validator.SaveAttendanceRequest) error
	Summary(ctx context.Context, studentID string) (*models.AttendanceSummary, error)
}

// ExportService renders attendance as an xlsx workbook.
type ExportService interface {
	ExportAttendance(ctx context.Context, req *validator.ExportAttendanceRequest) ([]byte, error)
}

// ===== ROSTER =====

type RosterService interface {
	CreateStudent(ctx context.Context, req *validator.CreateStudentRequest) (*models.Student, error)
	ListStudents(ctx context.Context, teacherID *string) ([]*models.Student, error)
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	DeleteStudent(ctx context.Context, id string) error

	CreateTeacher(ctx context.Context, req *validator.CreateTeacherRequest) (*models.PublicUser, error)
	ListTeachers(ctx context.Context) ([]*models.PublicUser, error)
	DeleteTeacher(ctx context.Context, accountID string) error
	// ResolveTeacherID maps a teacher account to its roster row id.
	ResolveTeacherID(ctx context.Context, accountID string) (string, error)
}

// ===== STATS =====

type StatsService interface {
	GetAdminStats(ctx context.Context) (*models.AdminStats, error)
}

// ===== AUTH =====

type AuthService interface {
	// Authenticate never reveals whether the email or the password was wrong.
	Authenticate(ctx context.Context, req *validator.LoginRequest) (*models.PublicUser, error)
	Login(ctx context.Context, req *validator.LoginRequest) (*models.LoginResponse, error)
	GetUser(ctx context.Context, id string) (*models.PublicUser, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Attendance() AttendanceService
	Export() ExportService
	Roster() RosterService
	Stats() StatsService
	Auth() AuthService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
