package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/attendance-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	TeacherID *string `json:"teacher_id"`
}

// ===== REPOSITORIES =====
//
// Every method takes an optional tx; nil means the repository's own connection.

type AccountRepository interface {
	Create(ctx context.Context, tx *gorm.DB, account *models.Account) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Account, error)
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	ListByRole(ctx context.Context, tx *gorm.DB, role models.Role) ([]*models.Account, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type TeacherRepository interface {
	Create(ctx context.Context, tx *gorm.DB, teacher *models.Teacher) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Teacher, error)
	GetByAccountID(ctx context.Context, tx *gorm.DB, accountID string) (*models.Teacher, error)
	ListByAccountIDs(ctx context.Context, tx *gorm.DB, accountIDs []string) ([]*models.Teacher, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error)
}

type StudentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, student *models.Student) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Student, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.Student, error)
	List(ctx context.Context, tx *gorm.DB, filters StudentFilters) ([]*models.Student, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type AttendanceRepository interface {
	// GetByDay returns records for one date and teacher ordered by marked_at ascending.
	GetByDay(ctx context.Context, tx *gorm.DB, date time.Time, teacherID string) ([]models.AttendanceRecord, error)
	// GetByStudent returns a student's full history ordered by date descending.
	GetByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]models.AttendanceRecord, error)
	GetByTeacherRange(ctx context.Context, tx *gorm.DB, teacherID string, from, to time.Time) ([]models.AttendanceRecord, error)

	Create(ctx context.Context, tx *gorm.DB, record *models.AttendanceRecord) error
	DeleteByDateAndStudents(ctx context.Context, tx *gorm.DB, date time.Time, studentIDs []string) (int64, error)
}

// StatsRepository is the one cross-store read: accounts, teachers and students.
type StatsRepository interface {
	CountTeachers(ctx context.Context, tx *gorm.DB) (int64, error)
	CountStudents(ctx context.Context, tx *gorm.DB) (int64, error)
	// GetTeacherStudentCounts left-joins teacher accounts to their rosters, ordered by name.
	GetTeacherStudentCounts(ctx context.Context, tx *gorm.DB) ([]models.TeacherStat, error)
}
