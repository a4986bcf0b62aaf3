package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/repositories"
)

type AttendancePostgreSQL struct {
	db *gorm.DB
}

func NewAttendancePostgreSQL(db *gorm.DB) repositories.AttendanceRepository {
	return &AttendancePostgreSQL{db: db}
}

func (r *AttendancePostgreSQL) GetByDay(ctx context.Context, tx *gorm.DB, date time.Time, teacherID string) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	if err := getDB(r.db, tx).WithContext(ctx).
		Where("date = ? AND teacher_id = ?", datatypes.Date(date), teacherID).
		Order("marked_at ASC").
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get attendance by day: %w", err)
	}
	return records, nil
}

func (r *AttendancePostgreSQL) GetByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	if err := getDB(r.db, tx).WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get student attendance: %w", err)
	}
	return records, nil
}

func (r *AttendancePostgreSQL) GetByTeacherRange(ctx context.Context, tx *gorm.DB, teacherID string, from, to time.Time) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	if err := getDB(r.db, tx).WithContext(ctx).
		Where("teacher_id = ? AND date >= ? AND date <= ?", teacherID, datatypes.Date(from), datatypes.Date(to)).
		Order("date ASC").
		Order("marked_at ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get attendance range: %w", err)
	}
	return records, nil
}

func (r *AttendancePostgreSQL) Create(ctx context.Context, tx *gorm.DB, record *models.AttendanceRecord) error {
	if err := getDB(r.db, tx).WithContext(ctx).Create(record).Error; err != nil {
		return wrapWriteErr("failed to create attendance record", err)
	}
	return nil
}

// DeleteByDateAndStudents clears existing records for the given students on one date.
func (r *AttendancePostgreSQL) DeleteByDateAndStudents(ctx context.Context, tx *gorm.DB, date time.Time, studentIDs []string) (int64, error) {
	if len(studentIDs) == 0 {
		return 0, nil
	}

	result := getDB(r.db, tx).WithContext(ctx).
		Where("date = ? AND student_id IN ?", datatypes.Date(date), studentIDs).
		Delete(&models.AttendanceRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete attendance records: %w", result.Error)
	}
	return result.RowsAffected, nil
}
