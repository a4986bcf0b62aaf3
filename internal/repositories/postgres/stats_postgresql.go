package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/repositories"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) repositories.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountTeachers(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := getDB(r.db, tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Account{}).
		Where("role = ?", models.RoleTeacher).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count teachers: %w", err)
	}

	return count, nil
}

func (r *statsRepository) CountStudents(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := getDB(r.db, tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Student{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}

	return count, nil
}

// GetTeacherStudentCounts keeps teachers without students through the LEFT JOINs; COUNT(s.id) yields 0 for them.
func (r *statsRepository) GetTeacherStudentCounts(ctx context.Context, tx *gorm.DB) ([]models.TeacherStat, error) {
	db := getDB(r.db, tx)

	var rows []struct {
		ID           string
		TeacherID    *string
		Name         string
		Email        string
		StudentCount int64
	}

	if err := db.WithContext(ctx).
		Table("accounts AS a").
		Select("a.id AS id, t.id AS teacher_id, a.name AS name, a.email AS email, COUNT(s.id) AS student_count").
		Joins("LEFT JOIN teachers t ON t.account_id = a.id").
		Joins("LEFT JOIN students s ON s.teacher_id = t.id").
		Where("a.role = ?", models.RoleTeacher).
		Group("a.id, t.id, a.name, a.email").
		Order("a.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get teacher student counts: %w", err)
	}

	stats := make([]models.TeacherStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, models.TeacherStat{
			ID:           row.ID,
			TeacherID:    row.TeacherID,
			Name:         row.Name,
			Email:        row.Email,
			StudentCount: row.StudentCount,
		})
	}

	return stats, nil
}
