package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/repositories"
)

type TeacherPostgreSQL struct {
	db *gorm.DB
}

func NewTeacherPostgreSQL(db *gorm.DB) repositories.TeacherRepository {
	return &TeacherPostgreSQL{db: db}
}

func (r *TeacherPostgreSQL) Create(ctx context.Context, tx *gorm.DB, teacher *models.Teacher) error {
	teacher.Email = normalizeEmail(teacher.Email)
	if err := getDB(r.db, tx).WithContext(ctx).Create(teacher).Error; err != nil {
		return wrapWriteErr("failed to create teacher", err)
	}
	return nil
}

func (r *TeacherPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := firstOrNotFound(ctx, getDB(r.db, tx), &teacher, "teacher", "id = ?", id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *TeacherPostgreSQL) GetByAccountID(ctx context.Context, tx *gorm.DB, accountID string) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := firstOrNotFound(ctx, getDB(r.db, tx), &teacher, "teacher", "account_id = ?", accountID); err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *TeacherPostgreSQL) ListByAccountIDs(ctx context.Context, tx *gorm.DB, accountIDs []string) ([]*models.Teacher, error) {
	if len(accountIDs) == 0 {
		return []*models.Teacher{}, nil
	}

	var teachers []*models.Teacher
	if err := getDB(r.db, tx).WithContext(ctx).
		Where("account_id IN ?", accountIDs).
		Find(&teachers).Error; err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, nil
}

func (r *TeacherPostgreSQL) ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	var count int64
	if err := getDB(r.db, tx).WithContext(ctx).
		Model(&models.Teacher{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check teacher existence: %w", err)
	}
	return count > 0, nil
}
