package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (r *StudentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	if err := getDB(r.db, tx).WithContext(ctx).Create(student).Error; err != nil {
		return wrapWriteErr("failed to create student", err)
	}
	return nil
}

func (r *StudentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Student, error) {
	var student models.Student
	if err := firstOrNotFound(ctx, getDB(r.db, tx), &student, "student", "id = ?", id); err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentPostgreSQL) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.Student, error) {
	if len(ids) == 0 {
		return []*models.Student{}, nil
	}

	var students []*models.Student
	if err := getDB(r.db, tx).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to get students by ids: %w", err)
	}
	return students, nil
}

// List returns students ordered by name, optionally restricted to one teacher.
func (r *StudentPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.StudentFilters) ([]*models.Student, error) {
	query := getDB(r.db, tx).WithContext(ctx).Model(&models.Student{})
	if filters.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filters.TeacherID)
	}

	students := []*models.Student{}
	if err := query.Order("name ASC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// Delete removes the student; attendance rows go with it through the FK cascade.
func (r *StudentPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return deleteByID(ctx, getDB(r.db, tx), &models.Student{}, "student", id)
}
