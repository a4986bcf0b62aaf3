package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/attendance-service/internal/repositories"
)

// getDB returns tx when provided, otherwise the default connection
func getDB(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// firstOrNotFound loads one row and maps gorm.ErrRecordNotFound to repositories.ErrNotFound
func firstOrNotFound(ctx context.Context, db *gorm.DB, dest interface{}, entity string, query string, args ...interface{}) error {
	err := db.WithContext(ctx).Where(query, args...).First(dest).Error
	if err == nil {
		return nil
	}
	if repositories.IsNotFoundError(err) {
		return fmt.Errorf("%s: %w", entity, repositories.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", entity, err)
}

// wrapWriteErr keeps duplicate-key errors recognizable through the wrap
func wrapWriteErr(op string, err error) error {
	if repositories.IsDuplicateError(err) {
		return fmt.Errorf("%s: %w: %w", op, repositories.ErrDuplicate, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// deleteByID removes one row and reports ErrNotFound when nothing matched
func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, entity, id string) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, repositories.ErrNotFound)
	}
	return nil
}
