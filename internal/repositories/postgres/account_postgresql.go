package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/repositories"
)

type AccountPostgreSQL struct {
	db *gorm.DB
}

func NewAccountPostgreSQL(db *gorm.DB) repositories.AccountRepository {
	return &AccountPostgreSQL{db: db}
}

func (r *AccountPostgreSQL) Create(ctx context.Context, tx *gorm.DB, account *models.Account) error {
	account.Email = normalizeEmail(account.Email)
	if err := getDB(r.db, tx).WithContext(ctx).Create(account).Error; err != nil {
		return wrapWriteErr("failed to create account", err)
	}
	return nil
}

func (r *AccountPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Account, error) {
	var account models.Account
	if err := firstOrNotFound(ctx, getDB(r.db, tx), &account, "account", "id = ?", id); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountPostgreSQL) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Account, error) {
	var account models.Account
	if err := firstOrNotFound(ctx, getDB(r.db, tx), &account, "account", "email = ?", normalizeEmail(email)); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountPostgreSQL) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var count int64
	if err := getDB(r.db, tx).WithContext(ctx).
		Model(&models.Account{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check account email: %w", err)
	}
	return count > 0, nil
}

func (r *AccountPostgreSQL) ListByRole(ctx context.Context, tx *gorm.DB, role models.Role) ([]*models.Account, error) {
	var accounts []*models.Account
	if err := getDB(r.db, tx).WithContext(ctx).
		Where("role = ?", role).
		Order("name ASC").
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Delete removes the account; the teachers FK cascades to the roster and its attendance.
func (r *AccountPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return deleteByID(ctx, getDB(r.db, tx), &models.Account{}, "account", id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
