// Package testutil provides an in-memory SQLite database and fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/repositories/postgres"
)

// NewSQLiteDB opens a private in-memory database with foreign keys enforced and the schema migrated.
// A single connection keeps the database alive and serializes transactions.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := postgres.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// CreateTeacher inserts a teacher-role account and its teacher row.
func CreateTeacher(t testing.TB, db *gorm.DB, name, email, password string) (*models.Account, *models.Teacher) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleTeacher,
		Name:         name,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	teacher := &models.Teacher{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		Name:      name,
		Email:     email,
	}
	if err := db.Create(teacher).Error; err != nil {
		t.Fatalf("failed to create teacher: %v", err)
	}

	return account, teacher
}

// CreateAdmin inserts an admin-role account.
func CreateAdmin(t testing.TB, db *gorm.DB, name, email, password string) *models.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Name:         name,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	return account
}

func CreateStudent(t testing.TB, db *gorm.DB, teacherID, name string) *models.Student {
	t.Helper()

	student := &models.Student{ID: uuid.NewString(), Name: name, TeacherID: teacherID}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("failed to create student: %v", err)
	}
	return student
}

// Date parses a YYYY-MM-DD literal or fails the test.
func Date(t testing.TB, value string) time.Time {
	t.Helper()

	d, err := models.ParseDate(value)
	if err != nil {
		t.Fatalf("bad test date: %v", err)
	}
	return time.Time(d)
}
