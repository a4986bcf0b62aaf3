package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/attendance-service/internal/models"
)

// AutoMigrate creates the tables, FK cascades and the (student_id, date) unique index when absent.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Account{},
		&models.Teacher{},
		&models.Student{},
		&models.AttendanceRecord{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

type seedTeacher struct {
	name     string
	email    string
	password string
	students []string
}

var (
	seedAdmin = struct{ name, email, password string }{
		name: "Principal Skinner", email: "admin@classtrack.com", password: "admin123",
	}
	seedTeachers = []seedTeacher{
		{
			name: "Ms. Krabappel", email: "teacher@classtrack.com", password: "teacher123",
			students: []string{"Bart Simpson", "Milhouse Van Houten", "Martin Prince"},
		},
		{
			name: "Ms. Hoover", email: "hoover@classtrack.com", password: "teacher123",
			students: []string{"Lisa Simpson", "Ralph Wiggum"},
		},
	}
)

// Seed inserts the demo admin, teachers and students. Existing emails and
// student names are skipped, so running it twice is harmless.
func Seed(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := seedAccount(tx, seedAdmin.name, seedAdmin.email, seedAdmin.password, models.RoleAdmin); err != nil {
			return err
		}

		for _, st := range seedTeachers {
			account, err := seedAccount(tx, st.name, st.email, st.password, models.RoleTeacher)
			if err != nil {
				return err
			}

			var teacher models.Teacher
			err = tx.Where("account_id = ?", account.ID).First(&teacher).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				teacher = models.Teacher{
					ID:        uuid.NewString(),
					AccountID: account.ID,
					Name:      account.Name,
					Email:     account.Email,
					CreatedAt: time.Now().UTC(),
				}
				if err := tx.Create(&teacher).Error; err != nil {
					return fmt.Errorf("failed to seed teacher %s: %w", st.email, err)
				}
			} else if err != nil {
				return fmt.Errorf("failed to look up teacher %s: %w", st.email, err)
			}

			for _, name := range st.students {
				var count int64
				if err := tx.Model(&models.Student{}).
					Where("name = ? AND teacher_id = ?", name, teacher.ID).
					Count(&count).Error; err != nil {
					return fmt.Errorf("failed to check student %s: %w", name, err)
				}
				if count > 0 {
					continue
				}
				student := models.Student{ID: uuid.NewString(), Name: name, TeacherID: teacher.ID}
				if err := tx.Create(&student).Error; err != nil {
					return fmt.Errorf("failed to seed student %s: %w", name, err)
				}
			}
		}

		logger.Info("Seed data ensured", "teachers", len(seedTeachers))
		return nil
	})
}

func seedAccount(tx *gorm.DB, name, email, password string, role models.Role) (*models.Account, error) {
	var account models.Account
	err := tx.Where("email = ?", email).First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up account %s: %w", email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	account = models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
	}
	if err := tx.Create(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to seed account %s: %w", email, err)
	}
	return &account, nil
}
