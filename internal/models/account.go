package models

import (
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleTeacher
}

// Account is a login identity. Role never changes after creation.
type Account struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string    `json:"-" gorm:"not null;size:255"`
	Role         Role      `json:"role" gorm:"not null;size:20;check:role IN ('admin','teacher')"`
	Name         string    `json:"name" gorm:"not null;size:100"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Account) TableName() string {
	return "accounts"
}

// PublicUser is the account projection returned to clients; it never carries the password hash.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	TeacherID *string   `json:"teacherId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewPublicUser(account *Account, teacherID *string) *PublicUser {
	return &PublicUser{
		ID:        account.ID,
		Email:     account.Email,
		Name:      account.Name,
		Role:      account.Role,
		TeacherID: teacherID,
		CreatedAt: account.CreatedAt,
	}
}
