package models

import (
	"time"
)

// Teacher is the roster owner linked one-to-one with a teacher-role account.
type Teacher struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	AccountID string    `json:"accountId" gorm:"uniqueIndex;not null;size:36"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	Email     string    `json:"email" gorm:"not null;size:255"`
	CreatedAt time.Time `json:"createdAt"`

	Account *Account `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (Teacher) TableName() string {
	return "teachers"
}

type Student struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	TeacherID string    `json:"teacherId" gorm:"not null;size:36;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Teacher *Teacher `json:"-" gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
}

func (Student) TableName() string {
	return "students"
}
