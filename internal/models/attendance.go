package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

func (s AttendanceStatus) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// DateLayout is the wire and storage format of a calendar date.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(value string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return datatypes.Date(t), nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// AttendanceRecord holds one status per (student, date).
type AttendanceRecord struct {
	ID        string           `json:"id" gorm:"primaryKey;size:36"`
	StudentID string           `json:"studentId" gorm:"not null;size:36;uniqueIndex:idx_attendance_student_date;index"`
	TeacherID string           `json:"teacherId" gorm:"not null;size:36;index"`
	Date      datatypes.Date   `json:"-" gorm:"not null;uniqueIndex:idx_attendance_student_date;index"`
	Status    AttendanceStatus `json:"status" gorm:"not null;size:10;check:status IN ('present','absent')"`
	MarkedAt  time.Time        `json:"markedAt" gorm:"not null"`

	Student *Student `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Teacher *Teacher `json:"-" gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// AttendanceView is the wire shape of a record with the date rendered as YYYY-MM-DD.
type AttendanceView struct {
	ID        string           `json:"id"`
	StudentID string           `json:"studentId"`
	TeacherID string           `json:"teacherId"`
	Date      string           `json:"date"`
	Status    AttendanceStatus `json:"status"`
	MarkedAt  time.Time        `json:"markedAt"`
}

func (r *AttendanceRecord) View() AttendanceView {
	return AttendanceView{
		ID:        r.ID,
		StudentID: r.StudentID,
		TeacherID: r.TeacherID,
		Date:      FormatDate(r.Date),
		Status:    r.Status,
		MarkedAt:  r.MarkedAt,
	}
}

func AttendanceViews(records []AttendanceRecord) []AttendanceView {
	views := make([]AttendanceView, 0, len(records))
	for i := range records {
		views = append(views, records[i].View())
	}
	return views
}

// AttendanceSummary aggregates one student's history.
type AttendanceSummary struct {
	StudentID      string  `json:"studentId"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Total          int     `json:"total"`
	AttendanceRate float64 `json:"attendanceRate"`
}
