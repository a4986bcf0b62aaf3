// Package events publishes attendance domain events through watermill.
package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a domain event on the wire.
type EventType string

const (
	AttendanceSaved EventType = "attendance.saved"
	TeacherCreated  EventType = "teacher.created"
	TeacherDeleted  EventType = "teacher.deleted"
	StudentCreated  EventType = "student.created"
	StudentDeleted  EventType = "student.deleted"
)

const (
	EventSource  = "attendance-service"
	EventVersion = "1.0"
)

// Event is the envelope serialized as the message payload.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(eventType EventType, data interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ===== PAYLOADS =====

type AttendanceSavedData struct {
	Date      string   `json:"date"`
	TeacherID string   `json:"teacherId"`
	Present   int      `json:"present"`
	Absent    int      `json:"absent"`
	Students  []string `json:"studentIds"`
}

type TeacherData struct {
	AccountID string `json:"accountId"`
	TeacherID string `json:"teacherId,omitempty"`
	Email     string `json:"email,omitempty"`
}

type StudentData struct {
	StudentID string `json:"studentId"`
	TeacherID string `json:"teacherId,omitempty"`
}
