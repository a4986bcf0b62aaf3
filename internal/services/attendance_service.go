package services

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/attendance-service/internal/events"
	"github.com/SAP-F-2025/attendance-service/internal/metrics"
	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/repositories"
	"github.com/SAP-F-2025/attendance-service/internal/validator"
)

type attendanceService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	metrics   *metrics.Collector
	now       func() time.Time
}

func NewAttendanceService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	publisher events.EventPublisher,
	collector *metrics.Collector,
) AttendanceService {
	return &attendanceService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
		metrics:   collector,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *attendanceService) GetByDay(ctx context.Context, query *validator.DayAttendanceQuery) ([]models.AttendanceView, error) {
	if err := s.validator.Validate(query); err != nil {
		return nil, NewValidationError(err)
	}

	date, err := models.ParseDate(query.Date)
	if err != nil {
		return nil, newFieldError("date", "must be a date in YYYY-MM-DD format", "calendar_date")
	}

	records, err := s.repo.Attendance().GetByDay(ctx, nil, time.Time(date), query.TeacherID)
	if err != nil {
		s.logger.Error("Failed to get attendance by day", "date", query.Date, "teacher_id", query.TeacherID, "error", err)
		return nil, newPersistenceError("get attendance by day", err)
	}

	return models.AttendanceViews(records), nil
}

func (s *attendanceService) GetStudentHistory(ctx context.Context, studentID string) ([]models.AttendanceView, error) {
	if studentID == "" {
		return nil, newFieldError("studentId", "is required", "required")
	}

	records, err := s.repo.Attendance().GetByStudent(ctx, nil, studentID)
	if err != nil {
		s.logger.Error("Failed to get student attendance", "student_id", studentID, "error", err)
		return nil, newPersistenceError("get student attendance", err)
	}

	return models.AttendanceViews(records), nil
}

// Save deletes the listed students' records for the date and inserts the new ones
// in one transaction. An empty batch is a no-op.
func (s *attendanceService) Save(ctx context.Context, req *validator.SaveAttendanceRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return NewValidationError(err)
	}

	if len(req.Updates) == 0 {
		return nil
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return newFieldError("date", "must be a date in YYYY-MM-DD format", "calendar_date")
	}

	updates := dedupeUpdates(req.Updates)
	studentIDs := make([]string, 0, len(updates))
	counts := make(map[models.AttendanceStatus]int, 2)
	for _, u := range updates {
		studentIDs = append(studentIDs, u.StudentID)
		counts[u.Status]++
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := checkRoster(ctx, tx, req.TeacherID, studentIDs); err != nil {
			return err
		}

		if _, err := tx.Attendance().DeleteByDateAndStudents(ctx, nil, time.Time(date), studentIDs); err != nil {
			return err
		}

		for _, u := range updates {
			record := &models.AttendanceRecord{
				ID:        uuid.NewString(),
				StudentID: u.StudentID,
				TeacherID: req.TeacherID,
				Date:      date,
				Status:    u.Status,
				MarkedAt:  s.now(),
			}
			if err := tx.Attendance().Create(ctx, nil, record); err != nil {
				return err
			}
		}
		return nil
	})

	var notFound *NotFoundError
	var denied *PermissionError
	if errors.As(err, &notFound) || errors.As(err, &denied) {
		return err
	}
	if err != nil {
		s.logger.Error("Failed to save attendance",
			"date", req.Date,
			"teacher_id", req.TeacherID,
			"updates", len(updates),
			"error", err)
		return newPersistenceError("save attendance", err)
	}

	s.metrics.ObserveAttendanceSave(counts)
	s.publish(ctx, events.NewEvent(events.AttendanceSaved, events.AttendanceSavedData{
		Date:      req.Date,
		TeacherID: req.TeacherID,
		Present:   counts[models.StatusPresent],
		Absent:    counts[models.StatusAbsent],
		Students:  studentIDs,
	}))

	s.logger.Info("Attendance saved", "date", req.Date, "teacher_id", req.TeacherID, "updates", len(updates))
	return nil
}

func (s *attendanceService) Summary(ctx context.Context, studentID string) (*models.AttendanceSummary, error) {
	history, err := s.GetStudentHistory(ctx, studentID)
	if err != nil {
		return nil, err
	}

	summary := &models.AttendanceSummary{StudentID: studentID, Total: len(history)}
	for _, r := range history {
		switch r.Status {
		case models.StatusPresent:
			summary.Present++
		case models.StatusAbsent:
			summary.Absent++
		}
	}
	if summary.Total > 0 {
		summary.AttendanceRate = math.Round(float64(summary.Present) / float64(summary.Total) * 100)
	}

	return summary, nil
}

// checkRoster rejects the batch unless every student exists and belongs to teacherID.
func checkRoster(ctx context.Context, tx repositories.Repository, teacherID string, studentIDs []string) error {
	students, err := tx.Student().GetByIDs(ctx, nil, studentIDs)
	if err != nil {
		return err
	}

	owners := make(map[string]string, len(students))
	for _, st := range students {
		owners[st.ID] = st.TeacherID
	}
	for _, id := range studentIDs {
		owner, ok := owners[id]
		if !ok {
			return &NotFoundError{Resource: "student", ID: id}
		}
		if owner != teacherID {
			return &PermissionError{
				Resource: "attendance",
				Action:   "save",
				Reason:   "student " + id + " is not on this teacher's roster",
			}
		}
	}
	return nil
}

// publish never fails the caller; the write it reports is already committed.
func (s *attendanceService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event", "type", event.Type, "event_id", event.ID, "error", err)
	}
}

// dedupeUpdates keeps one update per student; a later entry overrides an earlier one in place.
func dedupeUpdates(updates []validator.AttendanceUpdate) []validator.AttendanceUpdate {
	index := make(map[string]int, len(updates))
	out := make([]validator.AttendanceUpdate, 0, len(updates))
	for _, u := range updates {
		if i, ok := index[u.StudentID]; ok {
			out[i] = u
			continue
		}
		index[u.StudentID] = len(out)
		out = append(out, u)
	}
	return out
}
