package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/repositories"
	"github.com/SAP-F-2025/attendance-service/internal/validator"
)

const exportSheet = "Attendance"

var exportHeaders = []interface{}{"Date", "Student", "Status", "Marked At"}

type exportService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewExportService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ExportService {
	return &exportService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ExportAttendance renders the teacher's records in [from, to] ordered by date.
func (s *exportService) ExportAttendance(ctx context.Context, req *validator.ExportAttendanceRequest) ([]byte, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	from, err := models.ParseDate(req.From)
	if err != nil {
		return nil, newFieldError("from", "must be a date in YYYY-MM-DD format", "calendar_date")
	}
	to, err := models.ParseDate(req.To)
	if err != nil {
		return nil, newFieldError("to", "must be a date in YYYY-MM-DD format", "calendar_date")
	}
	if time.Time(to).Before(time.Time(from)) {
		return nil, newFieldError("to", "must not be before from", "gtefield")
	}

	records, err := s.repo.Attendance().GetByTeacherRange(ctx, nil, req.TeacherID, time.Time(from), time.Time(to))
	if err != nil {
		return nil, newPersistenceError("get attendance range", err)
	}

	names, err := s.studentNames(ctx, records)
	if err != nil {
		return nil, newPersistenceError("resolve student names", err)
	}

	data, err := buildAttendanceWorkbook(records, names)
	if err != nil {
		s.logger.Error("Failed to build attendance workbook", "teacher_id", req.TeacherID, "error", err)
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	s.logger.Info("Attendance exported", "teacher_id", req.TeacherID, "from", req.From, "to", req.To, "rows", len(records))
	return data, nil
}

func (s *exportService) studentNames(ctx context.Context, records []models.AttendanceRecord) (map[string]string, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.StudentID]; ok {
			continue
		}
		seen[r.StudentID] = struct{}{}
		ids = append(ids, r.StudentID)
	}

	students, err := s.repo.Student().GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(students))
	for _, st := range students {
		names[st.ID] = st.Name
	}
	return names, nil
}

func buildAttendanceWorkbook(records []models.AttendanceRecord, names map[string]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, err
	}

	for i, r := range records {
		name, ok := names[r.StudentID]
		if !ok {
			name = r.StudentID
		}
		row := []interface{}{
			models.FormatDate(r.Date),
			name,
			string(r.Status),
			r.MarkedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
