package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/attendance-service/internal/services"
	"github.com/SAP-F-2025/attendance-service/internal/utils"
	"github.com/SAP-F-2025/attendance-service/internal/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler struct {
	BaseHandler
	attendanceService services.AttendanceService
	exportService     services.ExportService
	rosterService     services.RosterService
}

func NewAttendanceHandler(
	attendanceService services.AttendanceService,
	exportService services.ExportService,
	rosterService services.RosterService,
	logger utils.Logger,
) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:       NewBaseHandler(logger),
		attendanceService: attendanceService,
		exportService:     exportService,
		rosterService:     rosterService,
	}
}

// GetAttendance returns a student's history when studentId is given,
// otherwise one teacher's records for a date
// @Summary Get attendance
// @Tags attendance
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param teacherId query string false "Teacher ID, defaults to the caller's own roster"
// @Param studentId query string false "Student ID"
// @Success 200 {array} models.AttendanceView
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /attendance [get]
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	ctx := c.Request.Context()

	if studentID := c.Query("studentId"); studentID != "" {
		h.LogRequest(c, "Getting student attendance history", "student_id", studentID)

		if err := studentScope(c, h.rosterService, studentID); err != nil {
			h.handleServiceError(c, err)
			return
		}
		records, err := h.attendanceService.GetStudentHistory(ctx, studentID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
		return
	}

	query := validator.DayAttendanceQuery{
		Date:      c.Query("date"),
		TeacherID: ownTeacherID(c, c.Query("teacherId")),
	}
	h.LogRequest(c, "Getting attendance for day", "date", query.Date, "teacher_id", query.TeacherID)

	if err := teacherScope(c, query.TeacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	records, err := h.attendanceService.GetByDay(ctx, &query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// SaveAttendance replaces the listed students' records for one date
// @Summary Save attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Param batch body validator.SaveAttendanceRequest true "Attendance batch"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /attendance [post]
func (h *AttendanceHandler) SaveAttendance(c *gin.Context) {
	var req validator.SaveAttendanceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.TeacherID = ownTeacherID(c, req.TeacherID)

	if err := teacherScope(c, req.TeacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	if err := h.attendanceService.Save(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// GetSummary returns present/absent totals for one student.
func (h *AttendanceHandler) GetSummary(c *gin.Context) {
	studentID := c.Param("studentId")

	if err := studentScope(c, h.rosterService, studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	summary, err := h.attendanceService.Summary(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportAttendance streams the teacher's records in [from, to] as an xlsx workbook
// @Summary Export attendance
// @Tags attendance
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param teacherId query string false "Teacher ID"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /attendance/export [get]
func (h *AttendanceHandler) ExportAttendance(c *gin.Context) {
	req := validator.ExportAttendanceRequest{
		TeacherID: ownTeacherID(c, c.Query("teacherId")),
		From:      c.Query("from"),
		To:        c.Query("to"),
	}

	if err := teacherScope(c, req.TeacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	data, err := h.exportService.ExportAttendance(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", req.From, req.To)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ownTeacherID fills an omitted teacherId with the caller's own roster.
func ownTeacherID(c *gin.Context, teacherID string) string {
	if teacherID != "" {
		return teacherID
	}
	if claims, ok := GetClaims(c); ok && !claims.IsAdmin() {
		return claims.TeacherID
	}
	return teacherID
}

// studentScope checks that a teacher caller owns the student. Admins skip the lookup.
func studentScope(c *gin.Context, roster services.RosterService, studentID string) error {
	claims, ok := GetClaims(c)
	if !ok {
		return services.ErrUnauthorized
	}
	if claims.IsAdmin() {
		return nil
	}
	student, err := roster.GetStudent(c.Request.Context(), studentID)
	if err != nil {
		return err
	}
	return teacherScope(c, student.TeacherID)
}
