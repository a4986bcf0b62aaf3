package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/attendance-service/internal/services"
	"github.com/SAP-F-2025/attendance-service/internal/utils"
	"github.com/SAP-F-2025/attendance-service/internal/validator"
)

type StudentHandler struct {
	BaseHandler
	service services.RosterService
}

func NewStudentHandler(service services.RosterService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== STUDENT ENDPOINTS =====

// ListStudents returns a roster ordered by name
// @Summary List students
// @Description Admins get every student unless teacherId is given; teachers get their own roster
// @Tags students
// @Produce json
// @Param teacherId query string false "Teacher ID"
// @Success 200 {array} models.Student
// @Failure 403 {object} ErrorResponse
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	teacherID := ownTeacherID(c, c.Query("teacherId"))
	if err := teacherScope(c, teacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	var filter *string
	if teacherID != "" {
		filter = &teacherID
	}

	students, err := h.service.ListStudents(c.Request.Context(), filter)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// CreateStudent adds a student to a teacher's roster
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Param student body validator.CreateStudentRequest true "Student data"
// @Success 201 {object} models.Student
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req validator.CreateStudentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.TeacherID = ownTeacherID(c, req.TeacherID)

	if err := teacherScope(c, req.TeacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	student, err := h.service.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Getting student", "student_id", id)

	student, err := h.service.GetStudent(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if err := teacherScope(c, student.TeacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent removes a student and its attendance history.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := c.Param("id")

	if err := studentScope(c, h.service, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	if err := h.service.DeleteStudent(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
