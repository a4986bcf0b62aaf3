package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/attendance-service/internal/services"
	"github.com/SAP-F-2025/attendance-service/internal/utils"
	"github.com/SAP-F-2025/attendance-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	authService   services.AuthService
	rosterService services.RosterService
}

func NewAuthHandler(authService services.AuthService, rosterService services.RosterService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   NewBaseHandler(logger),
		authService:   authService,
		rosterService: rosterService,
	}
}

// Login exchanges credentials for a bearer token
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body validator.LoginRequest true "Email and password"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req validator.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Login attempt", "email", req.Email)

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUser returns the public projection of an account.
// Teachers may only read their own account.
func (h *AuthHandler) GetUser(c *gin.Context) {
	id := c.Param("id")
	claims, ok := GetClaims(c)
	if !ok {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}
	if !claims.IsAdmin() && claims.AccountID() != id {
		h.handleServiceError(c, &services.PermissionError{
			Resource: "user",
			Action:   "read",
			Reason:   "teachers may only read their own account",
		})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListTeachers returns all teacher accounts ordered by name
// @Summary List teachers
// @Tags auth
// @Produce json
// @Success 200 {array} models.PublicUser
// @Failure 403 {object} ErrorResponse
// @Router /auth/teachers [get]
func (h *AuthHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.rosterService.ListTeachers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teachers)
}

// CreateTeacher registers a teacher account and its roster row
// @Summary Create teacher
// @Tags auth
// @Accept json
// @Produce json
// @Param teacher body validator.CreateTeacherRequest true "Teacher data"
// @Success 201 {object} models.PublicUser
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/teachers [post]
func (h *AuthHandler) CreateTeacher(c *gin.Context) {
	var req validator.CreateTeacherRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.rosterService.CreateTeacher(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	utils.GetLogger(c, h.logger).Info("Teacher created", "account_id", user.ID)
	c.JSON(http.StatusCreated, user)
}

// DeleteTeacher removes the account with its students and their attendance.
func (h *AuthHandler) DeleteTeacher(c *gin.Context) {
	id := c.Param("id")

	if err := h.rosterService.DeleteTeacher(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	utils.GetLogger(c, h.logger).Info("Teacher deleted", "account_id", id)
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
