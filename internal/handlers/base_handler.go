package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/services"
	"github.com/SAP-F-2025/attendance-service/internal/utils"
)

// Codes produced by the HTTP layer itself rather than a service.
const (
	CodeRateLimited   = "rate_limited"
	CodeRouteNotFound = "not_found"
)

type ErrorResponse = models.ErrorResponse

type SuccessResponse = models.SuccessResponse

// BaseHandler carries what every handler shares.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Debug(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Error(msg, append(args, "error", err)...)
}

// bindJSON decodes the body and answers 400 on failure.
func (h *BaseHandler) bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		h.handleServiceError(c, services.NewValidationError(err))
		return false
	}
	return true
}

// handleServiceError maps service errors onto status codes and the error body.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		resp := ErrorResponse{
			Error:   services.CodeValidationFailed,
			Message: "Validation failed",
		}
		for _, f := range validationErr.Fields {
			resp.ValidationErrors = append(resp.ValidationErrors, models.ValidationErrorResponse{
				Field:   f.Field,
				Message: f.Message,
				Rule:    f.Rule,
			})
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	var permissionErr *services.PermissionError
	if errors.As(err, &permissionErr) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   services.CodeForbidden,
			Message: "Access denied",
			Details: map[string]interface{}{
				"resource": permissionErr.Resource,
				"action":   permissionErr.Action,
				"reason":   permissionErr.Reason,
			},
		})
		return
	}

	switch code := services.ErrorCode(err); code {
	case services.CodeConflict:
		c.JSON(http.StatusConflict, ErrorResponse{Error: code, Message: err.Error()})
	case services.CodeNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: code, Message: err.Error()})
	case services.CodeInvalidCredentials:
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: code, Message: "Invalid email or password"})
	case services.CodeUnauthorized:
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: code, Message: "Authentication required"})
	case services.CodeForbidden:
		c.JSON(http.StatusForbidden, ErrorResponse{Error: code, Message: "Access denied"})
	default:
		h.LogError(c, err, "Request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   services.CodeInternal,
			Message: "Internal server error",
		})
	}
}
