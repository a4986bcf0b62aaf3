package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SAP-F-2025/attendance-service/internal/auth"
	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/services"
	"github.com/SAP-F-2025/attendance-service/internal/utils"
)

type HandlerManager struct {
	serviceManager services.ServiceManager
	gatherer       prometheus.Gatherer
	logger         utils.Logger

	authHandler       *AuthHandler
	attendanceHandler *AttendanceHandler
	studentHandler    *StudentHandler
	statsHandler      *StatsHandler
	authMiddleware    *AuthMiddleware
}

// NewHandlerManager builds every handler. A nil gatherer leaves /metrics unmounted.
func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenManager,
	gatherer prometheus.Gatherer,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		serviceManager: serviceManager,
		gatherer:       gatherer,
		logger:         logger,
		authHandler:    NewAuthHandler(serviceManager.Auth(), serviceManager.Roster(), logger),
		attendanceHandler: NewAttendanceHandler(
			serviceManager.Attendance(),
			serviceManager.Export(),
			serviceManager.Roster(),
			logger,
		),
		studentHandler: NewStudentHandler(serviceManager.Roster(), logger),
		statsHandler:   NewStatsHandler(serviceManager.Stats(), logger),
		authMiddleware: NewAuthMiddleware(tokens),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.health)
	if hm.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(hm.gatherer, promhttp.HandlerOpts{})))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: CodeRouteNotFound, Message: "route not found"})
	})

	api := router.Group("/api")
	api.POST("/auth/login", hm.authHandler.Login)

	protected := api.Group("")
	protected.Use(hm.authMiddleware.RequireAuth())
	{
		protected.GET("/auth/user/:id", hm.authHandler.GetUser)

		attendance := protected.Group("/attendance")
		{
			attendance.GET("", hm.attendanceHandler.GetAttendance)
			attendance.POST("", hm.attendanceHandler.SaveAttendance)
			attendance.GET("/summary/:studentId", hm.attendanceHandler.GetSummary)
			attendance.GET("/export", hm.attendanceHandler.ExportAttendance)
		}

		students := protected.Group("/students")
		{
			students.GET("", hm.studentHandler.ListStudents)
			students.POST("", hm.studentHandler.CreateStudent)
			students.GET("/:id", hm.studentHandler.GetStudent)
			students.DELETE("/:id", hm.studentHandler.DeleteStudent)
		}

		// Admin only
		adminOnly := hm.authMiddleware.RequireRole(models.RoleAdmin)

		teachers := protected.Group("/auth/teachers", adminOnly)
		{
			teachers.GET("", hm.authHandler.ListTeachers)
			teachers.POST("", hm.authHandler.CreateTeacher)
			teachers.DELETE("/:id", hm.authHandler.DeleteTeacher)
		}

		protected.GET("/admin/stats", adminOnly, hm.statsHandler.GetAdminStats)
	}
}

func (hm *HandlerManager) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := hm.serviceManager.HealthCheck(ctx); err != nil {
		utils.GetLogger(c, hm.logger).Warn("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "attendance-service",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "attendance-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
