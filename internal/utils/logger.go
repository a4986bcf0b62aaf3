package utils

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const loggerContextKey = "logger"

// Logger is the logging surface handlers depend on.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(logger *slog.Logger) Logger {
	return &slogLogger{logger: logger}
}

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

// ContextLogger stores a request scoped logger carrying the request id.
func ContextLogger(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		scoped := logger
		if requestID := c.GetString("request_id"); requestID != "" {
			scoped = logger.With("request_id", requestID)
		}
		c.Set(loggerContextKey, scoped)
		c.Next()
	}
}

// GetLogger returns the request scoped logger, or fallback when none was set.
func GetLogger(c *gin.Context, fallback Logger) Logger {
	if v, ok := c.Get(loggerContextKey); ok {
		if l, ok := v.(Logger); ok {
			return l
		}
	}
	return fallback
}

// LoggerMiddleware logs one line per completed request.
func LoggerMiddleware(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		l := GetLogger(c, logger)
		switch {
		case status >= 500:
			l.Error("Request completed", args...)
		case status >= 400:
			l.Warn("Request completed", args...)
		default:
			l.Info("Request completed", args...)
		}
	}
}
