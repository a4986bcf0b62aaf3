package utils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestContextLoggerCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-42")
		c.Next()
	})
	router.Use(ContextLogger(logger))
	router.Use(LoggerMiddleware(logger))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry["request_id"])
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN for a 4xx response", entry["level"])
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Errorf("status = %v, want %d", entry["status"], http.StatusTeapot)
	}
}

func TestGetLoggerFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fallback := NewSlogLogger(slog.Default())
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if got := GetLogger(c, fallback); got != fallback {
		t.Error("expected fallback logger when none is set")
	}
}
