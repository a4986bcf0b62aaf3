package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/attendance-service/internal/auth"
	"github.com/SAP-F-2025/attendance-service/internal/events"
	"github.com/SAP-F-2025/attendance-service/internal/metrics"
	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/attendance-service/internal/services"
	"github.com/SAP-F-2025/attendance-service/internal/testutil"
	"github.com/SAP-F-2025/attendance-service/internal/utils"
	"github.com/SAP-F-2025/attendance-service/internal/validator"
)

type apiEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	tokens    *auth.TokenManager
	publisher *events.MockEventPublisher
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewSQLiteDB(t)
	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := auth.NewTokenManager("test-secret", "attendance-service", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	collector := metrics.NewCollector()
	registry := prometheus.NewRegistry()
	registry.MustRegister(collector)

	publisher := events.NewMockEventPublisher(slogger)
	sm := services.NewServiceManager(services.Dependencies{
		Repo:      postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db}),
		Logger:    slogger,
		Validator: validator.New(),
		Publisher: publisher,
		Tokens:    tokens,
		Metrics:   collector,
	}, services.ServiceManagerConfig{
		PasswordCost:   bcrypt.MinCost,
		DefaultTimeout: time.Second,
	})
	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	logger := utils.NewSlogLogger(slogger)
	router := gin.New()
	SetupMiddleware(router, logger, MiddlewareConfig{Metrics: collector})
	NewHandlerManager(sm, tokens, registry, logger).SetupRoutes(router)

	return &apiEnv{router: router, db: db, tokens: tokens, publisher: publisher}
}

func (e *apiEnv) teacherToken(t *testing.T, account *models.Account, teacher *models.Teacher) string {
	t.Helper()
	token, _, err := e.tokens.Issue(models.NewPublicUser(account, &teacher.ID))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return token
}

func (e *apiEnv) adminToken(t *testing.T, account *models.Account) string {
	t.Helper()
	token, _, err := e.tokens.Issue(models.NewPublicUser(account, nil))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return token
}

func (e *apiEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	var resp ErrorResponse
	decode(t, w, &resp)
	if resp.Error != code {
		t.Errorf("error code = %q, want %q", resp.Error, code)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	decode(t, w, &out)
	return out
}
