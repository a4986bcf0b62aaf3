package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/attendance-service/internal/auth"
	"github.com/SAP-F-2025/attendance-service/internal/cache"
	"github.com/SAP-F-2025/attendance-service/internal/events"
	"github.com/SAP-F-2025/attendance-service/internal/metrics"
	"github.com/SAP-F-2025/attendance-service/internal/repositories"
	"github.com/SAP-F-2025/attendance-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/attendance-service/internal/testutil"
	"github.com/SAP-F-2025/attendance-service/internal/validator"
)

type testEnv struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher *events.MockEventPublisher
	cache     *cache.CacheManager
	redis     *miniredis.Miniredis
	tokens    *auth.TokenManager
	metrics   *metrics.Collector
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	tokens, err := auth.NewTokenManager("test-secret", "attendance-service", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	return &testEnv{
		db:        db,
		repo:      postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db}),
		logger:    logger,
		validator: validator.New(),
		publisher: events.NewMockEventPublisher(logger),
		cache:     cache.NewCacheManager(client),
		redis:     mr,
		tokens:    tokens,
		metrics:   metrics.NewCollector(),
	}
}

// attendance returns the service with a clock that advances one second per read.
func (e *testEnv) attendance() *attendanceService {
	svc := NewAttendanceService(e.repo, e.logger, e.validator, e.publisher, e.metrics).(*attendanceService)
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	ticks := 0
	svc.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Second)
	}
	return svc
}

func (e *testEnv) roster() RosterService {
	return NewRosterService(e.repo, e.logger, e.validator, e.publisher, e.cache, bcrypt.MinCost)
}

func (e *testEnv) stats() StatsService {
	return NewStatsService(e.repo, e.logger, e.cache)
}

func (e *testEnv) auth() AuthService {
	return NewAuthService(e.repo, e.logger, e.validator, e.tokens)
}

func (e *testEnv) export() ExportService {
	return NewExportService(e.repo, e.logger, e.validator)
}
