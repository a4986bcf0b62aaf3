package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/SAP-F-2025/attendance-service/internal/auth"
	"github.com/SAP-F-2025/attendance-service/internal/cache"
	"github.com/SAP-F-2025/attendance-service/internal/events"
	"github.com/SAP-F-2025/attendance-service/internal/metrics"
	"github.com/SAP-F-2025/attendance-service/internal/repositories"
	"github.com/SAP-F-2025/attendance-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	// bcrypt cost for new teacher passwords
	PasswordCost int

	// Bound applied to health checks
	DefaultTimeout time.Duration
}

// Dependencies are the shared collaborators handed to every service.
type Dependencies struct {
	Repo      repositories.Repository
	Logger    *slog.Logger
	Validator *validator.Validator
	Publisher events.EventPublisher
	Cache     *cache.CacheManager
	Tokens    *auth.TokenManager
	Metrics   *metrics.Collector
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	deps   Dependencies
	config ServiceManagerConfig

	attendanceService AttendanceService
	exportService     ExportService
	rosterService     RosterService
	statsService      StatsService
	authService       AuthService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(deps Dependencies, config ServiceManagerConfig) ServiceManager {
	if deps.Cache == nil {
		deps.Cache = cache.NewCacheManager(nil)
	}
	return &serviceManager{
		deps:   deps,
		config: config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(deps Dependencies) ServiceManager {
	return NewServiceManager(deps, ServiceManagerConfig{
		PasswordCost:   bcrypt.DefaultCost,
		DefaultTimeout: 5 * time.Second,
	})
}

// Initialize sets up all services
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if sm.deps.Repo == nil || sm.deps.Logger == nil || sm.deps.Validator == nil {
		return fmt.Errorf("repository, logger and validator are required")
	}
	if sm.deps.Tokens == nil {
		return fmt.Errorf("token manager is required")
	}

	sm.deps.Logger.Info("Initializing service manager")

	d := sm.deps
	sm.attendanceService = NewAttendanceService(d.Repo, d.Logger, d.Validator, d.Publisher, d.Metrics)
	sm.exportService = NewExportService(d.Repo, d.Logger, d.Validator)
	sm.rosterService = NewRosterService(d.Repo, d.Logger, d.Validator, d.Publisher, d.Cache, sm.config.PasswordCost)
	sm.statsService = NewStatsService(d.Repo, d.Logger, d.Cache)
	sm.authService = NewAuthService(d.Repo, d.Logger, d.Validator, d.Tokens)

	sm.initialized = true
	sm.deps.Logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) mustBeReady(name string) {
	if !sm.initialized {
		panic("service manager not initialized")
	}
	if sm.shutdown {
		panic(name + " service requested after shutdown")
	}
}

// Service getters
func (sm *serviceManager) Attendance() AttendanceService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("attendance")
	return sm.attendanceService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("export")
	return sm.exportService
}

func (sm *serviceManager) Roster() RosterService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("roster")
	return sm.rosterService
}

func (sm *serviceManager) Stats() StatsService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("stats")
	return sm.statsService
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("auth")
	return sm.authService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if sm.config.DefaultTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sm.config.DefaultTimeout)
		defer cancel()
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close event publisher", "error", err)
		}
	}

	if err := sm.deps.Repo.Close(); err != nil {
		sm.deps.Logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down completed")

	return nil
}
