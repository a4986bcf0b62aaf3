package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/attendance-service/internal/auth"
	"github.com/SAP-F-2025/attendance-service/internal/cache"
	"github.com/SAP-F-2025/attendance-service/internal/config"
	"github.com/SAP-F-2025/attendance-service/internal/events"
	"github.com/SAP-F-2025/attendance-service/internal/handlers"
	"github.com/SAP-F-2025/attendance-service/internal/metrics"
	"github.com/SAP-F-2025/attendance-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/attendance-service/internal/services"
	"github.com/SAP-F-2025/attendance-service/internal/utils"
	"github.com/SAP-F-2025/attendance-service/internal/validator"
	"github.com/SAP-F-2025/attendance-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if cfg.SeedData {
		if err := postgres.Seed(context.Background(), db, slogLogger); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Redis is optional; without it stats are computed on every request
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", "error", err)
			redisClient = nil
		}
	}

	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	publisher, err := newEventPublisher(cfg, slogLogger)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	collector := metrics.NewCollector()
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collector,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	serviceManager := services.NewDefaultServiceManager(services.Dependencies{
		Repo:      repoManager.GetRepository(),
		Logger:    slogLogger,
		Validator: validator.New(),
		Publisher: publisher,
		Cache:     cache.NewCacheManager(redisClient).WithStatsTTL(cfg.StatsCacheTTL),
		Tokens:    tokens,
		Metrics:   collector,
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger, handlers.MiddlewareConfig{
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Metrics:         collector,
	})
	handlers.NewHandlerManager(serviceManager, tokens, registry, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Closes the publisher, the database pool and redis
	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown services", "error", err)
	}

	logger.Info("Server exited")
}

// newEventPublisher publishes to Kafka when brokers are configured and to an
// in-process channel otherwise.
func newEventPublisher(cfg *config.Config, logger *slog.Logger) (events.EventPublisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		publisher, _ := events.NewInMemoryEventPublisher(cfg.Kafka.Topic, logger)
		logger.Info("Kafka not configured, publishing events in-process")
		return publisher, nil
	}
	publisher, err := events.NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	if err != nil {
		return nil, err
	}
	return publisher, nil
}
