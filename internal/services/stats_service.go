package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/attendance-service/internal/cache"
	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/repositories"
)

type statsService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	cacheManager *cache.CacheManager
}

func NewStatsService(repo repositories.Repository, logger *slog.Logger, cacheManager *cache.CacheManager) StatsService {
	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(nil)
	}
	return &statsService{
		repo:         repo,
		logger:       logger,
		cacheManager: cacheManager,
	}
}

// GetAdminStats returns the admin overview, served from cache when fresh.
func (s *statsService) GetAdminStats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	err := s.cacheManager.Stats.CacheOrExecute(ctx, cache.StatsAdminKey, &stats, s.cacheManager.StatsTTL, func() (interface{}, error) {
		return s.loadAdminStats(ctx)
	})
	if err != nil {
		s.logger.Error("Failed to get admin stats", "error", err)
		return nil, newPersistenceError("get admin stats", err)
	}

	if stats.TeacherStats == nil {
		stats.TeacherStats = []models.TeacherStat{}
	}
	return &stats, nil
}

func (s *statsService) loadAdminStats(ctx context.Context) (*models.AdminStats, error) {
	s.logger.Debug("Loading admin stats from database")

	totalTeachers, err := s.repo.Stats().CountTeachers(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get total teachers: %w", err)
	}

	totalStudents, err := s.repo.Stats().CountStudents(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get total students: %w", err)
	}

	teacherStats, err := s.repo.Stats().GetTeacherStudentCounts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher stats: %w", err)
	}

	return &models.AdminStats{
		TotalTeachers: totalTeachers,
		TotalStudents: totalStudents,
		TeacherStats:  teacherStats,
	}, nil
}
