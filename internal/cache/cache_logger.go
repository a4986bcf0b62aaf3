package cache

import (
	"context"
	"log/slog"
)

// StatsAdminKey holds the admin overview aggregate.
const StatsAdminKey = "admin"

// SafeInvalidatePattern invalidates a pattern and logs instead of failing
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes keys and logs instead of failing
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateStatsCache drops every cached stats aggregate after a roster change.
func InvalidateStatsCache(ctx context.Context, cm *CacheManager) {
	if cm == nil {
		return
	}
	SafeDelete(ctx, cm.Stats, StatsAdminKey)
	SafeInvalidatePattern(ctx, cm.Stats, "*")
}
