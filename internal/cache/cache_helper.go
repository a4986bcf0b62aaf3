package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheHelper provides prefixed JSON caching on top of Redis.
// A helper built with a nil client is a no-op cache that always misses.
type CacheHelper struct {
	client *redis.Client
	prefix string
}

func NewCacheHelper(client *redis.Client, prefix string) *CacheHelper {
	return &CacheHelper{
		client: client,
		prefix: prefix,
	}
}

// CacheConfig defines cache configuration for one kind of data
type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

// StatsCacheConfig covers the admin stats aggregate.
var StatsCacheConfig = CacheConfig{
	TTL:    2 * time.Minute,
	Prefix: "attendance:stats:",
}

// Cache errors
var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache not found")
)

func (c *CacheHelper) GetCacheKey(key string) string {
	return fmt.Sprintf("%s%s", c.prefix, key)
}

// Available reports whether a Redis client is attached.
func (c *CacheHelper) Available() bool {
	return c != nil && c.client != nil
}

// Get retrieves and unmarshals data from cache
func (c *CacheHelper) Get(ctx context.Context, key string, dest interface{}) error {
	if !c.Available() {
		return ErrCacheNotAvailable
	}

	data, err := c.client.Get(ctx, c.GetCacheKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

// Set marshals and stores data in cache
func (c *CacheHelper) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.Available() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	return c.client.Set(ctx, c.GetCacheKey(key), data, ttl).Err()
}

// Delete removes keys, batching through a pipeline when there are several
func (c *CacheHelper) Delete(ctx context.Context, keys ...string) error {
	if !c.Available() || len(keys) == 0 {
		return nil
	}

	cacheKeys := make([]string, len(keys))
	for i, key := range keys {
		cacheKeys[i] = c.GetCacheKey(key)
	}

	if len(cacheKeys) > 1 {
		pipe := c.client.Pipeline()
		pipe.Del(ctx, cacheKeys...)
		_, err := pipe.Exec(ctx)
		return err
	}

	return c.client.Del(ctx, cacheKeys...).Err()
}

// InvalidatePattern removes all keys matching a pattern using SCAN instead of KEYS
func (c *CacheHelper) InvalidatePattern(ctx context.Context, pattern string) error {
	if !c.Available() {
		return nil
	}

	fullPattern := c.GetCacheKey(pattern)
	var cursor uint64
	var keys []string

	for {
		var scanKeys []string
		var err error
		scanKeys, cursor, err = c.client.Scan(ctx, cursor, fullPattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan pattern error: %w", err)
		}
		keys = append(keys, scanKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	const batchSize = 100
	for i := 0; i < len(keys); i += batchSize {
		end := min(i+batchSize, len(keys))
		pipe.Del(ctx, keys[i:end]...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache pipeline delete error: %w", err)
	}

	return nil
}

// CacheOrExecute implements cache-aside: a hit fills dest, a miss runs fetchFunc and stores its result.
// Cache failures never fail the call.
func (c *CacheHelper) CacheOrExecute(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetchFunc func() (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}

	if !errors.Is(err, ErrCacheNotFound) && !errors.Is(err, ErrCacheNotAvailable) {
		slog.WarnContext(ctx, "Cache get error, proceeding to fetch", "error", err, "key", key)
	}

	value, err := fetchFunc()
	if err != nil {
		return err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		slog.WarnContext(ctx, "Cache set error", "error", err, "key", key)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal result error: %w", err)
	}

	return json.Unmarshal(data, dest)
}

// CacheManager groups the helpers used by the service.
type CacheManager struct {
	Stats    *CacheHelper
	StatsTTL time.Duration

	client *redis.Client
}

// NewCacheManager builds the helpers; a nil client yields no-op helpers.
func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		Stats:    NewCacheHelper(client, StatsCacheConfig.Prefix),
		StatsTTL: StatsCacheConfig.TTL,
		client:   client,
	}
}

// WithStatsTTL overrides the stats TTL when ttl is positive.
func (cm *CacheManager) WithStatsTTL(ttl time.Duration) *CacheManager {
	if ttl > 0 {
		cm.StatsTTL = ttl
	}
	return cm
}

// HealthCheck verifies cache connectivity
func (cm *CacheManager) HealthCheck(ctx context.Context) error {
	if cm.client == nil {
		return ErrCacheNotAvailable
	}

	if _, err := cm.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("cache health check failed: %w", err)
	}

	return nil
}
