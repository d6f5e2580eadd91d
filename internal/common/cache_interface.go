package common

import (
	"context"
	"time"

	"dream-analyzer/backend/internal/config"
	"dream-analyzer/backend/internal/logging"
)

// CacheInterface defines the contract for cache implementations
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a value from cache by key
	Delete(key string)

	// GetOrSet retrieves a value from cache, or loads it using the loader function if not found.
	// Concurrent misses on the same key share one loader call.
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Ping reports whether the backing store is reachable
	Ping(ctx context.Context) error

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}

// NewCacheFromConfig returns a Redis cache when Redis is enabled and reachable, the in-memory cache otherwise
func NewCacheFromConfig(ctx context.Context, cfg config.RedisConfig, defaultTTL time.Duration) CacheInterface {
	if cfg.Enabled {
		redisCache, err := NewRedisCacheService(ctx, NewRedisClient(ctx, cfg))
		if err == nil {
			return redisCache
		}
		logging.Warn("Redis unavailable, falling back to in-memory cache", "addr", cfg.Addr(), "error", err)
	}

	return NewCacheService(defaultTTL, 2*defaultTTL)
}
