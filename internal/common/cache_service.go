package common

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// CacheService is the in-memory cache, used in tests and when Redis is disabled
type CacheService struct {
	cache *cache.Cache
	group singleflight.Group
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

func NewCacheService(defaultExpiration, cleanUpInterval time.Duration) *CacheService {
	c := cache.New(defaultExpiration, cleanUpInterval)
	return &CacheService{cache: c}
}

func (cs *CacheService) Set(key string, value interface{}, duration time.Duration) {
	cs.cache.Set(key, value, duration)
}

func (cs *CacheService) Get(key string) (interface{}, bool) {
	return cs.cache.Get(key)
}

func (cs *CacheService) Delete(key string) {
	cs.cache.Delete(key)
}

func (cs *CacheService) GetOrSet(
	key string,
	duration time.Duration,
	loader func() (any, error)) (interface{}, error) {
	if val, found := cs.Get(key); found {
		return val, nil
	}

	val, err, _ := cs.group.Do(key, func() (interface{}, error) {
		if v, found := cs.Get(key); found {
			return v, nil
		}
		v, err := loader()
		if err != nil {
			return nil, err
		}
		cs.Set(key, v, duration)
		return v, nil
	})
	return val, err
}

// Ping always succeeds for the in-memory cache
func (cs *CacheService) Ping(ctx context.Context) error {
	return nil
}

// Close closes the cache (no-op for in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}
