package common

import (
	"encoding/json"
	"fmt"
	"time"
)

// GetOrSetJSON caches the JSON encoding of the loader's result, so both cache backends hand back a string.
// hit reports whether the value came from the cache.
func GetOrSetJSON[T any](c CacheInterface, key string, ttl time.Duration, loader func() (*T, error)) (value *T, hit bool, err error) {
	if cached, found := c.Get(key); found {
		if v, ok := decodeCached[T](cached); ok {
			return v, true, nil
		}
		c.Delete(key)
	}

	raw, err := c.GetOrSet(key, ttl, func() (any, error) {
		v, err := loader()
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding cache value: %w", err)
		}
		return string(data), nil
	})
	if err != nil {
		return nil, false, err
	}

	v, ok := decodeCached[T](raw)
	if !ok {
		return nil, false, fmt.Errorf("cache value for %s has unexpected type %T", key, raw)
	}
	return v, false, nil
}

func decodeCached[T any](cached interface{}) (*T, bool) {
	s, ok := cached.(string)
	if !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return &v, true
}
