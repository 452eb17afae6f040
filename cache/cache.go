// Package cache provides a TTL cache of serialized payloads with redis and
// in-memory backends.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is a TTL-expiring key/value store of serialized payloads.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Memoize caches a function's JSON-serialized result in the store. The
// returned bool reports whether the value came from the cache. A corrupt
// cached entry falls through to the function rather than failing.
func Memoize[T any](ctx context.Context, store Store, key string, ttl time.Duration, fn func() (T, error)) (T, bool, error) {
	var result T

	if cached, ok := store.Get(ctx, key); ok {
		if err := json.Unmarshal(cached, &result); err == nil {
			return result, true, nil
		}
	}

	result, err := fn()
	if err != nil {
		return result, false, err
	}

	if data, err := json.Marshal(result); err == nil {
		store.Set(ctx, key, data, ttl)
	}

	return result, false, nil
}
