package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is the default process-local backend, used when no redis
// address is configured.
type MemoryStore struct {
	inner *gocache.Cache
}

// NewMemoryStore creates an in-memory store that purges expired entries
// every ten minutes.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		inner: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := s.inner.Get(key)
	if !ok {
		return nil, false
	}
	data, ok := v.([]byte)
	return data, ok
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	s.inner.Set(key, value, ttl)
}
