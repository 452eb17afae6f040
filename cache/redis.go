package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/phuslu/log"
)

// RedisStore backs the cache with a redis instance so entries survive
// restarts and can be shared across replicas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the redis instance at addr.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}
