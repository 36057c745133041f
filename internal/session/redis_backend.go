package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps values in Redis under Prefix+key. A zero TTL keeps
// them until removed.
type RedisBackend struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisBackend(client *redis.Client, prefix string, ttl time.Duration) *RedisBackend {
	return &RedisBackend{Client: client, Prefix: prefix, TTL: ttl}
}

func (b *RedisBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := b.Client.Get(ctx, b.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (b *RedisBackend) Save(ctx context.Context, key string, value []byte) error {
	return b.Client.Set(ctx, b.Prefix+key, value, b.TTL).Err()
}

func (b *RedisBackend) Remove(ctx context.Context, key string) error {
	return b.Client.Del(ctx, b.Prefix+key).Err()
}
