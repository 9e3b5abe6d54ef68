package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisJSON keeps records as JSON blobs in redis, one key per record.
// It is the local tier of the two-tier stores: snapshots kept here have
// no TTL, a stale copy still beats an empty one when postgres is down.
type RedisJSON[T any] struct {
	rdb       *redis.Client
	keyPrefix string
}

func NewRedisJSON[T any](rdb *redis.Client, keyPrefix string) *RedisJSON[T] {
	return &RedisJSON[T]{
		rdb:       rdb,
		keyPrefix: keyPrefix,
	}
}

func (r *RedisJSON[T]) key(k string) string {
	return fmt.Sprintf("%s::%s", r.keyPrefix, k)
}

func (r *RedisJSON[T]) Get(ctx context.Context, key string) (val T, err error) {
	raw, err := r.rdb.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return val, ErrNotFound
		}
		return val, fmt.Errorf("redis get %s: %w", r.key(key), err)
	}

	if err := json.Unmarshal([]byte(raw), &val); err != nil {
		return val, fmt.Errorf("unmarshal %s: %w", r.key(key), err)
	}

	return val, nil
}

func (r *RedisJSON[T]) Set(ctx context.Context, key string, val T) error {
	valBytes, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", r.key(key), err)
	}

	if err := r.rdb.Set(ctx, r.key(key), valBytes, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key(key), err)
	}

	return nil
}
