package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "devblog:storage:"

// Redis stores one browser scope as a Redis hash. Every write slides the
// hash expiry forward by ttl.
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedis(client *redis.Client, scope string, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		key:    redisKeyPrefix + scope,
		ttl:    ttl,
	}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.key, key, value)
		if r.ttl > 0 {
			pipe.Expire(ctx, r.key, r.ttl)
		}
		return nil
	})
	return err
}

func (r *Redis) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.HDel(ctx, r.key, keys...).Err()
}

type RedisProvider struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProvider(client *redis.Client, ttl time.Duration) *RedisProvider {
	return &RedisProvider{client: client, ttl: ttl}
}

func (p *RedisProvider) Open(scope string) Store {
	return NewRedis(p.client, scope, p.ttl)
}
