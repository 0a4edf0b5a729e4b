package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisLimiter struct {
	client *redis.Client
}

func NewRedisLimiter(client *redis.Client) *redisLimiter {
	return &redisLimiter{client: client}
}

func (l *redisLimiter) TooManyAttempts(ctx context.Context, key string, max int) (bool, error) {
	count, err := l.client.Get(ctx, key).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return count >= max, nil
}

func (l *redisLimiter) Hit(ctx context.Context, key string, window time.Duration) error {
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	// Only the first hit arms the expiry; later hits must not slide it.
	if count == 1 {
		return l.client.Expire(ctx, key, window).Err()
	}
	return nil
}

func (l *redisLimiter) Clear(ctx context.Context, key string) error {
	return l.client.Del(ctx, key).Err()
}
