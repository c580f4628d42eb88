package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter implements a sliding window over a Redis sorted set, so
// the count is shared by every instance pointed at the same server.
// Members are scored by their unix-nano timestamp.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	max    int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		max:    max,
		window: window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := l.prefix + ":" + key
	now := time.Now()
	cutoff := now.Add(-l.window).UnixNano()

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", cutoff))
	countCmd := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("rate limit count: %w", err)
	}

	if countCmd.Val() >= int64(l.max) {
		oldest, err := l.client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		if err != nil {
			return Decision{}, fmt.Errorf("rate limit oldest: %w", err)
		}
		retryAfter := l.window
		if len(oldest) > 0 {
			oldestAt := time.Unix(0, int64(oldest[0].Score))
			retryAfter = oldestAt.Add(l.window).Sub(now)
			if retryAfter < 0 {
				retryAfter = 0
			}
		}
		return Decision{Allowed: false, RetryAfter: retryAfter}, nil
	}

	pipe = l.client.TxPipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})
	pipe.Expire(ctx, redisKey, 2*l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("rate limit record: %w", err)
	}
	return Decision{Allowed: true}, nil
}
