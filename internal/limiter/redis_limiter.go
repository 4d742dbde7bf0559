package limiter

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter implements distributed rate limiting with Redis, for
// deployments where the limit must be shared across instances.
//
// Counters live in keys of the form "ratelimit:{ip}:{window}" with a TTL for
// automatic cleanup; increments happen atomically via a Lua script.
type RedisLimiter struct {
	client         *redis.Client
	ctx            context.Context
	requestsPerSec float64
	windowSize     time.Duration
}

// NewRedisLimiter connects to Redis and configures the limiter. For
// fractional rates the counting window stretches to 1/rate seconds, so
// 0.2 req/s becomes 1 request per 5-second window.
func NewRedisLimiter(addr, password string, db int, requestsPerSecond float64) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis for rate limiting: %w", err)
	}

	windowSize := time.Second
	if requestsPerSecond < 1.0 {
		windowSize = time.Duration(float64(time.Second) / requestsPerSecond)
	}

	return &RedisLimiter{
		client:         client,
		ctx:            ctx,
		requestsPerSec: requestsPerSecond,
		windowSize:     windowSize,
	}, nil
}

// Allow increments the counter for the current window and compares it to the
// per-window limit. On Redis errors it fails open rather than blocking
// legitimate traffic.
func (rl *RedisLimiter) Allow(ip string) bool {
	now := time.Now()
	windowSeconds := int64(rl.windowSize.Seconds())
	window := now.Unix() / windowSeconds
	key := fmt.Sprintf("ratelimit:%s:%d", ip, window)

	luaScript := `
		local key = KEYS[1]
		local limit = tonumber(ARGV[1])
		local ttl = tonumber(ARGV[2])

		local current = redis.call('INCR', key)

		if current == 1 then
			redis.call('EXPIRE', key, ttl)
		end

		return current
	`

	result, err := rl.client.Eval(rl.ctx, luaScript, []string{key}, rl.requestsPerSec, int(rl.windowSize.Seconds())*2).Result()
	if err != nil {
		return true
	}

	count, ok := result.(int64)
	if !ok {
		return true
	}

	limit := int64(math.Ceil(rl.requestsPerSec * rl.windowSize.Seconds()))
	return count <= limit
}

// Close closes the Redis connection.
func (rl *RedisLimiter) Close() error {
	if rl.client != nil {
		return rl.client.Close()
	}
	return nil
}
