package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"davefit/internal/domain"
)

const redisFixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`

// RedisRateLimiter comparte los contadores entre instancias usando Redis.
type RedisRateLimiter struct {
	client redisEvaler
	prefix string
	logger *zap.Logger
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisRateLimiter(client *redis.Client, logger *zap.Logger) *RedisRateLimiter {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRateLimiter{
		client: client,
		prefix: "davefit:rl:",
		logger: logger,
	}
}

func (l *RedisRateLimiter) Check(ctx context.Context, key string, limit int, window time.Duration) domain.RateLimitResult {
	limit, window = sanitizePolicy(limit, window)
	if l == nil || l.client == nil {
		return domain.RateLimitResult{Allowed: true, Remaining: limit}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	redisKey := l.prefix + normalizeLimiterKey(key)
	count, err := l.client.Eval(ctx, redisFixedWindowScript, []string{redisKey}, window.Milliseconds()).Int()
	if err != nil {
		l.logger.Warn("rate limit check failed, allowing request", zap.Error(err), zap.String("key", redisKey))
		return domain.RateLimitResult{Allowed: true, Remaining: limit}
	}
	if count > limit {
		return domain.RateLimitResult{Allowed: false, Remaining: 0}
	}
	return domain.RateLimitResult{Allowed: true, Remaining: limit - count}
}
