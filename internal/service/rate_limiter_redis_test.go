package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     int64
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func TestRedisRateLimiterCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *RedisRateLimiter
		res := l.Check(ctx, "10.0.0.1", 5, time.Minute)
		if !res.Allowed || res.Remaining != 5 {
			t.Fatalf("expected fail-open for nil limiter, got %+v", res)
		}
	})

	t.Run("nil client returns nil limiter", func(t *testing.T) {
		if l := NewRedisRateLimiter(nil, nil); l != nil {
			t.Fatalf("expected nil limiter without client")
		}
	})

	t.Run("allow when count within limit", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 2}
		l := &RedisRateLimiter{client: mock, prefix: "davefit:rl:", logger: zap.NewNop()}

		res := l.Check(ctx, " Routes:10.0.0.1 ", 3, 2*time.Minute)
		if !res.Allowed || res.Remaining != 1 {
			t.Fatalf("expected allowed with 1 remaining, got %+v", res)
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "davefit:rl:routes:10.0.0.1" {
			t.Fatalf("unexpected key normalization, got %+v", mock.lastKeys)
		}
		if len(mock.lastArgs) != 1 || mock.lastArgs[0] != int64(120000) {
			t.Fatalf("expected window ms=120000, got %+v", mock.lastArgs)
		}
		if mock.lastScript != redisFixedWindowScript {
			t.Fatalf("expected script to match")
		}
	})

	t.Run("last allowed call leaves zero remaining", func(t *testing.T) {
		l := &RedisRateLimiter{client: &mockRedisEvaler{result: 3}, prefix: "davefit:rl:", logger: zap.NewNop()}
		res := l.Check(ctx, "10.0.0.1", 3, time.Minute)
		if !res.Allowed || res.Remaining != 0 {
			t.Fatalf("expected allowed with 0 remaining, got %+v", res)
		}
	})

	t.Run("deny when count exceeds limit", func(t *testing.T) {
		l := &RedisRateLimiter{client: &mockRedisEvaler{result: 4}, prefix: "davefit:rl:", logger: zap.NewNop()}
		res := l.Check(ctx, "10.0.0.1", 3, time.Minute)
		if res.Allowed || res.Remaining != 0 {
			t.Fatalf("expected deny when count > limit, got %+v", res)
		}
	})

	t.Run("redis error fail-open", func(t *testing.T) {
		l := &RedisRateLimiter{client: &mockRedisEvaler{err: errors.New("redis down")}, prefix: "davefit:rl:", logger: zap.NewNop()}
		res := l.Check(ctx, "10.0.0.1", 3, time.Minute)
		if !res.Allowed || res.Remaining != 3 {
			t.Fatalf("expected fail-open on redis errors, got %+v", res)
		}
	})
}
