package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockEvaler struct {
	lastKeys []string
	lastArgs []interface{}
	count    int64
	err      error
}

func (m *mockEvaler) Eval(ctx context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.count)
	return cmd
}

func TestRedisCodeRateLimiter_AllowWithinWindow(t *testing.T) {
	client := &mockEvaler{count: 2}
	limiter := &redisCodeRateLimiter{client: client, window: 10 * time.Minute, max: 3, prefix: "code:rl:"}

	if !limiter.Allow("Ana@X.com") {
		t.Fatalf("expected allow when under limit")
	}
	if len(client.lastKeys) != 1 || client.lastKeys[0] != "code:rl:ana@x.com" {
		t.Fatalf("expected normalized key, got %v", client.lastKeys)
	}
}

func TestRedisCodeRateLimiter_DenyOverLimit(t *testing.T) {
	client := &mockEvaler{count: 4}
	limiter := &redisCodeRateLimiter{client: client, window: 10 * time.Minute, max: 3, prefix: "code:rl:"}

	if limiter.Allow("ana@x.com") {
		t.Fatalf("expected deny when over limit")
	}
}

func TestRedisCodeRateLimiter_FailsOpen(t *testing.T) {
	client := &mockEvaler{err: errors.New("redis down")}
	limiter := &redisCodeRateLimiter{client: client, window: 10 * time.Minute, max: 3, prefix: "code:rl:"}

	if !limiter.Allow("ana@x.com") {
		t.Fatalf("expected allow when redis unavailable")
	}
}

func TestRedisCodeRateLimiter_EmptyKeyDenied(t *testing.T) {
	client := &mockEvaler{count: 0}
	limiter := &redisCodeRateLimiter{client: client, window: 10 * time.Minute, max: 3, prefix: "code:rl:"}

	if limiter.Allow("   ") {
		t.Fatalf("expected deny for empty key")
	}
}

func TestCodeRateLimiter_Memory(t *testing.T) {
	limiter := NewCodeRateLimiter(time.Minute, 2)

	if !limiter.Allow("ana@x.com") || !limiter.Allow("ana@x.com") {
		t.Fatalf("expected first two requests allowed")
	}
	if limiter.Allow("ana@x.com") {
		t.Fatalf("expected third request denied")
	}
	// Chaves diferentes nao competem.
	if !limiter.Allow("bia@x.com") {
		t.Fatalf("expected other key allowed")
	}
}
