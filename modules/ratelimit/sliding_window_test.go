package ratelimit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func setupTestLimiter(t *testing.T, limit int, window time.Duration) *SlidingWindowLimiter {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	if err := client.Ping(t.Context()).Err(); err != nil {
		t.Skip("Redis not available, skipping integration test")
	}

	prefix := "test:taskboard:" + uuid.New().String() + ":"
	t.Cleanup(func() {
		keys, _ := client.Keys(t.Context(), prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(t.Context(), keys...)
		}
		client.Close()
	})

	return NewSlidingWindowLimiter(client, limit, window, prefix)
}

func TestSlidingWindowLimiter_AllowUnderLimit(t *testing.T) {
	limiter := setupTestLimiter(t, 3, time.Minute)
	ctx := t.Context()

	for i := 0; i < 3; i++ {
		result, err := limiter.Allow(ctx, "client-a")
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !result.Allowed {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
		if want := 3 - i - 1; result.Remaining != want {
			t.Errorf("request %d Remaining = %d, want %d", i+1, result.Remaining, want)
		}
	}
}

func TestSlidingWindowLimiter_DenyOverLimit(t *testing.T) {
	limiter := setupTestLimiter(t, 2, time.Minute)
	ctx := t.Context()

	for i := 0; i < 2; i++ {
		if _, err := limiter.Allow(ctx, "client-b"); err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
	}

	result, err := limiter.Allow(ctx, "client-b")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if result.Allowed {
		t.Error("request over the limit was allowed")
	}
	if result.RetryAfter <= 0 || result.RetryAfter > time.Minute {
		t.Errorf("RetryAfter = %v, want within (0, window]", result.RetryAfter)
	}
}

func TestSlidingWindowLimiter_KeysAreIndependent(t *testing.T) {
	limiter := setupTestLimiter(t, 1, time.Minute)
	ctx := t.Context()

	if _, err := limiter.Allow(ctx, "client-c"); err != nil {
		t.Fatalf("Allow() error = %v", err)
	}

	result, err := limiter.Allow(ctx, "client-d")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !result.Allowed {
		t.Error("first request for a fresh key was denied")
	}
}

func TestSlidingWindowLimiter_WindowSlides(t *testing.T) {
	limiter := setupTestLimiter(t, 1, 200*time.Millisecond)
	ctx := t.Context()

	if _, err := limiter.Allow(ctx, "client-e"); err != nil {
		t.Fatalf("Allow() error = %v", err)
	}

	denied, err := limiter.Allow(ctx, "client-e")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if denied.Allowed {
		t.Error("second request inside the window was allowed")
	}

	time.Sleep(250 * time.Millisecond)

	result, err := limiter.Allow(ctx, "client-e")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !result.Allowed {
		t.Error("request after the window slid was denied")
	}
}
