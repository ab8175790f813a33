package ratelimiter

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_BurstIsImmediate(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter("test", 1, 3)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := rl.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("expected burst calls to be immediate, took %v", elapsed)
	}
}

func TestRateLimiter_WaitRespectsContext(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter("test", 0.1, 1)
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); err == nil {
		t.Error("expected error when the next token is beyond the deadline")
	}
}

func TestRateLimiter_Unlimited(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter("test", 0, 0)
	for i := 0; i < 100; i++ {
		if err := rl.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	var nilLimiter *RateLimiter
	if err := nilLimiter.Wait(context.Background()); err != nil {
		t.Errorf("expected nil limiter to never block, got %v", err)
	}
}
