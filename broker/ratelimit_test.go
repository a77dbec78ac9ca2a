package broker

import (
	"context"
	"testing"
	"time"
)

func TestProviderRateLimiterWaitUnknownProviderIsNoop(t *testing.T) {
	rl := NewProviderRateLimiter()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rl.Wait(ctx, ProviderType("unknown")); err != nil {
		t.Errorf("expected no-op for an unregistered provider type, got %v", err)
	}
}

func TestProviderRateLimiterWaitRespectsCanceledContext(t *testing.T) {
	rl := NewProviderRateLimiter()
	// Drain the initial burst so the next call would otherwise have to wait.
	ctx := context.Background()
	for i := 0; i < defaultProviderRPS; i++ {
		if err := rl.Wait(ctx, ProviderGoogle); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := rl.Wait(canceled, ProviderGoogle); err == nil {
		t.Error("expected Wait to fail on an already-canceled context once the burst is exhausted")
	}
}
