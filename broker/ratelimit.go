package broker

import (
	"context"

	"golang.org/x/time/rate"
)

// ProviderRateLimiter enforces a per-provider requests-per-second cap
// independent of the kernel's overall concurrency limit (§5: the
// semaphore bounds how many calls run at once; this bounds how often
// any single provider is hit, so one chatty tool can't alone trip that
// provider's own rate limit). Grounded on the rate-limiting concern
// the teacher covers with a hand-rolled token bucket
// (agent/rate_limiter_token_bucket.go); golang.org/x/time/rate is the
// standard-ecosystem equivalent and was already an indirect teacher
// dependency.
type ProviderRateLimiter struct {
	limiters map[ProviderType]*rate.Limiter
}

// defaultProviderRPS is conservative enough to stay under typical free
// and pay-as-you-go tiers for all four provider families without a
// per-provider config surface.
const defaultProviderRPS = 5

func NewProviderRateLimiter() *ProviderRateLimiter {
	rl := &ProviderRateLimiter{limiters: make(map[ProviderType]*rate.Limiter)}
	for _, pt := range []ProviderType{ProviderGoogle, ProviderOpenAI, ProviderOpenRouter, ProviderCustom} {
		rl.limiters[pt] = rate.NewLimiter(rate.Limit(defaultProviderRPS), defaultProviderRPS)
	}
	return rl
}

// Wait blocks until a token is available for pt, or ctx is canceled.
func (rl *ProviderRateLimiter) Wait(ctx context.Context, pt ProviderType) error {
	l, ok := rl.limiters[pt]
	if !ok {
		return nil
	}
	return l.Wait(ctx)
}
