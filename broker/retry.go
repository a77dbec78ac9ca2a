package broker

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
)

// WithTransportRetry retries fn with jittered exponential backoff only
// while the error it returns classifies as KindTransportError (§4.5:
// "Retries and backoff are internal to the provider for transport errors
// only; other failures surface immediately"). Every other error kind
// returns on the first attempt.
func WithTransportRetry(ctx context.Context, maxAttempts int, fn func(ctx context.Context) (GenerateResponse, error)) (GenerateResponse, error) {
	backoff := retry.NewExponential(100 * time.Millisecond)
	backoff = retry.WithMaxRetries(uint64(maxAttempts-1), backoff)
	backoff = retry.WithJitterPercent(20, backoff)

	var resp GenerateResponse
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := fn(ctx)
		if err == nil {
			resp = r
			return nil
		}
		if IsKind(err, KindTransportError) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		var te *ToolError
		if errors.As(err, &te) {
			return GenerateResponse{}, te
		}
		return GenerateResponse{}, err
	}
	return resp, nil
}
