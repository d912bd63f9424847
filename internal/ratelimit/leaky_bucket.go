/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package ratelimit

import (
	"context"
	"fmt"

	"github.com/throttled/throttled/v2"
	"github.com/throttled/throttled/v2/store/memstore"
)

// leakyBucketKey is the single GCRA state key. The limiter paces one client, there is
// no per-key partitioning.
const leakyBucketKey = "dispatch"

// LeakyBucketLimiter implements GCRA (Generic Cell Rate Algorithm). It's a leaky bucket variant algorithm.
// More details and good explanation of this alg is provided here: https://brandur.org/rate-limiting#gcra.
type LeakyBucketLimiter struct {
	limiter *throttled.GCRARateLimiterCtx
	clock   Clock
}

// NewLeakyBucketLimiter creates a new leaky bucket rate limiter.
// maxBurst extends the steady rate with a one-off burst allowance; 0 means dispatches
// are spread evenly over the window.
func NewLeakyBucketLimiter(maxRate Rate, maxBurst int) (*LeakyBucketLimiter, error) {
	gcraStore, err := memstore.NewCtx(0)
	if err != nil {
		return nil, fmt.Errorf("new in-memory store: %w", err)
	}
	reqQuota := throttled.RateQuota{
		MaxRate:  throttled.PerDuration(maxRate.Count, maxRate.Duration),
		MaxBurst: maxBurst,
	}
	gcraLimiter, err := throttled.NewGCRARateLimiterCtx(gcraStore, reqQuota)
	if err != nil {
		return nil, fmt.Errorf("new GCRA rate limiter: %w", err)
	}
	return &LeakyBucketLimiter{gcraLimiter, SystemClock{}}, nil
}

// Wait blocks until one dispatch slot is acquired or ctx is done.
func (l *LeakyBucketLimiter) Wait(ctx context.Context) error {
	for {
		limited, res, err := l.limiter.RateLimitCtx(ctx, leakyBucketKey, 1)
		if err != nil {
			return err
		}
		if !limited {
			return nil
		}
		if err := l.clock.Sleep(ctx, res.RetryAfter); err != nil {
			return err
		}
	}
}
