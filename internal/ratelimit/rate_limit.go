/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Rate describes the frequency of dispatches.
type Rate struct {
	Count    int
	Duration time.Duration
}

// PerSecond makes a Rate of count dispatches per second.
func PerSecond(count int) Rate {
	return Rate{Count: count, Duration: time.Second}
}

// Limiter interface defines the rate limiting contract.
type Limiter interface {
	// Wait blocks until one dispatch slot is acquired or ctx is done.
	// It returns a non-nil error only when ctx is canceled or its deadline passes.
	Wait(ctx context.Context) error
}

// Supported rate limiting algorithms.
const (
	AlgSlidingWindow = "sliding_window"
	AlgTokenBucket   = "token_bucket"
	AlgLeakyBucket   = "leaky_bucket"
)

// New creates a Limiter implementing the requested algorithm.
// An empty alg selects the sliding window. burst only affects the token bucket and
// leaky bucket algorithms; when it's 0, a default is picked that lets an idle client
// dispatch a full window's worth of requests at once, like the sliding window does.
func New(alg string, maxRate Rate, burst int) (Limiter, error) {
	switch alg {
	case AlgSlidingWindow, "":
		return NewSlidingWindowLimiter(maxRate)
	case AlgTokenBucket:
		return NewTokenBucketLimiter(maxRate, burst)
	case AlgLeakyBucket:
		if burst <= 0 {
			burst = maxRate.Count - 1
		}
		return NewLeakyBucketLimiter(maxRate, burst)
	default:
		return nil, fmt.Errorf("unknown rate limiting alg %q", alg)
	}
}

// Clock abstracts wall-clock reads and sleeping so that tests can simulate
// elapsed time instead of really waiting.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock reads the real wall clock and really sleeps.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep implements Clock. It returns early with the context error if ctx is
// done before d elapses.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
