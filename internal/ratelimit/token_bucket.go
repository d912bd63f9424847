/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// TokenBucketLimiter adapts golang.org/x/time/rate to the Limiter interface.
type TokenBucketLimiter struct {
	limiter *rate.Limiter
}

// NewTokenBucketLimiter creates a new token bucket rate limiter.
// When burst is 0, the bucket is sized to the whole window so that a client idle for
// one window can dispatch maxRate.Count requests back to back.
func NewTokenBucketLimiter(maxRate Rate, burst int) (*TokenBucketLimiter, error) {
	if maxRate.Count <= 0 {
		return nil, fmt.Errorf("rate count should be positive, got %d", maxRate.Count)
	}
	if maxRate.Duration <= 0 {
		return nil, fmt.Errorf("rate duration should be positive, got %s", maxRate.Duration)
	}
	if burst < 0 {
		return nil, fmt.Errorf("burst should not be negative, got %d", burst)
	}
	if burst == 0 {
		burst = maxRate.Count
	}
	interval := maxRate.Duration / time.Duration(maxRate.Count)
	return &TokenBucketLimiter{rate.NewLimiter(rate.Every(interval), burst)}, nil
}

// Wait blocks until one dispatch slot is acquired or ctx is done.
func (l *TokenBucketLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
