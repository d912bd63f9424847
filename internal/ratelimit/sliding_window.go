/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SlidingWindowLimiter implements sliding window rate limiting algorithm.
// It keeps a log of dispatch timestamps: a dispatch slot is granted once fewer than
// maxRate.Count logged dispatches remain within the trailing maxRate.Duration window,
// callers over the ceiling sleep until the earliest logged dispatch leaves the window.
type SlidingWindowLimiter struct {
	maxRate Rate
	clock   Clock

	mu  sync.Mutex
	log []time.Time
}

// NewSlidingWindowLimiter creates a new sliding window rate limiter on the system clock.
func NewSlidingWindowLimiter(maxRate Rate) (*SlidingWindowLimiter, error) {
	return NewSlidingWindowLimiterWithClock(maxRate, SystemClock{})
}

// NewSlidingWindowLimiterWithClock creates a new sliding window rate limiter reading
// time from the passed clock.
func NewSlidingWindowLimiterWithClock(maxRate Rate, clock Clock) (*SlidingWindowLimiter, error) {
	if maxRate.Count <= 0 {
		return nil, fmt.Errorf("rate count should be positive, got %d", maxRate.Count)
	}
	if maxRate.Duration <= 0 {
		return nil, fmt.Errorf("rate duration should be positive, got %s", maxRate.Duration)
	}
	return &SlidingWindowLimiter{
		maxRate: maxRate,
		clock:   clock,
		log:     make([]time.Time, 0, maxRate.Count),
	}, nil
}

// Wait blocks until one dispatch slot is acquired or ctx is done.
// After it returns nil, an immediate dispatch cannot push the number of dispatches
// within the trailing window above maxRate.Count, no matter how many goroutines
// share the limiter. The whole prune-check-append step runs under the lock, waiters
// re-check the log after every sleep.
func (l *SlidingWindowLimiter) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.mu.Lock()
		now := l.clock.Now()
		l.prune(now)
		if len(l.log) < l.maxRate.Count {
			l.log = append(l.log, now)
			l.mu.Unlock()
			return nil
		}
		// The next slot frees up when the earliest logged dispatch leaves the window.
		waitFor := l.maxRate.Duration - now.Sub(l.log[0])
		l.mu.Unlock()

		if err := l.clock.Sleep(ctx, waitFor); err != nil {
			return err
		}
	}
}

// prune drops log entries that left the trailing window, including ones aged exactly
// one window.
func (l *SlidingWindowLimiter) prune(now time.Time) {
	i := 0
	for i < len(l.log) && now.Sub(l.log[i]) >= l.maxRate.Duration {
		i++
	}
	if i > 0 {
		l.log = append(l.log[:0], l.log[i:]...)
	}
}
