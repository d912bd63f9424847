/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package retry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"

	"github.com/pagerun/pagerun-go/retry"
)

func TestDoWithRetry(t *testing.T) {
	t.Run("succeeds after transient errors", func(t *testing.T) {
		var calls int
		err := retry.DoWithRetry(context.Background(), retry.NewConstantBackoffPolicy(time.Millisecond, 5), nil, nil,
			func(ctx context.Context) error {
				calls++
				if calls < 3 {
					return errors.New("transient error")
				}
				return nil
			})
		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("attempts are exhausted", func(t *testing.T) {
		var calls int
		wantErr := errors.New("transient error")
		err := retry.DoWithRetry(context.Background(), retry.NewConstantBackoffPolicy(time.Millisecond, 2), nil, nil,
			func(ctx context.Context) error {
				calls++
				return wantErr
			})
		require.ErrorIs(t, err, wantErr)
		require.Equal(t, 3, calls, "2 retries mean 3 attempts in total")
	})

	t.Run("non-retryable error stops immediately", func(t *testing.T) {
		var calls int
		wantErr := errors.New("persistent error")
		isRetryable := func(err error) bool {
			return !errors.Is(err, wantErr)
		}
		err := retry.DoWithRetry(context.Background(), retry.NewConstantBackoffPolicy(time.Millisecond, 5), isRetryable, nil,
			func(ctx context.Context) error {
				calls++
				return wantErr
			})
		require.ErrorIs(t, err, wantErr)
		require.Equal(t, 1, calls)
	})

	t.Run("context cancellation interrupts retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var calls int
		err := retry.DoWithRetry(ctx, retry.NewConstantBackoffPolicy(time.Minute, 5), nil, nil,
			func(ctx context.Context) error {
				calls++
				cancel()
				return errors.New("transient error")
			})
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, 1, calls)
	})

	t.Run("notify receives error and delay for each retry", func(t *testing.T) {
		var notified []time.Duration
		notify := func(err error, delay time.Duration) {
			require.EqualError(t, err, "transient error")
			notified = append(notified, delay)
		}
		var calls int
		err := retry.DoWithRetry(context.Background(), retry.NewExponentialBackoffPolicy(time.Millisecond, 3), nil, notify,
			func(ctx context.Context) error {
				calls++
				return errors.New("transient error")
			})
		require.Error(t, err)
		require.Equal(t, 4, calls)
		require.Len(t, notified, 3)
		requireExponentialDelays(t, time.Millisecond, notified)
	})
}

func TestExponentialBackoffPolicy(t *testing.T) {
	t.Run("delays double and stay within the jitter bounds", func(t *testing.T) {
		const initialInterval = 500 * time.Millisecond

		b := retry.NewExponentialBackoffPolicy(initialInterval, 0).NewBackOff()
		var delays []time.Duration
		for i := 0; i < 10; i++ {
			next := b.NextBackOff()
			require.NotEqual(t, backoff.Stop, next)
			delays = append(delays, next)
		}
		requireExponentialDelays(t, initialInterval, delays)
	})

	t.Run("stops after max attempts", func(t *testing.T) {
		b := retry.NewExponentialBackoffPolicy(time.Millisecond, 3).NewBackOff()
		for i := 0; i < 3; i++ {
			require.NotEqual(t, backoff.Stop, b.NextBackOff())
		}
		require.Equal(t, backoff.Stop, b.NextBackOff())
	})

	t.Run("reset starts the progression over", func(t *testing.T) {
		b := retry.NewExponentialBackoffPolicy(time.Second, 0).NewBackOff()
		for i := 0; i < 5; i++ {
			b.NextBackOff()
		}
		b.Reset()
		next := b.NextBackOff()
		require.GreaterOrEqual(t, next, 800*time.Millisecond)
		require.LessOrEqual(t, next, 1200*time.Millisecond)
	})
}

func TestConstantBackoffPolicy(t *testing.T) {
	b := retry.NewConstantBackoffPolicy(2*time.Second, 2).NewBackOff()
	require.Equal(t, 2*time.Second, b.NextBackOff())
	require.Equal(t, 2*time.Second, b.NextBackOff())
	require.Equal(t, backoff.Stop, b.NextBackOff())
}

func TestPolicyFunc(t *testing.T) {
	var policy retry.Policy = retry.PolicyFunc(func() backoff.BackOff {
		return backoff.NewConstantBackOff(time.Second)
	})
	require.Equal(t, time.Second, policy.NewBackOff().NextBackOff())
}

// requireExponentialDelays checks that the i-th delay lies within
// [0.8*initialInterval*2^i, 1.2*initialInterval*2^i].
func requireExponentialDelays(t *testing.T, initialInterval time.Duration, delays []time.Duration) {
	t.Helper()
	base := initialInterval
	for i, delay := range delays {
		low := time.Duration(float64(base) * 0.8)
		high := time.Duration(float64(base) * 1.2)
		require.GreaterOrEqual(t, delay, low, fmt.Sprintf("delay #%d", i+1))
		require.LessOrEqual(t, delay, high, fmt.Sprintf("delay #%d", i+1))
		base *= 2
	}
}
