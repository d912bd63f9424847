/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

// Package ratelimit paces outgoing API dispatches.
//
// All limiters implement the Limiter interface: Wait blocks until the next
// dispatch may happen or the context is done. The sliding window limiter is
// the exact one and the default: no more than the configured number of
// dispatches can happen within any trailing window, no matter how the calls
// interleave. Token bucket (golang.org/x/time/rate) and leaky bucket (GCRA
// via throttled/v2) are cheaper approximations that can briefly overshoot the
// trailing-window ceiling after bursts.
package ratelimit
