/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

// Package testutil provides helpers for tests: assertion shortcuts for JSON
// responses, Prometheus metrics and error chains, and an in-process fake of
// the Pagerun API.
package testutil

type tHelper interface {
	Helper()
}
