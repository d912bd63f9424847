/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package pagerun

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cast"
)

// APIError is the terminal error for a call the Pagerun API answered with a
// non-2xx status: immediately for plain HTTP errors, after the retries are
// exhausted for 429 and 5xx. Message carries what the server reported.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("pagerun API error: status %d: %s (request id %s)", e.StatusCode, e.Message, e.RequestID)
	}
	return fmt.Sprintf("pagerun API error: status %d: %s", e.StatusCode, e.Message)
}

// ConnectionError is the terminal error for a call that kept failing on the
// transport level (connection refused, DNS, timeout) until the retries were
// exhausted.
type ConnectionError struct {
	Inner error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("pagerun API connection error: %s", e.Inner.Error())
}

// Unwrap returns the next error in the error chain.
func (e *ConnectionError) Unwrap() error {
	return e.Inner
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// isRetryableStatusCode reports whether a status classifies the attempt as a
// transient failure: 429 (rate limited) and the whole 5xx range.
func isRetryableStatusCode(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}

// errorMessageFromPayload extracts the server-provided error message: the
// "error" field of the decoded body when present (coerced to a string
// whatever JSON type it is), the raw body text otherwise.
func errorMessageFromPayload(payload interface{}, rawText string) string {
	if decoded, ok := payload.(map[string]interface{}); ok {
		if errVal, found := decoded["error"]; found {
			if msg := cast.ToString(errVal); msg != "" {
				return msg
			}
		}
	}
	return rawText
}
