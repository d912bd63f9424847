/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package httpclient

import "context"

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyRequestType
)

func getStringFromContext(ctx context.Context, key ctxKey) string {
	value := ctx.Value(key)
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// NewContextWithRequestID creates a new context carrying the ID of the logical call.
// The request ID round tripper propagates it as the X-Request-ID header, and the
// logging round tripper attaches it to every record, so all attempts of one logical
// call (retries included) correlate.
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// GetRequestIDFromContext extracts the logical call ID from the context.
func GetRequestIDFromContext(ctx context.Context) string {
	return getStringFromContext(ctx, ctxKeyRequestID)
}

// NewContextWithRequestType creates a new context with request type.
// Request type names the endpoint family being called (e.g. "pages", "stats")
// and ends up as the "type" label on metrics and the "request_type" log field.
func NewContextWithRequestType(ctx context.Context, requestType string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestType, requestType)
}

// GetRequestTypeFromContext extracts request type from the context.
func GetRequestTypeFromContext(ctx context.Context) string {
	return getStringFromContext(ctx, ctxKeyRequestType)
}
