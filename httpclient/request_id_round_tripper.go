/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package httpclient

import (
	"context"
	"net/http"

	"github.com/rs/xid"
)

// RequestIDRoundTripper adds X-Request-ID header to the request.
type RequestIDRoundTripper struct {
	Delegate http.RoundTripper

	// RequestIDProvider is a function that provides a request ID.
	// By default, the ID of the logical call is taken from the context
	// (see NewContextWithRequestID), and a fresh xid is generated when
	// the context carries none.
	RequestIDProvider func(ctx context.Context) string
}

// RequestIDRoundTripperOpts is options for RequestIDRoundTripper.
type RequestIDRoundTripperOpts struct {
	RequestIDProvider func(ctx context.Context) string
}

// NewRequestIDRoundTripper creates an HTTP transport with X-Request-ID header support.
func NewRequestIDRoundTripper(delegate http.RoundTripper) http.RoundTripper {
	return NewRequestIDRoundTripperWithOpts(delegate, RequestIDRoundTripperOpts{})
}

// NewRequestIDRoundTripperWithOpts creates an HTTP transport with X-Request-ID header support with options.
func NewRequestIDRoundTripperWithOpts(
	delegate http.RoundTripper, opts RequestIDRoundTripperOpts,
) http.RoundTripper {
	return &RequestIDRoundTripper{
		Delegate:          delegate,
		RequestIDProvider: opts.RequestIDProvider,
	}
}

func (rt *RequestIDRoundTripper) getRequestID(ctx context.Context) string {
	if rt.RequestIDProvider != nil {
		return rt.RequestIDProvider(ctx)
	}
	if requestID := GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}
	return xid.New().String()
}

// RoundTrip adds X-Request-ID header to the request.
func (rt *RequestIDRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("X-Request-ID") != "" {
		return rt.Delegate.RoundTrip(req)
	}
	requestID := rt.getRequestID(req.Context())
	if requestID == "" {
		return rt.Delegate.RoundTrip(req)
	}

	req = req.Clone(req.Context()) // Per RoundTripper contract.
	req.Header.Set("X-Request-ID", requestID)
	return rt.Delegate.RoundTrip(req)
}
