/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package httpclient

import (
	"context"
	"fmt"
	"net/http"
)

// DefaultAuthHeader is the header the Pagerun API reads the credential from.
// The API expects the raw token value, without an auth scheme prefix.
const DefaultAuthHeader = "Authorization"

// AuthRoundTripperError is returned in RoundTrip method of AuthRoundTripper
// when the credential cannot be obtained.
type AuthRoundTripperError struct {
	Inner error
}

func (e *AuthRoundTripperError) Error() string {
	return fmt.Sprintf("auth round trip: %s", e.Inner.Error())
}

// Unwrap returns the next error in the error chain.
func (e *AuthRoundTripperError) Unwrap() error {
	return e.Inner
}

// TokenProvider supplies the credential token for outgoing requests.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// StaticTokenProvider is a TokenProvider returning a fixed token.
type StaticTokenProvider string

// GetToken implements TokenProvider.
func (p StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	return string(p), nil
}

// AuthRoundTripperOpts is options for AuthRoundTripper.
type AuthRoundTripperOpts struct {
	// Header overrides the header the token is sent in. Defaults to DefaultAuthHeader.
	Header string
}

// AuthRoundTripper implements http.RoundTripper interface
// and sets the credential header in all outgoing requests.
// A header already set by the caller is left untouched.
type AuthRoundTripper struct {
	Delegate      http.RoundTripper
	TokenProvider TokenProvider
	header        string
}

// NewAuthRoundTripper creates a new AuthRoundTripper.
func NewAuthRoundTripper(delegate http.RoundTripper, tokenProvider TokenProvider) *AuthRoundTripper {
	return NewAuthRoundTripperWithOpts(delegate, tokenProvider, AuthRoundTripperOpts{})
}

// NewAuthRoundTripperWithOpts creates a new AuthRoundTripper with options.
func NewAuthRoundTripperWithOpts(
	delegate http.RoundTripper, tokenProvider TokenProvider, opts AuthRoundTripperOpts,
) *AuthRoundTripper {
	header := opts.Header
	if header == "" {
		header = DefaultAuthHeader
	}
	return &AuthRoundTripper{delegate, tokenProvider, header}
}

// RoundTrip executes a single HTTP transaction, returning a Response for the provided Request.
func (rt *AuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(rt.header) != "" {
		return rt.Delegate.RoundTrip(req)
	}
	token, err := rt.TokenProvider.GetToken(req.Context())
	if err != nil {
		if req.Body != nil {
			_ = req.Body.Close() // Per RoundTripper contract.
		}
		return nil, &AuthRoundTripperError{Inner: err}
	}
	req = req.Clone(req.Context()) // Per RoundTripper contract.
	req.Header.Set(rt.header, token)
	return rt.Delegate.RoundTrip(req)
}
