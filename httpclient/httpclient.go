/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

// Package httpclient provides http.RoundTripper decorators for outgoing API
// requests (auth, user agent, request ID propagation, logging, metrics) and a
// constructor composing them into an http.Client.
package httpclient

import (
	"context"
	"net/http"

	"github.com/pagerun/pagerun-go/log"
)

// Opts provides options for New function.
type Opts struct {
	// Delegate is the transport the chain ends at. http.DefaultTransport clone by default.
	Delegate http.RoundTripper

	// UserAgent overrides the default "pagerun-go/<version>" User-Agent header value.
	UserAgent string

	// Logger is used by the logging round tripper when LoggerProvider is not set.
	Logger log.FieldLogger

	// LoggerProvider is a function that provides a context-specific logger.
	LoggerProvider func(ctx context.Context) log.FieldLogger

	// RequestIDProvider is a function that provides a request ID.
	RequestIDProvider func(ctx context.Context) string

	// Collector is a metrics collector.
	Collector MetricsCollector

	// Classifier produces the summary metric label for requests.
	Classifier *RequestSummaryClassifier
}

// New builds an http.Client whose transport chain sets the credential header,
// the User-Agent and X-Request-ID headers and, when enabled in cfg, logs and
// measures every request. The client has no own timeout, deadlines come from
// the request context.
func New(logCfg LogConfig, metricsCfg MetricsConfig, tokenProvider TokenProvider, opts Opts) *http.Client {
	delegate := opts.Delegate
	if delegate == nil {
		delegate = http.DefaultTransport.(*http.Transport).Clone()
	}

	if logCfg.Enabled {
		logOpts := logCfg.TransportOpts()
		logOpts.Logger = opts.Logger
		logOpts.LoggerProvider = opts.LoggerProvider
		delegate = NewLoggingRoundTripperWithOpts(delegate, logOpts)
	}

	if metricsCfg.Enabled {
		delegate = NewMetricsRoundTripperWithOpts(delegate, MetricsRoundTripperOpts{
			Collector:  opts.Collector,
			Classifier: opts.Classifier,
		})
	}

	if tokenProvider != nil {
		delegate = NewAuthRoundTripper(delegate, tokenProvider)
	}

	delegate = NewUserAgentRoundTripper(delegate, opts.UserAgent)

	delegate = NewRequestIDRoundTripperWithOpts(delegate, RequestIDRoundTripperOpts{
		RequestIDProvider: opts.RequestIDProvider,
	})

	return &http.Client{Transport: delegate}
}

// CloneHTTPRequest creates a shallow copy of the request along with a deep copy of the Headers.
func CloneHTTPRequest(req *http.Request) *http.Request {
	r := new(http.Request)
	*r = *req
	r.Header = CloneHTTPHeader(req.Header)
	return r
}

// CloneHTTPHeader creates a deep copy of an http.Header.
func CloneHTTPHeader(in http.Header) http.Header {
	out := make(http.Header, len(in))
	for key, values := range in {
		newValues := make([]string, len(values))
		copy(newValues, values)
		out[key] = newValues
	}
	return out
}
