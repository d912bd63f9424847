/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/pagerun/pagerun-go/log"
)

// LoggingMode represents a mode of logging.
type LoggingMode string

// Logging modes.
const (
	LoggingModeNone   LoggingMode = "none"
	LoggingModeAll    LoggingMode = "all"
	LoggingModeFailed LoggingMode = "failed"
)

// IsValid checks if the logging mode is valid.
func (lm LoggingMode) IsValid() bool {
	switch lm {
	case LoggingModeNone, LoggingModeAll, LoggingModeFailed:
		return true
	}
	return false
}

// LoggingRoundTripper implements http.RoundTripper for logging requests.
type LoggingRoundTripper struct {
	// Delegate is the next RoundTripper in the chain.
	Delegate http.RoundTripper

	// Opts are the options for the logging round tripper.
	Opts LoggingRoundTripperOpts
}

// LoggingRoundTripperOpts represents an options for LoggingRoundTripper.
type LoggingRoundTripperOpts struct {
	// Logger is used when LoggerProvider is nil or returns nil.
	Logger log.FieldLogger

	// LoggerProvider is a function that provides a context-specific logger.
	LoggerProvider func(ctx context.Context) log.FieldLogger

	// Mode of logging: none, all, failed. An empty mode behaves like "all".
	Mode LoggingMode

	// SlowRequestThreshold suppresses records for requests that finish faster.
	// Zero logs every request the mode allows.
	SlowRequestThreshold time.Duration
}

// NewLoggingRoundTripper creates an HTTP transport that logs requests.
func NewLoggingRoundTripper(delegate http.RoundTripper, logger log.FieldLogger) http.RoundTripper {
	return NewLoggingRoundTripperWithOpts(delegate, LoggingRoundTripperOpts{Logger: logger})
}

// NewLoggingRoundTripperWithOpts creates an HTTP transport that logs requests with options.
func NewLoggingRoundTripperWithOpts(delegate http.RoundTripper, opts LoggingRoundTripperOpts) http.RoundTripper {
	return &LoggingRoundTripper{Delegate: delegate, Opts: opts}
}

func (rt *LoggingRoundTripper) getLogger(ctx context.Context) log.FieldLogger {
	if rt.Opts.LoggerProvider != nil {
		if logger := rt.Opts.LoggerProvider(ctx); logger != nil {
			return logger
		}
	}
	return rt.Opts.Logger
}

// RoundTrip adds logging capabilities to the HTTP transport.
func (rt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.Opts.Mode == LoggingModeNone {
		return rt.Delegate.RoundTrip(req)
	}

	ctx := req.Context()
	logger := rt.getLogger(ctx)
	if logger == nil {
		return rt.Delegate.RoundTrip(req)
	}

	start := time.Now()
	resp, err := rt.Delegate.RoundTrip(req)
	elapsed := time.Since(start)
	if elapsed < rt.Opts.SlowRequestThreshold {
		return resp, err
	}

	fields := []log.Field{
		log.String("method", req.Method),
		log.String("url", req.URL.String()),
		log.DurationIn(elapsed, time.Millisecond),
	}
	if requestType := GetRequestTypeFromContext(ctx); requestType != "" {
		fields = append(fields, log.String("request_type", requestType))
	}
	if requestID := GetRequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, log.String("request_id", requestID))
	}

	if err != nil {
		logger.Error("client http request failed", append(fields, log.Error(err))...)
		return resp, err
	}

	fields = append(fields, log.Int("status_code", resp.StatusCode))
	if rt.Opts.Mode == LoggingModeFailed && resp.StatusCode < http.StatusBadRequest {
		return resp, err
	}
	logger.Info("client http request done", fields...)
	return resp, err
}
