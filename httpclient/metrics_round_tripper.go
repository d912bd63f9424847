/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package httpclient

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vasayxtx/go-glob"

	"github.com/pagerun/pagerun-go/internal/libinfo"
)

// MetricsCollector is an interface for collecting metrics for client requests.
type MetricsCollector interface {
	// RequestDuration observes the duration of the request and the status code.
	RequestDuration(requestType, remoteAddress, summary, status string, startTime time.Time)

	// RequestRetried counts one retried attempt of a logical call.
	RequestRetried(requestType, summary string)
}

// SummaryRule maps request paths matching a glob pattern to a fixed summary,
// so endpoint families with path parameters (e.g. "pages/*/clone") aggregate
// under one metric label instead of one label per resource ID.
type SummaryRule struct {
	Pattern string
	Summary string
}

type compiledSummaryRule struct {
	match   func(s string) bool
	summary string
}

// RequestSummaryClassifier produces non-parameterized summaries for requests.
type RequestSummaryClassifier struct {
	basePath string
	rules    []compiledSummaryRule
}

// NewRequestSummaryClassifier compiles the passed rules. Rules are tried in order,
// the first matching pattern wins. Patterns match the request path with leading
// and trailing slashes stripped.
func NewRequestSummaryClassifier(rules []SummaryRule) *RequestSummaryClassifier {
	return NewRequestSummaryClassifierWithBasePath(rules, "")
}

// NewRequestSummaryClassifierWithBasePath compiles the passed rules for an API
// served under a path prefix (e.g. "/v1/"): the prefix is stripped from request
// paths before the rules are matched, so patterns keep matching bare endpoint
// paths whatever origin the client is pointed at.
func NewRequestSummaryClassifierWithBasePath(rules []SummaryRule, basePath string) *RequestSummaryClassifier {
	compiled := make([]compiledSummaryRule, 0, len(rules))
	for _, rule := range rules {
		compiled = append(compiled, compiledSummaryRule{glob.Compile(rule.Pattern), rule.Summary})
	}
	return &RequestSummaryClassifier{basePath: strings.Trim(basePath, "/"), rules: compiled}
}

// Classify returns "<METHOD> <summary>" for the first rule matching the request path,
// or "<METHOD> unclassified" when no rule matches.
func (c *RequestSummaryClassifier) Classify(r *http.Request) string {
	path := strings.Trim(r.URL.Path, "/")
	if c.basePath != "" {
		switch {
		case path == c.basePath:
			path = ""
		case strings.HasPrefix(path, c.basePath+"/"):
			path = path[len(c.basePath)+1:]
		}
	}
	for i := range c.rules {
		if c.rules[i].match(path) {
			return r.Method + " " + c.rules[i].summary
		}
	}
	return r.Method + " unclassified"
}

// PrometheusMetricsCollector is a Prometheus metrics collector.
type PrometheusMetricsCollector struct {
	// Durations is a histogram of the http client requests durations.
	Durations *prometheus.HistogramVec

	// Retries is a counter of retried attempts.
	Retries *prometheus.CounterVec
}

// NewPrometheusMetricsCollector creates a new Prometheus metrics collector.
func NewPrometheusMetricsCollector(namespace string) *PrometheusMetricsCollector {
	constLabels := libinfo.AddPrometheusLibVersionLabel(prometheus.Labels{})
	return &PrometheusMetricsCollector{
		Durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_client_request_duration_seconds",
			Help:        "A histogram of the http client requests durations.",
			ConstLabels: constLabels,
			Buckets:     []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 150, 300, 600},
		}, []string{"type", "remote_address", "summary", "status"}),
		Retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_client_request_retries_total",
			Help:        "A counter of the retried http client request attempts.",
			ConstLabels: constLabels,
		}, []string{"type", "summary"}),
	}
}

// MustRegister registers the Prometheus metrics.
func (p *PrometheusMetricsCollector) MustRegister() {
	prometheus.MustRegister(p.Durations, p.Retries)
}

// Unregister the Prometheus metrics.
func (p *PrometheusMetricsCollector) Unregister() {
	prometheus.Unregister(p.Durations)
	prometheus.Unregister(p.Retries)
}

// RequestDuration observes the duration of the request and the status code.
func (p *PrometheusMetricsCollector) RequestDuration(requestType, host, summary, status string, start time.Time) {
	p.Durations.WithLabelValues(requestType, host, summary, status).Observe(time.Since(start).Seconds())
}

// RequestRetried counts one retried attempt of a logical call.
func (p *PrometheusMetricsCollector) RequestRetried(requestType, summary string) {
	p.Retries.WithLabelValues(requestType, summary).Inc()
}

// MetricsRoundTripper is an HTTP transport that measures requests done.
type MetricsRoundTripper struct {
	// Delegate is the next RoundTripper in the chain.
	Delegate http.RoundTripper

	// Collector is a metrics collector.
	Collector MetricsCollector

	// Classifier produces the summary label. Nil yields "<METHOD> unclassified".
	Classifier *RequestSummaryClassifier
}

// MetricsRoundTripperOpts is options for MetricsRoundTripper.
type MetricsRoundTripperOpts struct {
	// Collector is a metrics collector.
	Collector MetricsCollector

	// Classifier produces the summary label for requests.
	Classifier *RequestSummaryClassifier
}

// NewMetricsRoundTripper creates an HTTP transport that measures requests done.
func NewMetricsRoundTripper(delegate http.RoundTripper, collector MetricsCollector) http.RoundTripper {
	return NewMetricsRoundTripperWithOpts(delegate, MetricsRoundTripperOpts{Collector: collector})
}

// NewMetricsRoundTripperWithOpts creates an HTTP transport that measures requests done with options.
func NewMetricsRoundTripperWithOpts(delegate http.RoundTripper, opts MetricsRoundTripperOpts) http.RoundTripper {
	return &MetricsRoundTripper{Delegate: delegate, Collector: opts.Collector, Classifier: opts.Classifier}
}

// RoundTrip measures external requests done.
func (rt *MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.Collector == nil {
		return rt.Delegate.RoundTrip(req)
	}

	requestType := GetRequestTypeFromContext(req.Context())
	status := "0"
	start := time.Now()

	resp, err := rt.Delegate.RoundTrip(req)
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	rt.Collector.RequestDuration(requestType, req.Host, rt.requestSummary(req), status, start)
	return resp, err
}

func (rt *MetricsRoundTripper) requestSummary(req *http.Request) string {
	if rt.Classifier != nil {
		return rt.Classifier.Classify(req)
	}
	return req.Method + " unclassified"
}
