/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

// Package pagerun is a client SDK for the Pagerun tracking platform admin API.
//
// Client is the resilient dispatcher at the core: every call is paced by a
// client-side rate limiter, bounded by a per-attempt timeout and transparently
// retried on transient failures (HTTP 429, 5xx and transport errors) with
// exponentially growing jittered backoff. Typed services (Pages, Groups,
// Stats, ...) forward into the dispatcher with fixed path templates.
package pagerun

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/xid"

	"github.com/pagerun/pagerun-go/httpclient"
	"github.com/pagerun/pagerun-go/internal/ratelimit"
	"github.com/pagerun/pagerun-go/log"
	"github.com/pagerun/pagerun-go/retry"
)

const contentTypeAppJSON = "application/json"

// DefaultSummaryRules map Pagerun endpoint paths to the summary label of the
// request duration metric. Order matters, the first match wins.
var DefaultSummaryRules = []httpclient.SummaryRule{
	{Pattern: "user", Summary: "user"},
	{Pattern: "groups", Summary: "groups"},
	{Pattern: "groups/*", Summary: "groups/{id}"},
	{Pattern: "pages", Summary: "pages"},
	{Pattern: "pages/*/clone", Summary: "pages/{id}/clone"},
	{Pattern: "pages/*/move", Summary: "pages/{id}/move"},
	{Pattern: "pages/*/start", Summary: "pages/{id}/start"},
	{Pattern: "pages/*/stop", Summary: "pages/{id}/stop"},
	{Pattern: "pages/*", Summary: "pages/{id}"},
	{Pattern: "categories", Summary: "categories"},
	{Pattern: "categories/*", Summary: "categories/{id}"},
	{Pattern: "countries", Summary: "countries"},
	{Pattern: "languages", Summary: "languages"},
	{Pattern: "traffic_sources", Summary: "traffic_sources"},
	{Pattern: "traffic_sources/*", Summary: "traffic_sources/{id}"},
	{Pattern: "stats", Summary: "stats"},
}

// ClientOpts provides options for NewClientWithOpts.
type ClientOpts struct {
	// Logger receives request and retry records. Disabled logger by default.
	Logger log.FieldLogger

	// MetricsCollector receives request durations and retry counts when
	// cfg.Metrics.Enabled is true. Nil disables collection.
	MetricsCollector httpclient.MetricsCollector

	// Transport is the RoundTripper the decorator chain ends at.
	Transport http.RoundTripper

	// Limiter overrides the rate limiter built from the config.
	Limiter ratelimit.Limiter

	// RetryPolicy overrides the backoff policy built from the config.
	RetryPolicy retry.Policy
}

// Client is a Pagerun API client. One Client owns one rate limiter, its
// trailing-window state is not shared with other instances. Safe for
// concurrent use.
type Client struct {
	baseURL             string
	timeout             time.Duration
	maxRetries          int
	ignoreRetryAfter    bool
	maxResponseBodySize int64

	httpClient  *http.Client
	limiter     ratelimit.Limiter
	retryPolicy retry.Policy
	clock       ratelimit.Clock
	logger      log.FieldLogger
	collector   httpclient.MetricsCollector
	classifier  *httpclient.RequestSummaryClassifier

	Users          *UsersService
	Groups         *GroupsService
	Pages          *PagesService
	Categories     *CategoriesService
	Countries      *CountriesService
	Languages      *LanguagesService
	TrafficSources *TrafficSourcesService
	Stats          *StatsService
}

// NewClient creates a new Client for the passed config.
func NewClient(cfg *Config) (*Client, error) {
	return NewClientWithOpts(cfg, ClientOpts{})
}

// MustClient creates a new Client for the passed config and panics if any error occurs.
func MustClient(cfg *Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// NewClientWithOpts creates a new Client for the passed config with options.
func NewClientWithOpts(cfg *Config, opts ClientOpts) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewDisabledLogger()
	}

	limiter := opts.Limiter
	if limiter == nil {
		var err error
		limiter, err = ratelimit.New(cfg.RateLimitAlg, ratelimit.PerSecond(cfg.RateLimit), cfg.RateLimitBurst)
		if err != nil {
			return nil, fmt.Errorf("create rate limiter: %w", err)
		}
	}

	retryPolicy := opts.RetryPolicy
	if retryPolicy == nil {
		retryPolicy = retry.NewExponentialBackoffPolicy(cfg.InitialBackoff, 0)
	}

	var collector httpclient.MetricsCollector
	if cfg.Metrics.Enabled {
		collector = opts.MetricsCollector
	}

	baseURL := cfg.normalizedBaseURL()
	parsedBase, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	// Summaries are matched against bare endpoint paths, the base URL's own path
	// (e.g. "/v1/") must not leak into them.
	classifier := httpclient.NewRequestSummaryClassifierWithBasePath(DefaultSummaryRules, parsedBase.Path)

	c := &Client{
		baseURL:             baseURL,
		timeout:             cfg.Timeout,
		maxRetries:          cfg.MaxRetries,
		ignoreRetryAfter:    cfg.IgnoreRetryAfter,
		maxResponseBodySize: int64(cfg.MaxResponseBodySize),
		limiter:             limiter,
		retryPolicy:         retryPolicy,
		clock:               ratelimit.SystemClock{},
		logger:              logger,
		collector:           collector,
		classifier:          classifier,
		httpClient: httpclient.New(cfg.Log, cfg.Metrics, httpclient.StaticTokenProvider(cfg.APIKey), httpclient.Opts{
			Delegate:   opts.Transport,
			Logger:     logger,
			Collector:  collector,
			Classifier: classifier,
		}),
	}

	c.Users = &UsersService{c}
	c.Groups = &GroupsService{c}
	c.Pages = &PagesService{c}
	c.Categories = &CategoriesService{c}
	c.Countries = &CountriesService{c}
	c.Languages = &LanguagesService{c}
	c.TrafficSources = &TrafficSourcesService{c}
	c.Stats = &StatsService{c}
	return c, nil
}

// attemptResult is the classified outcome of one transport call.
// Exactly one of payload, apiErr, transportErr is meaningful:
// apiErr for a non-2xx status, transportErr for a network-level failure,
// payload otherwise. retryAfter is -1 unless the response carried a
// parseable Retry-After header.
type attemptResult struct {
	payload      interface{}
	apiErr       *APIError
	transportErr error
	retryAfter   time.Duration
}

// Do performs one logical API call to completion: rate-limit gate, dispatch,
// classification and retries all happen inside. The returned payload is the
// JSON-decoded response body, or the raw body text when it isn't valid JSON.
//
// Transient failures (HTTP 429, 5xx, transport errors) are retried up to the
// configured number of times with exponentially growing jittered delays;
// other non-2xx statuses surface immediately as *APIError. Retries reuse the
// marshaled body, so repeating a non-idempotent call is the server's problem
// to deduplicate, not ours.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (interface{}, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete:
	default:
		return nil, fmt.Errorf("unsupported HTTP method %q", method)
	}

	var bodyBytes []byte
	if body != nil {
		marshaled, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyBytes = marshaled
	}

	callURL := c.baseURL + strings.TrimLeft(path, "/")
	parsedURL, err := url.Parse(callURL)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL %q: %w", callURL, err)
	}

	requestID := httpclient.GetRequestIDFromContext(ctx)
	if requestID == "" {
		requestID = xid.New().String()
		ctx = httpclient.NewContextWithRequestID(ctx, requestID)
	}
	summary := c.classifier.Classify(&http.Request{Method: method, URL: parsedURL})

	bo := c.retryPolicy.NewBackOff()
	for attempt := 1; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		res := c.doAttempt(ctx, method, callURL, bodyBytes, requestID)
		if res.apiErr == nil && res.transportErr == nil {
			return res.payload, nil
		}
		if res.apiErr != nil && !isRetryableStatusCode(res.apiErr.StatusCode) {
			return nil, res.apiErr
		}

		delay := bo.NextBackOff()
		if attempt > c.maxRetries || delay == backoff.Stop {
			if res.apiErr != nil {
				return nil, res.apiErr
			}
			return nil, &ConnectionError{Inner: res.transportErr}
		}
		if res.retryAfter >= 0 && !c.ignoreRetryAfter {
			delay = res.retryAfter
		}
		if delay < 0 {
			delay = 0
		}

		c.logRetry(res, requestID, attempt, delay)
		if c.collector != nil {
			c.collector.RequestRetried(httpclient.GetRequestTypeFromContext(ctx), summary)
		}
		if err := c.clock.Sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func (c *Client) doAttempt(ctx context.Context, method, callURL string, bodyBytes []byte, requestID string) attemptResult {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, callURL, reqBody)
	if err != nil {
		return attemptResult{transportErr: err, retryAfter: -1}
	}
	req.Header.Set("Accept", contentTypeAppJSON)
	req.Header.Set("Content-Type", contentTypeAppJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return attemptResult{transportErr: err, retryAfter: -1}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Error("failed to close response body", log.Error(closeErr))
		}
	}()

	var bodyReader io.Reader = resp.Body
	if c.maxResponseBodySize > 0 {
		bodyReader = io.LimitReader(resp.Body, c.maxResponseBodySize)
	}
	rawBody, err := io.ReadAll(bodyReader)
	if err != nil {
		return attemptResult{transportErr: fmt.Errorf("read response body: %w", err), retryAfter: -1}
	}
	payload := parseResponseBody(rawBody)

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return attemptResult{payload: payload, retryAfter: -1}
	}

	res := attemptResult{
		apiErr: &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessageFromPayload(payload, string(rawBody)),
			RequestID:  requestID,
		},
		retryAfter: -1,
	}
	if retryAfter, ok := parseRetryAfterFromResponse(resp); ok {
		res.retryAfter = retryAfter
	}
	return res
}

// parseResponseBody decodes the body as JSON, falling back to the raw text.
// A body that isn't valid JSON is a payload, not an error.
func parseResponseBody(rawBody []byte) interface{} {
	if len(rawBody) == 0 {
		return nil
	}
	var decoded interface{}
	if err := json.Unmarshal(rawBody, &decoded); err != nil {
		return string(rawBody)
	}
	return decoded
}

func (c *Client) logRetry(res attemptResult, requestID string, attempt int, delay time.Duration) {
	fields := []log.Field{
		log.String("request_id", requestID),
		log.Int("attempt", attempt),
		log.DurationIn(delay, time.Millisecond),
	}
	if res.apiErr != nil {
		fields = append(fields, log.Int("status_code", res.apiErr.StatusCode))
	} else {
		fields = append(fields, log.Error(res.transportErr))
	}
	c.logger.Warn("retrying API request", fields...)
}

func parseRetryAfterFromResponse(resp *http.Response) (retryAfter time.Duration, ok bool) {
	retryAfterVal := resp.Header.Get("Retry-After")
	if retryAfterVal == "" {
		return 0, false
	}

	parsedInt, parseIntErr := strconv.Atoi(retryAfterVal)
	if parseIntErr != nil {
		parsedTime, parsedTimeErr := time.Parse(time.RFC1123, retryAfterVal)
		if parsedTimeErr != nil {
			return 0, false
		}
		return time.Until(parsedTime), true
	}
	if parsedInt < 0 {
		return 0, false
	}
	return time.Duration(parsedInt) * time.Second, true
}

// call is the funnel all typed services go through: one endpoint family name
// for log/metric correlation, a path with optional query, and a result the
// generic payload is decoded into when non-nil.
func (c *Client) call(ctx context.Context, requestType, method, path string, query url.Values, body, result interface{}) error {
	ctx = httpclient.NewContextWithRequestType(ctx, requestType)
	if len(query) != 0 {
		path += "?" + query.Encode()
	}
	payload, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	return decodeResult(payload, result)
}
