/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package pagerun

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pagerun/pagerun-go/config"
	"github.com/pagerun/pagerun-go/httpclient"
	"github.com/pagerun/pagerun-go/internal/ratelimit"
)

// Defaults for Config.
const (
	DefaultBaseURL        = "https://api.pagerun.io/v1/"
	DefaultTimeout        = 15 * time.Second
	DefaultRateLimit      = 10 // requests per trailing second
	DefaultMaxRetries     = 3
	DefaultInitialBackoff = 500 * time.Millisecond
)

// Configuration properties.
const (
	cfgKeyBaseURL             = "baseUrl"
	cfgKeyAPIKey              = "apiKey"
	cfgKeyTimeout             = "timeout"
	cfgKeyRateLimit           = "rateLimit"
	cfgKeyRateLimitAlg        = "rateLimitAlg"
	cfgKeyRateLimitBurst      = "rateLimitBurst"
	cfgKeyMaxRetries          = "maxRetries"
	cfgKeyInitialBackoff      = "initialBackoff"
	cfgKeyIgnoreRetryAfter    = "ignoreRetryAfter"
	cfgKeyMaxResponseBodySize = "maxResponseBodySize"
)

var availableRateLimitAlgs = []string{
	ratelimit.AlgSlidingWindow, ratelimit.AlgTokenBucket, ratelimit.AlgLeakyBucket,
}

var _ config.Config = (*Config)(nil)
var _ config.KeyPrefixProvider = (*Config)(nil)

// Config holds the client configuration. Immutable after the client is
// constructed from it.
type Config struct {
	// BaseURL is the API origin all endpoint paths are joined onto.
	// Trailing separators are normalized to exactly one.
	BaseURL string `mapstructure:"baseUrl" yaml:"baseUrl" json:"baseUrl"`

	// APIKey is the credential token sent in the Authorization header as is. Required.
	APIKey string `mapstructure:"apiKey" yaml:"apiKey" json:"apiKey"`

	// Timeout bounds every single attempt, retries not included.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`

	// RateLimit is the ceiling of dispatches within any trailing second.
	RateLimit int `mapstructure:"rateLimit" yaml:"rateLimit" json:"rateLimit"`

	// RateLimitAlg selects the limiting algorithm: sliding_window (default,
	// exact), token_bucket or leaky_bucket.
	RateLimitAlg string `mapstructure:"rateLimitAlg" yaml:"rateLimitAlg" json:"rateLimitAlg"`

	// RateLimitBurst only affects the token bucket and leaky bucket algorithms.
	RateLimitBurst int `mapstructure:"rateLimitBurst" yaml:"rateLimitBurst" json:"rateLimitBurst"`

	// MaxRetries is how many times a transiently failed call is retried
	// before the error surfaces. 0 disables retries.
	MaxRetries int `mapstructure:"maxRetries" yaml:"maxRetries" json:"maxRetries"`

	// InitialBackoff is the pre-jitter delay before the first retry,
	// doubling on every further one.
	InitialBackoff time.Duration `mapstructure:"initialBackoff" yaml:"initialBackoff" json:"initialBackoff"`

	// IgnoreRetryAfter makes the client compute every retry delay itself even
	// when the response carries a Retry-After header.
	IgnoreRetryAfter bool `mapstructure:"ignoreRetryAfter" yaml:"ignoreRetryAfter" json:"ignoreRetryAfter"`

	// MaxResponseBodySize caps how much of a response body is read. 0 means no cap.
	MaxResponseBodySize config.ByteSize `mapstructure:"maxResponseBodySize" yaml:"maxResponseBodySize" json:"maxResponseBodySize"`

	// Log configures logging of the underlying HTTP requests.
	Log httpclient.LogConfig `mapstructure:"log" yaml:"log" json:"log"`

	// Metrics configures collecting Prometheus metrics of the underlying HTTP requests.
	Metrics httpclient.MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// NewConfig creates a new Config with defaults for everything but the credential.
func NewConfig(apiKey string) *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		APIKey:         apiKey,
		Timeout:        DefaultTimeout,
		RateLimit:      DefaultRateLimit,
		RateLimitAlg:   ratelimit.AlgSlidingWindow,
		MaxRetries:     DefaultMaxRetries,
		InitialBackoff: DefaultInitialBackoff,
		Log:            httpclient.LogConfig{Mode: httpclient.LoggingModeFailed},
	}
}

// KeyPrefix is part of config interface implementation.
func (c *Config) KeyPrefix() string {
	return "pagerun"
}

// SetProviderDefaults is part of config interface implementation.
func (c *Config) SetProviderDefaults(dp config.DataProvider) {
	dp.SetDefault(cfgKeyBaseURL, DefaultBaseURL)
	dp.SetDefault(cfgKeyTimeout, DefaultTimeout)
	dp.SetDefault(cfgKeyRateLimit, DefaultRateLimit)
	dp.SetDefault(cfgKeyRateLimitAlg, ratelimit.AlgSlidingWindow)
	dp.SetDefault(cfgKeyMaxRetries, DefaultMaxRetries)
	dp.SetDefault(cfgKeyInitialBackoff, DefaultInitialBackoff)
	c.Log.SetProviderDefaults(dp)
	c.Metrics.SetProviderDefaults(dp)
}

// Set is part of config interface implementation.
func (c *Config) Set(dp config.DataProvider) (err error) {
	if c.BaseURL, err = dp.GetString(cfgKeyBaseURL); err != nil {
		return err
	}
	if c.APIKey, err = dp.GetString(cfgKeyAPIKey); err != nil {
		return err
	}
	if c.Timeout, err = dp.GetDuration(cfgKeyTimeout); err != nil {
		return err
	}
	if c.RateLimit, err = dp.GetInt(cfgKeyRateLimit); err != nil {
		return err
	}
	if c.RateLimitAlg, err = dp.GetStringFromSet(cfgKeyRateLimitAlg, availableRateLimitAlgs, false); err != nil {
		return err
	}
	if c.RateLimitBurst, err = dp.GetInt(cfgKeyRateLimitBurst); err != nil {
		return err
	}
	if c.MaxRetries, err = dp.GetInt(cfgKeyMaxRetries); err != nil {
		return err
	}
	if c.InitialBackoff, err = dp.GetDuration(cfgKeyInitialBackoff); err != nil {
		return err
	}
	if c.IgnoreRetryAfter, err = dp.GetBool(cfgKeyIgnoreRetryAfter); err != nil {
		return err
	}
	if c.MaxResponseBodySize, err = dp.GetByteSize(cfgKeyMaxResponseBodySize); err != nil {
		return err
	}
	if err = c.Log.Set(dp); err != nil {
		return err
	}
	if err = c.Metrics.Set(dp); err != nil {
		return err
	}
	return c.Validate()
}

// Validate checks the config invariants.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%s is required", cfgKeyAPIKey)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("%s must not be empty", cfgKeyBaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%s must be positive", cfgKeyTimeout)
	}
	if c.RateLimit < 1 {
		return fmt.Errorf("%s must be >= 1", cfgKeyRateLimit)
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("%s must not be negative", cfgKeyRateLimitBurst)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%s must not be negative", cfgKeyMaxRetries)
	}
	if c.InitialBackoff < 0 {
		return fmt.Errorf("%s must not be negative", cfgKeyInitialBackoff)
	}
	if alg := c.RateLimitAlg; alg != "" && !isAvailableRateLimitAlg(alg) {
		return fmt.Errorf("%s must be one of %v", cfgKeyRateLimitAlg, availableRateLimitAlgs)
	}
	if mode := c.Log.Mode; mode != "" && !mode.IsValid() {
		return fmt.Errorf("log.mode %q is invalid", mode)
	}
	return nil
}

// normalizedBaseURL returns BaseURL with trailing separators collapsed to exactly one.
func (c *Config) normalizedBaseURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/"
}

func isAvailableRateLimitAlg(alg string) bool {
	for _, available := range availableRateLimitAlgs {
		if alg == available {
			return true
		}
	}
	return false
}

// LoadConfigFromFile reads the client configuration from a YAML or JSON file.
// Values can be overridden with PAGERUN_* environment variables. Keys live
// under the "pagerun" section.
func LoadConfigFromFile(path string, dataType config.DataType) (*Config, error) {
	cfg := &Config{}
	if err := config.NewDefaultLoader("PAGERUN").LoadFromFile(path, dataType, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFromReader reads the client configuration the same way
// LoadConfigFromFile does, from a reader.
func LoadConfigFromReader(reader io.Reader, dataType config.DataType) (*Config, error) {
	cfg := &Config{}
	if err := config.NewDefaultLoader("PAGERUN").LoadFromReader(reader, dataType, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
