/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package pagerun

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pagerun/pagerun-go/config"
	"github.com/pagerun/pagerun-go/httpclient"
	"github.com/pagerun/pagerun-go/internal/ratelimit"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig("secret-key")
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, "secret-key", cfg.APIKey)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, DefaultRateLimit, cfg.RateLimit)
	require.Equal(t, ratelimit.AlgSlidingWindow, cfg.RateLimitAlg)
	require.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	require.Equal(t, DefaultInitialBackoff, cfg.InitialBackoff)
	require.False(t, cfg.IgnoreRetryAfter)
	require.Equal(t, httpclient.LoggingModeFailed, cfg.Log.Mode)
}

func TestLoadConfigFromReader(t *testing.T) {
	yamlData := `
pagerun:
  baseUrl: https://staging.pagerun.io/v1
  apiKey: staging-key
  timeout: 3s
  rateLimit: 25
  rateLimitAlg: token_bucket
  rateLimitBurst: 5
  maxRetries: 7
  initialBackoff: 250ms
  ignoreRetryAfter: true
  maxResponseBodySize: 1M
  log:
    enabled: true
    mode: all
    slowRequestThreshold: 2s
  metrics:
    enabled: true
`
	cfg, err := LoadConfigFromReader(bytes.NewBufferString(yamlData), config.DataTypeYAML)
	require.NoError(t, err)
	require.Equal(t, "https://staging.pagerun.io/v1", cfg.BaseURL)
	require.Equal(t, "staging-key", cfg.APIKey)
	require.Equal(t, 3*time.Second, cfg.Timeout)
	require.Equal(t, 25, cfg.RateLimit)
	require.Equal(t, ratelimit.AlgTokenBucket, cfg.RateLimitAlg)
	require.Equal(t, 5, cfg.RateLimitBurst)
	require.Equal(t, 7, cfg.MaxRetries)
	require.Equal(t, 250*time.Millisecond, cfg.InitialBackoff)
	require.True(t, cfg.IgnoreRetryAfter)
	require.Equal(t, config.ByteSize(1024*1024), cfg.MaxResponseBodySize)
	require.True(t, cfg.Log.Enabled)
	require.Equal(t, httpclient.LoggingModeAll, cfg.Log.Mode)
	require.Equal(t, 2*time.Second, cfg.Log.SlowRequestThreshold)
	require.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfigFromReaderDefaults(t *testing.T) {
	yamlData := `
pagerun:
  apiKey: only-the-key
`
	cfg, err := LoadConfigFromReader(bytes.NewBufferString(yamlData), config.DataTypeYAML)
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, DefaultRateLimit, cfg.RateLimit)
	require.Equal(t, ratelimit.AlgSlidingWindow, cfg.RateLimitAlg)
	require.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	require.Equal(t, DefaultInitialBackoff, cfg.InitialBackoff)
}

func TestLoadConfigFromReaderEnvVarOverride(t *testing.T) {
	t.Setenv("PAGERUN_PAGERUN_APIKEY", "key-from-env")
	yamlData := `
pagerun:
  apiKey: key-from-file
`
	cfg, err := LoadConfigFromReader(bytes.NewBufferString(yamlData), config.DataTypeYAML)
	require.NoError(t, err)
	require.Equal(t, "key-from-env", cfg.APIKey)
}

func TestLoadConfigFromReaderError(t *testing.T) {
	tests := []struct {
		name     string
		yamlData string
		errMsg   string
	}{
		{
			name:     "missing api key",
			yamlData: `pagerun: {}`,
			errMsg:   "apiKey is required",
		},
		{
			name: "unknown rate limit alg",
			yamlData: `
pagerun:
  apiKey: k
  rateLimitAlg: fixed_window
`,
			errMsg: `rateLimitAlg: unknown value "fixed_window", should be one of [sliding_window token_bucket leaky_bucket]`,
		},
		{
			name: "unknown log mode",
			yamlData: `
pagerun:
  apiKey: k
  log:
    mode: verbose
`,
			errMsg: `log.mode: invalid logging mode "verbose"`,
		},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFromReader(bytes.NewBufferString(tt.yamlData), config.DataTypeYAML)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *Config)
		errMsg string
	}{
		{
			name:   "valid",
			modify: func(cfg *Config) {},
		},
		{
			name:   "empty api key",
			modify: func(cfg *Config) { cfg.APIKey = "" },
			errMsg: "apiKey is required",
		},
		{
			name:   "empty base url",
			modify: func(cfg *Config) { cfg.BaseURL = "" },
			errMsg: "baseUrl must not be empty",
		},
		{
			name:   "non-positive timeout",
			modify: func(cfg *Config) { cfg.Timeout = 0 },
			errMsg: "timeout must be positive",
		},
		{
			name:   "zero rate limit",
			modify: func(cfg *Config) { cfg.RateLimit = 0 },
			errMsg: "rateLimit must be >= 1",
		},
		{
			name:   "negative burst",
			modify: func(cfg *Config) { cfg.RateLimitBurst = -1 },
			errMsg: "rateLimitBurst must not be negative",
		},
		{
			name:   "negative max retries",
			modify: func(cfg *Config) { cfg.MaxRetries = -1 },
			errMsg: "maxRetries must not be negative",
		},
		{
			name:   "negative initial backoff",
			modify: func(cfg *Config) { cfg.InitialBackoff = -time.Second },
			errMsg: "initialBackoff must not be negative",
		},
		{
			name:   "unknown rate limit alg",
			modify: func(cfg *Config) { cfg.RateLimitAlg = "fixed_window" },
			errMsg: "rateLimitAlg must be one of",
		},
		{
			name:   "invalid log mode",
			modify: func(cfg *Config) { cfg.Log.Mode = "verbose" },
			errMsg: `log.mode "verbose" is invalid`,
		},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("k")
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestConfigNormalizedBaseURL(t *testing.T) {
	tests := []struct {
		baseURL string
		want    string
	}{
		{baseURL: "https://api.pagerun.io/v1", want: "https://api.pagerun.io/v1/"},
		{baseURL: "https://api.pagerun.io/v1/", want: "https://api.pagerun.io/v1/"},
		{baseURL: "https://api.pagerun.io/v1///", want: "https://api.pagerun.io/v1/"},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.baseURL, func(t *testing.T) {
			cfg := NewConfig("k")
			cfg.BaseURL = tt.baseURL
			require.Equal(t, tt.want, cfg.normalizedBaseURL())
		})
	}
}
