/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package httpclient

import (
	"fmt"
	"time"

	"github.com/pagerun/pagerun-go/config"
)

// Configuration properties.
const (
	cfgKeyLogEnabled              = "log.enabled"
	cfgKeyLogMode                 = "log.mode"
	cfgKeyLogSlowRequestThreshold = "log.slowRequestThreshold"
	cfgKeyMetricsEnabled          = "metrics.enabled"
)

var _ config.Config = (*LogConfig)(nil)
var _ config.Config = (*MetricsConfig)(nil)

// LogConfig represents configuration options for logging HTTP client requests.
type LogConfig struct {
	// Enabled is a flag that enables logging.
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// Mode of logging: none, all, failed.
	Mode LoggingMode `mapstructure:"mode" yaml:"mode" json:"mode"`

	// SlowRequestThreshold is a threshold for slow requests.
	SlowRequestThreshold time.Duration `mapstructure:"slowRequestThreshold" yaml:"slowRequestThreshold" json:"slowRequestThreshold"`
}

// SetProviderDefaults is part of config interface implementation.
func (c *LogConfig) SetProviderDefaults(dp config.DataProvider) {
	dp.SetDefault(cfgKeyLogMode, string(LoggingModeFailed))
}

// Set is part of config interface implementation.
func (c *LogConfig) Set(dp config.DataProvider) (err error) {
	if c.Enabled, err = dp.GetBool(cfgKeyLogEnabled); err != nil {
		return err
	}
	mode, err := dp.GetString(cfgKeyLogMode)
	if err != nil {
		return err
	}
	c.Mode = LoggingMode(mode)
	if !c.Mode.IsValid() {
		return dp.WrapKeyErr(cfgKeyLogMode, fmt.Errorf("invalid logging mode %q", mode))
	}
	if c.SlowRequestThreshold, err = dp.GetDuration(cfgKeyLogSlowRequestThreshold); err != nil {
		return err
	}
	if c.SlowRequestThreshold < 0 {
		return dp.WrapKeyErr(cfgKeyLogSlowRequestThreshold, fmt.Errorf("must be positive"))
	}
	return nil
}

// TransportOpts returns the logging round tripper options matching the config.
func (c *LogConfig) TransportOpts() LoggingRoundTripperOpts {
	return LoggingRoundTripperOpts{
		Mode:                 c.Mode,
		SlowRequestThreshold: c.SlowRequestThreshold,
	}
}

// MetricsConfig represents configuration options for collecting HTTP client request metrics.
type MetricsConfig struct {
	// Enabled is a flag that enables metrics collection.
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
}

// SetProviderDefaults is part of config interface implementation.
func (c *MetricsConfig) SetProviderDefaults(_ config.DataProvider) {}

// Set is part of config interface implementation.
func (c *MetricsConfig) Set(dp config.DataProvider) (err error) {
	c.Enabled, err = dp.GetBool(cfgKeyMetricsEnabled)
	return err
}
