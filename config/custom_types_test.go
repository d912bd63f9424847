/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestByteSize_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ByteSize
		wantErr bool
	}{
		{"Valid Integer", `1024`, ByteSize(1024), false},
		{"Valid Human-Readable", `"10MB"`, ByteSize(10 * 1024 * 1024), false},
		{"Valid K8s Suffix", `"10Mi"`, ByteSize(10 * 1024 * 1024), false},
		{"Invalid Format", `"invalid"`, 0, true},
		{"Negative Value", `"-1024"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b ByteSize
			err := json.Unmarshal([]byte(tt.input), &b)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, b)
			}
		})
	}
}

func TestByteSize_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ByteSize
		wantErr bool
	}{
		{"Valid Integer", "size: 2048", ByteSize(2048), false},
		{"Valid Human-Readable", "size: 20MB", ByteSize(20 * 1024 * 1024), false},
		{"Invalid Format", "size: invalid", 0, true},
		{"Negative Value", "size: -1024", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg struct{ Size ByteSize }
			err := yaml.Unmarshal([]byte(tt.input), &cfg)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, cfg.Size)
			}
		})
	}
}

func TestByteSize_UnmarshalText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ByteSize
		wantErr bool
	}{
		{"Valid Integer", "4096", ByteSize(4096), false},
		{"Valid Human-Readable", "20MB", ByteSize(20 * 1024 * 1024), false},
		{"Invalid Format", "invalid", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b ByteSize
			err := b.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, b)
			}
		})
	}
}

func TestByteSize_Marshal(t *testing.T) {
	require.Equal(t, "1K", ByteSize(1024).String())
	require.Equal(t, "512B", ByteSize(512).String())

	data, err := json.Marshal(ByteSize(5 * 1024 * 1024))
	require.NoError(t, err)
	require.Equal(t, `"5M"`, string(data))

	yamlData, err := yaml.Marshal(ByteSize(1024))
	require.NoError(t, err)
	require.Equal(t, "1K\n", string(yamlData))
}

func TestTimeDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeDuration
		wantErr bool
	}{
		{"Valid Integer Nanoseconds", `1000000000`, TimeDuration(time.Second), false},
		{"Valid Human-Readable", `"1s"`, TimeDuration(time.Second), false},
		{"Valid Milliseconds", `"500ms"`, TimeDuration(500 * time.Millisecond), false},
		{"Invalid Format", `"invalid"`, 0, true},
		{"Negative Value", `"-1000"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d TimeDuration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, d)
			}
		})
	}
}

func TestTimeDuration_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeDuration
		wantErr bool
	}{
		{"Valid Integer Nanoseconds", "duration: 2000000000", TimeDuration(2 * time.Second), false},
		{"Valid Human-Readable", "duration: 2s", TimeDuration(2 * time.Second), false},
		{"Invalid Format", "duration: invalid", 0, true},
		{"Negative Value", "duration: -2000", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg struct{ Duration TimeDuration }
			err := yaml.Unmarshal([]byte(tt.input), &cfg)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, cfg.Duration)
			}
		})
	}
}

func TestTimeDuration_Marshal(t *testing.T) {
	require.Equal(t, "500ms", TimeDuration(500*time.Millisecond).String())

	data, err := json.Marshal(TimeDuration(time.Second))
	require.NoError(t, err)
	require.Equal(t, `"1s"`, string(data))

	yamlData, err := yaml.Marshal(TimeDuration(5 * time.Minute))
	require.NoError(t, err)
	require.Equal(t, "5m0s\n", string(yamlData))
}
