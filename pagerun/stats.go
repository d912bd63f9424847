/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package pagerun

import (
	"context"
	"net/http"
)

// StatsRequest describes the report to build: the date range, how to group
// rows, which metrics to include and optional filters on dimensions.
type StatsRequest struct {
	From    string                 `json:"from"`
	To      string                 `json:"to"`
	GroupBy []string               `json:"group_by,omitempty"`
	Metrics []string               `json:"metrics,omitempty"`
	Filters map[string]interface{} `json:"filters,omitempty"`
}

// StatsReport is the built report. Row keys depend on the requested
// grouping and metrics, so rows stay untyped.
type StatsReport struct {
	Rows []map[string]interface{} `json:"rows"`
}

// StatsService exposes the reporting endpoint.
type StatsService struct {
	client *Client
}

// Build runs a report and returns its rows.
func (s *StatsService) Build(ctx context.Context, req *StatsRequest) (*StatsReport, error) {
	var report StatsReport
	if err := s.client.call(ctx, "stats", http.MethodPost, "stats", nil, req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
