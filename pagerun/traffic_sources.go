/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package pagerun

import (
	"context"
	"fmt"
	"net/http"
)

// TrafficSource describes where visits of a page come from.
type TrafficSource struct {
	ID     int               `json:"id"`
	Name   string            `json:"name"`
	Params map[string]string `json:"params"`
}

// TrafficSourceInput is the payload for creating and updating traffic sources.
type TrafficSourceInput struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`
}

// TrafficSourcesService exposes the traffic source endpoints.
type TrafficSourcesService struct {
	client *Client
}

// List returns traffic sources page by page.
func (s *TrafficSourcesService) List(ctx context.Context, opts *ListOptions) ([]TrafficSource, error) {
	var sources []TrafficSource
	if err := s.client.call(ctx, "traffic_sources", http.MethodGet, "traffic_sources", opts.values(), nil, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// Get returns one traffic source by ID.
func (s *TrafficSourcesService) Get(ctx context.Context, id int) (*TrafficSource, error) {
	var source TrafficSource
	if err := s.client.call(ctx, "traffic_sources", http.MethodGet, fmt.Sprintf("traffic_sources/%d", id), nil, nil, &source); err != nil {
		return nil, err
	}
	return &source, nil
}

// Create makes a new traffic source.
func (s *TrafficSourcesService) Create(ctx context.Context, input *TrafficSourceInput) (*TrafficSource, error) {
	var source TrafficSource
	if err := s.client.call(ctx, "traffic_sources", http.MethodPost, "traffic_sources", nil, input, &source); err != nil {
		return nil, err
	}
	return &source, nil
}

// Update changes an existing traffic source.
func (s *TrafficSourcesService) Update(ctx context.Context, id int, input *TrafficSourceInput) (*TrafficSource, error) {
	var source TrafficSource
	if err := s.client.call(ctx, "traffic_sources", http.MethodPatch, fmt.Sprintf("traffic_sources/%d", id), nil, input, &source); err != nil {
		return nil, err
	}
	return &source, nil
}

// Delete removes a traffic source.
func (s *TrafficSourcesService) Delete(ctx context.Context, id int) error {
	return s.client.call(ctx, "traffic_sources", http.MethodDelete, fmt.Sprintf("traffic_sources/%d", id), nil, nil, nil)
}
