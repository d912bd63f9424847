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

// Group is a folder pages are organized into.
type Group struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GroupInput is the payload for creating and updating groups.
type GroupInput struct {
	Name string `json:"name"`
}

// GroupsService exposes the group endpoints.
type GroupsService struct {
	client *Client
}

// List returns groups page by page.
func (s *GroupsService) List(ctx context.Context, opts *ListOptions) ([]Group, error) {
	var groups []Group
	if err := s.client.call(ctx, "groups", http.MethodGet, "groups", opts.values(), nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Get returns one group by ID.
func (s *GroupsService) Get(ctx context.Context, id int) (*Group, error) {
	var group Group
	if err := s.client.call(ctx, "groups", http.MethodGet, fmt.Sprintf("groups/%d", id), nil, nil, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// Create makes a new group.
func (s *GroupsService) Create(ctx context.Context, input *GroupInput) (*Group, error) {
	var group Group
	if err := s.client.call(ctx, "groups", http.MethodPost, "groups", nil, input, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// Update changes an existing group.
func (s *GroupsService) Update(ctx context.Context, id int, input *GroupInput) (*Group, error) {
	var group Group
	if err := s.client.call(ctx, "groups", http.MethodPatch, fmt.Sprintf("groups/%d", id), nil, input, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// Delete removes a group.
func (s *GroupsService) Delete(ctx context.Context, id int) error {
	return s.client.call(ctx, "groups", http.MethodDelete, fmt.Sprintf("groups/%d", id), nil, nil, nil)
}
