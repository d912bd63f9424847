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

// Page states as the API reports them.
const (
	PageStateStarted = "started"
	PageStateStopped = "stopped"
)

// Page is a tracked landing page.
type Page struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	GroupID    int    `json:"group_id"`
	CategoryID int    `json:"category_id"`
	State      string `json:"state"`
}

// PageInput is the payload for creating and updating pages.
type PageInput struct {
	Name       string `json:"name,omitempty"`
	URL        string `json:"url,omitempty"`
	GroupID    int    `json:"group_id,omitempty"`
	CategoryID int    `json:"category_id,omitempty"`
}

// PagesService exposes the page endpoints.
type PagesService struct {
	client *Client
}

// List returns pages page by page.
func (s *PagesService) List(ctx context.Context, opts *ListOptions) ([]Page, error) {
	var pages []Page
	if err := s.client.call(ctx, "pages", http.MethodGet, "pages", opts.values(), nil, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// Get returns one page by ID.
func (s *PagesService) Get(ctx context.Context, id int) (*Page, error) {
	var page Page
	if err := s.client.call(ctx, "pages", http.MethodGet, fmt.Sprintf("pages/%d", id), nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create makes a new page.
func (s *PagesService) Create(ctx context.Context, input *PageInput) (*Page, error) {
	var page Page
	if err := s.client.call(ctx, "pages", http.MethodPost, "pages", nil, input, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Update changes an existing page.
func (s *PagesService) Update(ctx context.Context, id int, input *PageInput) (*Page, error) {
	var page Page
	if err := s.client.call(ctx, "pages", http.MethodPatch, fmt.Sprintf("pages/%d", id), nil, input, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Delete removes a page.
func (s *PagesService) Delete(ctx context.Context, id int) error {
	return s.client.call(ctx, "pages", http.MethodDelete, fmt.Sprintf("pages/%d", id), nil, nil, nil)
}

// Clone duplicates a page and returns the copy.
func (s *PagesService) Clone(ctx context.Context, id int) (*Page, error) {
	var page Page
	if err := s.client.call(ctx, "pages", http.MethodPost, fmt.Sprintf("pages/%d/clone", id), nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Move puts a page into another group.
func (s *PagesService) Move(ctx context.Context, id, groupID int) (*Page, error) {
	var page Page
	body := map[string]int{"group_id": groupID}
	if err := s.client.call(ctx, "pages", http.MethodPost, fmt.Sprintf("pages/%d/move", id), nil, body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Start enables traffic tracking for a page.
func (s *PagesService) Start(ctx context.Context, id int) (*Page, error) {
	return s.setState(ctx, id, "start")
}

// Stop disables traffic tracking for a page.
func (s *PagesService) Stop(ctx context.Context, id int) (*Page, error) {
	return s.setState(ctx, id, "stop")
}

func (s *PagesService) setState(ctx context.Context, id int, action string) (*Page, error) {
	var page Page
	if err := s.client.call(ctx, "pages", http.MethodPost, fmt.Sprintf("pages/%d/%s", id, action), nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
