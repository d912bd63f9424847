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

// Category labels pages by vertical.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CategoryInput is the payload for creating and updating categories.
type CategoryInput struct {
	Name string `json:"name"`
}

// CategoriesService exposes the category endpoints.
type CategoriesService struct {
	client *Client
}

// List returns categories page by page.
func (s *CategoriesService) List(ctx context.Context, opts *ListOptions) ([]Category, error) {
	var categories []Category
	if err := s.client.call(ctx, "categories", http.MethodGet, "categories", opts.values(), nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Get returns one category by ID.
func (s *CategoriesService) Get(ctx context.Context, id int) (*Category, error) {
	var category Category
	if err := s.client.call(ctx, "categories", http.MethodGet, fmt.Sprintf("categories/%d", id), nil, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Create makes a new category.
func (s *CategoriesService) Create(ctx context.Context, input *CategoryInput) (*Category, error) {
	var category Category
	if err := s.client.call(ctx, "categories", http.MethodPost, "categories", nil, input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update changes an existing category.
func (s *CategoriesService) Update(ctx context.Context, id int, input *CategoryInput) (*Category, error) {
	var category Category
	if err := s.client.call(ctx, "categories", http.MethodPatch, fmt.Sprintf("categories/%d", id), nil, input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category.
func (s *CategoriesService) Delete(ctx context.Context, id int) error {
	return s.client.call(ctx, "categories", http.MethodDelete, fmt.Sprintf("categories/%d", id), nil, nil, nil)
}
