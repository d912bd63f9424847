/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package pagerun

import (
	"context"
	"net/http"
)

// Country is a dictionary entry used in targeting filters.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Language is a dictionary entry used in targeting filters.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CountriesService exposes the countries dictionary.
type CountriesService struct {
	client *Client
}

// List returns all known countries.
func (s *CountriesService) List(ctx context.Context) ([]Country, error) {
	var countries []Country
	if err := s.client.call(ctx, "countries", http.MethodGet, "countries", nil, nil, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// LanguagesService exposes the languages dictionary.
type LanguagesService struct {
	client *Client
}

// List returns all known languages.
func (s *LanguagesService) List(ctx context.Context) ([]Language, error) {
	var languages []Language
	if err := s.client.call(ctx, "languages", http.MethodGet, "languages", nil, nil, &languages); err != nil {
		return nil, err
	}
	return languages, nil
}
