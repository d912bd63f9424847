/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package pagerun

import (
	"context"
	"net/http"
)

// User is the account the credential belongs to.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UsersService exposes the user endpoints.
type UsersService struct {
	client *Client
}

// Current returns the account the configured credential belongs to.
func (s *UsersService) Current(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.call(ctx, "user", http.MethodGet, "user", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
