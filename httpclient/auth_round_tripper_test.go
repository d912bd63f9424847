/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type tokenProviderFunc func(ctx context.Context) (string, error)

func (f tokenProviderFunc) GetToken(ctx context.Context) (string, error) {
	return f(ctx)
}

func TestAuthRoundTripper_RoundTrip(t *testing.T) {
	const respAuthHeader = "X-Echoed-Authorization"

	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set(respAuthHeader, r.Header.Get("Authorization"))
		rw.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	t.Run("sets raw token without scheme prefix", func(t *testing.T) {
		rt := NewAuthRoundTripper(http.DefaultTransport, StaticTokenProvider("secret-api-key"))
		client := &http.Client{Transport: rt}
		resp, err := client.Get(server.URL)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, "secret-api-key", resp.Header.Get(respAuthHeader))
	})

	t.Run("does not overwrite already set header", func(t *testing.T) {
		rt := NewAuthRoundTripper(http.DefaultTransport, StaticTokenProvider("secret-api-key"))
		client := &http.Client{Transport: rt}
		req, err := http.NewRequest(http.MethodGet, server.URL, nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "caller-token")
		resp, err := client.Do(req)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, "caller-token", resp.Header.Get(respAuthHeader))
	})

	t.Run("custom header", func(t *testing.T) {
		server2 := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			rw.Header().Set(respAuthHeader, r.Header.Get("X-Api-Key"))
			rw.WriteHeader(http.StatusNoContent)
		}))
		defer server2.Close()

		rt := NewAuthRoundTripperWithOpts(http.DefaultTransport, StaticTokenProvider("secret-api-key"),
			AuthRoundTripperOpts{Header: "X-Api-Key"})
		client := &http.Client{Transport: rt}
		resp, err := client.Get(server2.URL)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, "secret-api-key", resp.Header.Get(respAuthHeader))
	})

	t.Run("token provider error is wrapped", func(t *testing.T) {
		providerErr := errors.New("token store unavailable")
		rt := NewAuthRoundTripper(http.DefaultTransport, tokenProviderFunc(
			func(ctx context.Context) (string, error) { return "", providerErr }))
		client := &http.Client{Transport: rt}
		_, err := client.Get(server.URL)
		require.Error(t, err)
		var authErr *AuthRoundTripperError
		require.ErrorAs(t, err, &authErr)
		require.ErrorIs(t, authErr, providerErr)
	})
}
