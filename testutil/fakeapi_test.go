/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFakeAPIServer_CRUD(t *testing.T) {
	server := NewFakeAPIServer()
	defer server.Close()

	doJSON := func(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
		t.Helper()
		var reqBody bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
		}
		req, err := http.NewRequest(method, server.URL+path, &reqBody)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { require.NoError(t, resp.Body.Close()) }()
		var decoded map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
		return resp, decoded
	}

	resp, created := doJSON(t, http.MethodPost, "/pages", map[string]interface{}{"name": "landing"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "landing", created["name"])
	id := int(created["id"].(float64))

	resp, got := doJSON(t, http.MethodGet, fmt.Sprintf("/pages/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "landing", got["name"])

	resp, updated := doJSON(t, http.MethodPatch, fmt.Sprintf("/pages/%d", id), map[string]interface{}{"name": "landing v2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "landing v2", updated["name"])

	resp, cloned := doJSON(t, http.MethodPost, fmt.Sprintf("/pages/%d/clone", id), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "landing v2 (copy)", cloned["name"])
	require.NotEqual(t, id, int(cloned["id"].(float64)))

	resp, started := doJSON(t, http.MethodPost, fmt.Sprintf("/pages/%d/start", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "started", started["state"])

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("/pages/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("/pages/%d", id), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	requests := server.Requests()
	require.NotEmpty(t, requests)
	require.Equal(t, http.MethodPost, requests[0].Method)
	require.Equal(t, "/pages", requests[0].Path)
}

func TestFakeAPIServer_RequireToken(t *testing.T) {
	server := NewFakeAPIServer()
	defer server.Close()
	server.RequireToken("secret-api-key")

	resp, err := http.Get(server.URL + "/user")
	require.NoError(t, err)
	RequireErrorInResponse(t, resp, http.StatusUnauthorized, "unauthorized")
	require.NoError(t, resp.Body.Close())

	req, err := http.NewRequest(http.MethodGet, server.URL+"/user", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "secret-api-key")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}
