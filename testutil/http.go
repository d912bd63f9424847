/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/stretchr/testify/require"
)

const contentTypeAppJSON = "application/json"

type errorRespData struct {
	Error string `json:"error"`
}

// RequireErrorInRecorder asserts that passing httptest.ResponseRecorder contains the Pagerun API error.
func RequireErrorInRecorder(t require.TestingT, resp *httptest.ResponseRecorder, wantHTTPCode int, wantErrMsg string) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	requireErrorInResponse(t, resp.Code, resp.Header(), resp.Body, wantHTTPCode, wantErrMsg)
}

// RequireErrorInResponse asserts that passing http.Response contains the Pagerun API error.
// The error is expected in the body's "error" field, the way the Pagerun API reports it.
func RequireErrorInResponse(t require.TestingT, resp *http.Response, wantHTTPCode int, wantErrMsg string) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	requireErrorInResponse(t, resp.StatusCode, resp.Header, resp.Body, wantHTTPCode, wantErrMsg)
}

func requireErrorInResponse(
	t require.TestingT, code int, header http.Header, body io.Reader, wantHTTPCode int, wantErrMsg string,
) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	require.Equal(t, wantHTTPCode, code)
	require.Equal(t, contentTypeAppJSON, header.Get("Content-Type"))
	var errResp errorRespData
	require.NoError(t, json.NewDecoder(body).Decode(&errResp))
	require.Equal(t, wantErrMsg, errResp.Error)
}

// RequireEmptyBodyInRecorder asserts that passing httptest.ResponseRecorder contains empty body.
func RequireEmptyBodyInRecorder(t require.TestingT, resp *httptest.ResponseRecorder) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	requireEmptyBodyInResponse(t, resp.Body)
}

// RequireEmptyBodyInResponse asserts that passing http.Response contains empty body.
func RequireEmptyBodyInResponse(t require.TestingT, resp *http.Response) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	requireEmptyBodyInResponse(t, resp.Body)
}

func requireEmptyBodyInResponse(t require.TestingT, body io.Reader) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	bodyBytes, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, 0, len(bodyBytes))
}

// RequireJSONInRecorder asserts that passing httptest.ResponseRecorder contains the data in json format.
func RequireJSONInRecorder(t require.TestingT, resp *httptest.ResponseRecorder, want, dest interface{}) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	requireJSONInResponse(t, resp.Header(), resp.Body, want, dest)
}

// RequireJSONInResponse asserts that passing http.Response contains the data in json format.
func RequireJSONInResponse(t require.TestingT, resp *http.Response, want, dest interface{}) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	requireJSONInResponse(t, resp.Header, resp.Body, want, dest)
}

func requireJSONInResponse(t require.TestingT, header http.Header, body io.Reader, want, dest interface{}) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	require.Equal(t, contentTypeAppJSON, header.Get("Content-Type"))
	bodyBytes, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(bodyBytes, dest))
	require.Equal(t, want, dest)
}
