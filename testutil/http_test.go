/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequireErrorInRecorder(t *testing.T) {
	tests := []struct {
		name            string
		respCode        int
		respContentType string
		respBody        string
		wantHTTPCode    int
		wantErrMsg      string
		wantFailed      bool
	}{
		{
			name:            "ok",
			respCode:        404,
			respContentType: contentTypeAppJSON,
			respBody:        `{"error":"page not found"}`,
			wantHTTPCode:    404,
			wantErrMsg:      "page not found",
			wantFailed:      false,
		},
		{
			name:            "status code mismatch",
			respCode:        400,
			respContentType: contentTypeAppJSON,
			respBody:        `{"error":"page not found"}`,
			wantHTTPCode:    404,
			wantErrMsg:      "page not found",
			wantFailed:      true,
		},
		{
			name:            "wrong content type",
			respCode:        404,
			respContentType: "text/html",
			respBody:        `{"error":"page not found"}`,
			wantHTTPCode:    404,
			wantErrMsg:      "page not found",
			wantFailed:      true,
		},
		{
			name:            "error message mismatch",
			respCode:        404,
			respContentType: contentTypeAppJSON,
			respBody:        `{"error":"group not found"}`,
			wantHTTPCode:    404,
			wantErrMsg:      "page not found",
			wantFailed:      true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			recorder.Header().Set("Content-Type", tt.respContentType)
			recorder.WriteHeader(tt.respCode)
			_, err := recorder.WriteString(tt.respBody)
			require.NoError(t, err)

			mockT := &MockT{}
			RequireErrorInRecorder(mockT, recorder, tt.wantHTTPCode, tt.wantErrMsg)
			require.Equal(t, tt.wantFailed, mockT.Failed)
		})
	}
}

func TestRequireJSONInRecorder(t *testing.T) {
	type page struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	recorder := httptest.NewRecorder()
	recorder.Header().Set("Content-Type", contentTypeAppJSON)
	recorder.WriteHeader(http.StatusOK)
	_, err := recorder.WriteString(`{"id":42,"name":"landing"}`)
	require.NoError(t, err)

	mockT := &MockT{}
	RequireJSONInRecorder(mockT, recorder, &page{ID: 42, Name: "landing"}, &page{})
	require.False(t, mockT.Failed)
}

func TestRequireEmptyBodyInRecorder(t *testing.T) {
	recorder := httptest.NewRecorder()
	recorder.WriteHeader(http.StatusNoContent)

	mockT := &MockT{}
	RequireEmptyBodyInRecorder(mockT, recorder)
	require.False(t, mockT.Failed)

	recorder = httptest.NewRecorder()
	_, err := recorder.WriteString("not empty")
	require.NoError(t, err)
	RequireEmptyBodyInRecorder(mockT, recorder)
	require.True(t, mockT.Failed)
}
