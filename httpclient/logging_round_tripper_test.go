/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package httpclient

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagerun/pagerun-go/log"
	"github.com/pagerun/pagerun-go/log/logtest"
)

func TestLoggingRoundTripper_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teapot":
			rw.WriteHeader(http.StatusTeapot)
		default:
			rw.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	doRequest := func(t *testing.T, client *http.Client, ctx context.Context, url string) {
		t.Helper()
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
		require.NoError(t, err)
		resp, err := client.Do(req)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
	}

	t.Run("mode all logs every request with fields", func(t *testing.T) {
		recorder := logtest.NewRecorder()
		client := &http.Client{Transport: NewLoggingRoundTripperWithOpts(http.DefaultTransport,
			LoggingRoundTripperOpts{Logger: recorder, Mode: LoggingModeAll})}
		ctx := NewContextWithRequestID(context.Background(), "req-1")
		ctx = NewContextWithRequestType(ctx, "pages")
		doRequest(t, client, ctx, server.URL)

		entries := recorder.Entries()
		require.Len(t, entries, 1)
		require.Equal(t, "client http request done", entries[0].Text)
		statusField, found := entries[0].FindField("status_code")
		require.True(t, found)
		require.EqualValues(t, http.StatusOK, statusField.Int)
		reqIDField, found := entries[0].FindField("request_id")
		require.True(t, found)
		require.Equal(t, "req-1", string(reqIDField.Bytes))
		reqTypeField, found := entries[0].FindField("request_type")
		require.True(t, found)
		require.Equal(t, "pages", string(reqTypeField.Bytes))
	})

	t.Run("mode failed skips successful requests", func(t *testing.T) {
		recorder := logtest.NewRecorder()
		client := &http.Client{Transport: NewLoggingRoundTripperWithOpts(http.DefaultTransport,
			LoggingRoundTripperOpts{Logger: recorder, Mode: LoggingModeFailed})}
		doRequest(t, client, context.Background(), server.URL)
		require.Empty(t, recorder.Entries())

		doRequest(t, client, context.Background(), server.URL+"/teapot")
		entries := recorder.Entries()
		require.Len(t, entries, 1)
		statusField, found := entries[0].FindField("status_code")
		require.True(t, found)
		require.EqualValues(t, http.StatusTeapot, statusField.Int)
	})

	t.Run("mode none logs nothing", func(t *testing.T) {
		recorder := logtest.NewRecorder()
		client := &http.Client{Transport: NewLoggingRoundTripperWithOpts(http.DefaultTransport,
			LoggingRoundTripperOpts{Logger: recorder, Mode: LoggingModeNone})}
		doRequest(t, client, context.Background(), server.URL+"/teapot")
		require.Empty(t, recorder.Entries())
	})

	t.Run("transport error is logged at error level", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		deadURL := "http://" + ln.Addr().String()
		require.NoError(t, ln.Close())

		recorder := logtest.NewRecorder()
		client := &http.Client{Transport: NewLoggingRoundTripperWithOpts(http.DefaultTransport,
			LoggingRoundTripperOpts{Logger: recorder, Mode: LoggingModeFailed})}
		req, err := http.NewRequest(http.MethodPost, deadURL, nil)
		require.NoError(t, err)
		_, err = client.Do(req) //nolint:bodyclose
		require.Error(t, err)

		entries := recorder.Entries()
		require.Len(t, entries, 1)
		require.Equal(t, "client http request failed", entries[0].Text)
		require.Equal(t, log.LevelError, entries[0].Level)
	})

	t.Run("slow request threshold suppresses fast requests", func(t *testing.T) {
		recorder := logtest.NewRecorder()
		client := &http.Client{Transport: NewLoggingRoundTripperWithOpts(http.DefaultTransport,
			LoggingRoundTripperOpts{Logger: recorder, Mode: LoggingModeAll, SlowRequestThreshold: 10e9})}
		doRequest(t, client, context.Background(), server.URL)
		require.Empty(t, recorder.Entries())
	})

	t.Run("context logger provider wins", func(t *testing.T) {
		fallback := logtest.NewRecorder()
		provided := logtest.NewRecorder()
		client := &http.Client{Transport: NewLoggingRoundTripperWithOpts(http.DefaultTransport,
			LoggingRoundTripperOpts{
				Logger:         fallback,
				LoggerProvider: func(ctx context.Context) log.FieldLogger { return provided },
				Mode:           LoggingModeAll,
			})}
		doRequest(t, client, context.Background(), server.URL)
		require.Empty(t, fallback.Entries())
		require.Len(t, provided.Entries(), 1)
	})
}
