package sharedhttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avast/retry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *JSONClient {
	c := NewJSONClient()
	c.Retry = []retry.Option{retry.Attempts(3), retry.Delay(time.Millisecond)}
	return c
}

func TestJSONClient_Post(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ping", body["msg"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"msg":"pong"}`))
	}))
	defer srv.Close()

	header := http.Header{}
	header.Set("X-Test", "yes")

	var out struct {
		Msg string `json:"msg"`
	}
	err := testClient().Post(context.Background(), srv.URL, header, map[string]string{"msg": "ping"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "pong", out.Msg)
	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, header.Get("Content-Type"), "caller header must not be mutated")
}

func TestJSONClient_PostRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	var out map[string]any
	require.NoError(t, testClient().Post(context.Background(), srv.URL, nil, struct{}{}, &out))
	assert.Equal(t, int32(3), calls.Load())
}

func TestJSONClient_PostStopsOnUnrecoverable(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	var out map[string]any
	assert.Error(t, testClient().Post(context.Background(), srv.URL, nil, struct{}{}, &out))
	assert.Equal(t, int32(1), calls.Load())
}

func TestJSONClient_PostBadPayload(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var out map[string]any
	assert.Error(t, testClient().Post(context.Background(), srv.URL, nil, struct{}{}, &out))
	assert.Equal(t, int32(1), calls.Load())
}

func TestCheckStatusCode(t *testing.T) {
	assert.NoError(t, CheckStatusCode(http.StatusOK))
	assert.Error(t, CheckStatusCode(http.StatusNotFound))
	assert.Error(t, CheckStatusCode(http.StatusTeapot))
}
