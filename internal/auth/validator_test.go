package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req["token"])

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &calls
}

func TestValidator_Probe(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{name: "success", status: http.StatusOK, body: `{"status":"success"}`, want: true},
		{name: "expired", status: http.StatusOK, body: `{"status":"error"}`, want: false},
		{name: "server error", status: http.StatusInternalServerError, body: `{"status":"success"}`, want: false},
		{name: "garbage", status: http.StatusOK, body: `<html>`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := validationServer(t, tt.status, tt.body)

			v := NewValidator(srv.URL, http.Header{}, zerolog.Nop())
			assert.Equal(t, tt.want, v.Probe(context.Background(), "token"))
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestValidator_ProbeEmptyTokenSkipsRequest(t *testing.T) {
	srv, calls := validationServer(t, http.StatusOK, `{"status":"success"}`)

	v := NewValidator(srv.URL, http.Header{}, zerolog.Nop())
	assert.False(t, v.Probe(context.Background(), ""))
	assert.Zero(t, calls.Load())
}

func TestValidator_ProbeNetworkErrorIsInvalid(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	v := NewValidator(url, http.Header{}, zerolog.Nop())
	assert.False(t, v.Probe(context.Background(), "token"))
}

func TestValidator_ProbeTimeoutIsInvalid(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	v := NewValidator(srv.URL, http.Header{}, zerolog.Nop())
	v.Client.Timeout = 50 * time.Millisecond
	assert.False(t, v.Probe(context.Background(), "token"))
}
