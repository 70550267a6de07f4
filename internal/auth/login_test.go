package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{ err error }

func (f failingSource) Credentials(context.Context) (Credentials, error) {
	return Credentials{}, f.err
}

func loginServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body["email"] != "reader@example.com" || body["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"token":"fresh-token"}`))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestLoginClient_Login(t *testing.T) {
	srv := loginServer(t)

	l := NewLoginClient(srv.URL, http.Header{}, StaticCredentials{Email: "reader@example.com", Password: "hunter2"}, zerolog.Nop())

	token, err := l.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
}

func TestLoginClient_LoginRejected(t *testing.T) {
	srv := loginServer(t)

	l := NewLoginClient(srv.URL, http.Header{}, StaticCredentials{Email: "reader@example.com", Password: "wrong"}, zerolog.Nop())

	token, err := l.Login(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestLoginClient_LoginSourceAborts(t *testing.T) {
	srv := loginServer(t)
	abort := errors.New("aborted")

	l := NewLoginClient(srv.URL, http.Header{}, failingSource{err: abort}, zerolog.Nop())

	_, err := l.Login(context.Background())
	assert.ErrorIs(t, err, abort)
}

func TestStaticCredentials_Empty(t *testing.T) {
	_, err := StaticCredentials{}.Credentials(context.Background())
	assert.ErrorIs(t, err, ErrNoCredentials)
}
