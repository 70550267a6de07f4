package auth

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"

	"mangasio/internal/sharedhttp"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Credentials struct {
	Email    string
	Password string
}

// CredentialSource supplies login credentials. An error means the operator
// gave up and authentication must stop.
type CredentialSource interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// LoginClient exchanges credentials for a fresh token.
type LoginClient struct {
	URL    string
	Header http.Header
	Client *http.Client
	Source CredentialSource
	Log    zerolog.Logger
}

func NewLoginClient(url string, header http.Header, source CredentialSource, log zerolog.Logger) *LoginClient {
	return &LoginClient{
		URL:    url,
		Header: header,
		Client: newPlainClient(),
		Source: source,
		Log:    log,
	}
}

// Login returns an empty token when the exchange fails. The call itself is
// never retried here.
func (l *LoginClient) Login(ctx context.Context) (string, error) {
	l.Log.Info().Msg("requesting a new token")

	creds, err := l.Source.Credentials(ctx)
	if err != nil {
		return "", errors.Wrap(err, "could not read credentials")
	}

	body := map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	}

	req, err := sharedhttp.NewJSONRequest(ctx, l.URL, l.Header, body)
	if err != nil {
		l.Log.Error().Err(err).Msg("could not build login request")
		return "", nil
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		l.Log.Warn().Err(err).Msg("login request failed")
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.Log.Warn().Int("status", resp.StatusCode).Str("email", creds.Email).Msg("login rejected")
		return "", nil
	}

	var answer struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(bufio.NewReader(resp.Body)).Decode(&answer); err != nil {
		l.Log.Warn().Err(err).Msg("could not decode login response")
		return "", nil
	}

	if answer.Token == "" {
		l.Log.Warn().Msg("login response carried no token")
		return "", nil
	}

	l.Log.Info().Str("email", creds.Email).Msg("logged in")
	return answer.Token, nil
}
