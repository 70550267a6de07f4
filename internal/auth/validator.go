package auth

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mangasio/internal/sharedhttp"

	"github.com/rs/zerolog"
)

// RequestTimeout bounds the validation and login calls.
const RequestTimeout = 10 * time.Second

const statusSuccess = "success"

func newPlainClient() *http.Client {
	return &http.Client{
		Timeout:   RequestTimeout,
		Transport: sharedhttp.Transport,
	}
}

// Validator asks the backend whether a token is still alive.
type Validator struct {
	URL    string
	Header http.Header
	Client *http.Client
	Log    zerolog.Logger
}

func NewValidator(url string, header http.Header, log zerolog.Logger) *Validator {
	return &Validator{
		URL:    url,
		Header: header,
		Client: newPlainClient(),
		Log:    log,
	}
}

// Probe fails closed: anything but an explicit success answer means invalid.
func (v *Validator) Probe(ctx context.Context, token string) bool {
	if token == "" {
		v.Log.Info().Msg("no token to validate")
		return false
	}

	req, err := sharedhttp.NewJSONRequest(ctx, v.URL, v.Header, map[string]string{"token": token})
	if err != nil {
		v.Log.Error().Err(err).Msg("could not build token validation request")
		return false
	}

	resp, err := v.Client.Do(req)
	if err != nil {
		v.Log.Warn().Err(err).Msg("token validation request failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.Log.Warn().Int("status", resp.StatusCode).Msg("token validation rejected")
		return false
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(bufio.NewReader(resp.Body)).Decode(&body); err != nil {
		v.Log.Warn().Err(err).Msg("could not decode token validation response")
		return false
	}

	if body.Status != statusSuccess {
		v.Log.Info().Str("status", body.Status).Msg("cached token expired")
		return false
	}

	v.Log.Info().Msg("token is valid")
	return true
}
