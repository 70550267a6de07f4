package sharedhttp

import (
	"bufio"
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
)

var Transport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ReadBufferSize:        65536,
	WriteBufferSize:       65536,
	TLSClientConfig: &tls.Config{
		MinVersion: tls.VersionTLS12,
	},
}

// DefaultRetry is applied to every retried request unless the caller overrides it.
var DefaultRetry = []retry.Option{
	retry.Delay(time.Second * 3),
	retry.Attempts(3),
	retry.MaxJitter(time.Second * 1),
}

func CheckStatusCode(statusCode int) error {
	switch statusCode {
	case http.StatusOK:

	case http.StatusUnauthorized, http.StatusForbidden:
		return retry.Unrecoverable(fmt.Errorf("unauthorized: status code %d", statusCode))

	case http.StatusMethodNotAllowed:
		return retry.Unrecoverable(fmt.Errorf("method not allowed: status code %d", statusCode))

	case http.StatusNotFound:
		return fmt.Errorf("not found - retrying: status code %d", statusCode)

	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusInternalServerError:
		return fmt.Errorf("server error encountered: status code %d - retrying", statusCode)

	default:
		return retry.Unrecoverable(fmt.Errorf("unexpected status code %d", statusCode))
	}

	return nil
}

func ExecRequest(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if err := CheckStatusCode(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp, nil
}

// NewJSONRequest builds a POST request carrying body encoded as JSON.
// header is copied, never mutated.
func NewJSONRequest(ctx context.Context, url string, header http.Header, body any) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if header != nil {
		req.Header = header.Clone()
	}

	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	return req, nil
}

// JSONClient posts JSON documents and decodes JSON answers, retrying
// transient failures.
type JSONClient struct {
	Client *http.Client
	Retry  []retry.Option
}

func NewJSONClient() *JSONClient {
	return &JSONClient{
		Client: &http.Client{
			Timeout:   60 * time.Second,
			Transport: Transport,
		},
		Retry: DefaultRetry,
	}
}

// Post sends body to url and decodes the response into v.
func (c *JSONClient) Post(ctx context.Context, url string, header http.Header, body any, v any) error {
	opts := append([]retry.Option{retry.Context(ctx)}, c.Retry...)

	return retry.Do(func() error {
		req, err := NewJSONRequest(ctx, url, header, body)
		if err != nil {
			return retry.Unrecoverable(err)
		}

		resp, err := ExecRequest(c.Client, req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if err := json.NewDecoder(bufio.NewReader(resp.Body)).Decode(v); err != nil {
			return retry.Unrecoverable(errors.Wrap(err, "could not decode response"))
		}

		return nil
	}, opts...)
}
