// Package transport is a thin HTTPS GET adapter that maps status codes to
// the typed transport errors the rest of the client surfaces; no body
// inspection happens before the status mapping runs.
package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/tsarnet/tsar-go/internal/logger"
)

// Sentinel causes. The root package maps these to its Kind taxonomy.
var (
	ErrRequestFailed = errors.New("request failed")
	ErrServerError   = errors.New("server error")
	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAppNotFound   = errors.New("app not found")
	ErrRateLimited   = errors.New("rate limited")
	ErrAppPaused     = errors.New("app paused")
)

// Client performs HTTPS GETs and maps non-200 responses to the typed
// transport errors above.
type Client struct {
	HTTP *http.Client
	Log  logger.Logger
}

// New returns a Client using httpClient, or http.DefaultClient if nil.
func New(httpClient *http.Client, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{HTTP: httpClient, Log: log}
}

// Get issues an HTTPS GET against rawURL. Only a 200 response body is
// returned; every other status produces an immediate, typed error and no
// body.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, ErrRequestFailed
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logResult(rawURL, 0)
		return nil, ErrRequestFailed
	}
	defer resp.Body.Close()

	c.logResult(rawURL, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, statusError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrRequestFailed
	}
	return body, nil
}

func statusError(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrAppNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusServiceUnavailable:
		return ErrAppPaused
	default:
		return ErrServerError
	}
}

func (c *Client) logResult(rawURL string, status int) {
	if c.Log == nil {
		return
	}
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Scheme + "://" + u.Host + u.Path
	}
	c.Log.Debug("transport request",
		logger.String("method", http.MethodGet),
		logger.String("path", path),
		logger.Int("status", status),
	)
}
