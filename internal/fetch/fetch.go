// Package fetch performs the raw HTTP GET against a source endpoint.
// It applies a bounded timeout and browser-like request headers, and
// converts every failure mode into a typed FetchError. Retry policy does
// not live here; within one aggregation pass a failed source is simply
// excluded.
package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"coinwire/internal/types"
)

// Payload is the raw response body of a successful fetch.
type Payload struct {
	Source types.Source
	Status int
	Body   []byte
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

// NewClient builds a fetcher with the given per-request timeout and
// User-Agent. The underlying http.Client is injectable for tests via
// WithHTTPClient.
func NewClient(timeout time.Duration, userAgent string) *Client {
	if timeout == 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Fetch retrieves the source's endpoint. Network errors, timeouts and
// non-2xx statuses all come back as *types.FetchError.
func (c *Client) Fetch(ctx context.Context, source types.Source) (*Payload, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.Endpoint, nil)
	if err != nil {
		return nil, &types.FetchError{Source: source.Name, Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, application/json;q=0.9, */*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("fetch failed", "source", source.Name, "error", err)
		return nil, &types.FetchError{Source: source.Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Debug("fetch returned non-2xx", "source", source.Name, "status", resp.StatusCode)
		return nil, &types.FetchError{Source: source.Name, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.FetchError{Source: source.Name, Err: err}
	}

	return &Payload{Source: source, Status: resp.StatusCode, Body: body}, nil
}
