// Package apiclient is the JSON-over-HTTP transport shared by the model
// provider adapters. It owns request encoding, response limits and the
// mapping of HTTP failures onto domain errors, so adapters only describe
// their wire types.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBody bounds how much of a provider response is read.
const maxResponseBody = 8 << 20

// Options configures a Client.
type Options struct {
	// Provider labels errors, e.g. "groq".
	Provider string

	// BaseURL is prepended to every request path.
	BaseURL string

	// Timeout bounds each request, including reading the body.
	Timeout time.Duration

	// Header is sent with every request (auth, API version).
	Header http.Header

	// Kind selects the error taxonomy failures are mapped onto.
	Kind Kind
}

// Client sends JSON requests to one provider API.
type Client struct {
	http     *http.Client
	provider string
	baseURL  string
	header   http.Header
	kind     Kind
}

// New creates a Client.
func New(opts Options) *Client {
	header := opts.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	return &Client{
		http:     &http.Client{Timeout: opts.Timeout},
		provider: opts.Provider,
		baseURL:  opts.BaseURL,
		header:   header,
		kind:     opts.Kind,
	}
}

// Provider returns the provider label used in errors.
func (c *Client) Provider() string { return c.provider }

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration { return c.http.Timeout }

// Post sends in as a JSON body to path and decodes a 200 response into out.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", c.provider, err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), out)
}

// Get fetches path and decodes a 200 response into out. A nil out only
// checks the status, which is how adapters implement Ping.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, http.NoBody, out)
}

// Reject reports a failure the provider signalled inside a 200 response,
// such as an error field or a missing result.
func (c *Client) Reject(format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", c.provider, c.kind.unavailable(), fmt.Sprintf(format, args...))
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", c.provider, err)
	}
	for k, v := range c.header {
		req.Header[k] = v
	}
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.kind.Transport(c.provider, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return c.kind.Transport(c.provider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return c.kind.Status(c.provider, resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w: %v", c.provider, c.kind.unavailable(), err)
	}
	return nil
}
