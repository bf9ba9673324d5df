// Package dnsjson provides a doh.Client backed by a DNS JSON API endpoint
// such as Google Public DNS (https://dns.google/resolve) or Cloudflare
// (https://cloudflare-dns.com/dns-query).
package dnsjson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"checker/pkg/doh"
	"checker/pkg/serrors"
)

// DefaultEndpoint is the DNS JSON API queried when none is configured.
const DefaultEndpoint = "https://dns.google/resolve"

// queryType is the record type requested per lookup. Any record type works
// for availability checks since only the status code is interpreted.
const queryType = "A"

// Client queries a DNS JSON API endpoint and fulfills the doh.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs the HTTPS queries
	endpoint   string       // endpoint is the DNS JSON API base URL
}

// Resolve performs a single DNS JSON query for name and decodes the result.
// It does not retry and carries no state between calls.
func (c *Client) Resolve(ctx context.Context, name string) (doh.Response, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("type", queryType)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return doh.Response{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/dns-json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return doh.Response{}, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return doh.Response{}, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return doh.Response{},
			serrors.With(serrors.ErrUpstream, "doh status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out doh.Response
	if err := json.Unmarshal(b, &out); err != nil {
		return doh.Response{}, serrors.Wrap(serrors.ErrUpstream, err, "could not decode response")
	}

	return out, nil
}

// Ensure Client conforms to the doh.Client interface at compile time.
var _ doh.Client = (*Client)(nil)

// New constructs a Client that queries the given DNS JSON endpoint using the
// provided http.Client. An empty endpoint selects DefaultEndpoint.
func New(httpClient *http.Client, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
	}
}
