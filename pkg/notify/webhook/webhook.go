// Package webhook provides a notify.Notifier that posts messages to an
// incoming-webhook URL (Slack/Discord/Mattermost compatible payload).
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"checker/pkg/notify"
	"checker/pkg/serrors"
)

// Client posts notification messages to a webhook URL and fulfills the
// notify.Notifier interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs the webhook requests
	url        string       // url is the incoming-webhook endpoint
}

// Send posts the text as a JSON payload to the webhook URL. A non-success
// HTTP status is returned as an error; the caller decides whether to log or
// ignore it.
func (c *Client) Send(ctx context.Context, text string) error {
	payload, err := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: text})
	if err != nil {
		return fmt.Errorf("could not marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(string(payload)))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return serrors.With(serrors.ErrUpstream, "webhook status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	return nil
}

// Ensure Client conforms to the notify.Notifier interface at compile time.
var _ notify.Notifier = (*Client)(nil)

// New constructs a Client that delivers messages to the given webhook URL.
func New(httpClient *http.Client, url string) *Client {
	return &Client{
		httpClient: httpClient,
		url:        url,
	}
}
