package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/slack-go/slack"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

var ErrPostFailed = errors.New("slack post failed")

// Client posts messages through the Slack Web API.
type Client struct {
	apiURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a Slack Web API client.
func New(opts Options) *Client {
	c := &Client{
		apiURL:     slack.APIURL,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Inf, 0),
	}
	if opts.APIURL != "" {
		c.SetAPIURL(opts.APIURL)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if opts.RatePerSec > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RatePerSec), burst)
	}
	return c
}

// SetAPIURL overrides the default Slack API URL for testing purposes.
func (c *Client) SetAPIURL(url string) {
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	c.apiURL = url
}

// PostMessage sends msg with the given bot token. It makes exactly one
// attempt and returns the raw response body for logging. Only a transport
// error or a non-2xx status is treated as failure.
func (c *Client) PostMessage(ctx context.Context, token string, msg Message) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPostFailed, err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("%w: marshal: %w", ErrPostFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPostFailed, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPostFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrPostFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return string(raw), fmt.Errorf("%w: status %d", ErrPostFailed, resp.StatusCode)
	}

	return string(raw), nil
}

// APIError extracts the "error" field from a Web API response body, or "".
func APIError(raw string) string {
	var r apiResponse
	if err := json.Unmarshal([]byte(raw), &r); err != nil || r.OK {
		return ""
	}
	return r.Error
}
