package gpt

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPDoer abstracts the pooled HTTP client used for outbound calls.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxResponseBytes bounds how much of a remote body is read. Answers
// for a voice reply are short; anything larger is a misbehaving remote.
const maxResponseBytes = 1 << 20

// Client issues one outbound request per call against the remote
// service. The underlying HTTP client is shared across runs for
// connection pooling; per-run state never lives here.
type Client struct {
	apiKey  string
	baseURL string
	doer    HTTPDoer
}

// NewClient constructs a Client. A nil doer falls back to a pooled
// http.Client without its own timeout; attempts carry per-call
// deadlines instead.
func NewClient(baseURL, apiKey string, doer HTTPDoer) *Client {
	if doer == nil {
		doer = &http.Client{}
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
	}
}

// Post sends one JSON request with the given transport timeout and
// returns the status code and body. Transport-level failures (connect,
// timeout) come back as errors; any HTTP status is a non-error result.
func (c *Client) Post(ctx context.Context, path string, body []byte, timeout time.Duration) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}
