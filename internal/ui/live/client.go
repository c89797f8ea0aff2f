package live

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"govorun/internal/store"
)

// Client fetches recent calls from a running server's debug endpoint.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a Client for the given server base URL and bearer
// token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// FetchRecent returns up to limit recent calls, newest first.
func (c *Client) FetchRecent(ctx context.Context, limit int) ([]store.CallRecord, error) {
	url := fmt.Sprintf("%s/debug/calls?limit=%d", c.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch calls: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var listing struct {
		Calls []store.CallRecord `json:"calls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode calls: %w", err)
	}
	return listing.Calls, nil
}
