package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mubot/clients"
	"mubot/core"
)

// lookupTimeout bounds every external call so a slow provider cannot hang
// an invocation indefinitely. A timeout surfaces as a transport failure.
const lookupTimeout = 10 * time.Second

// Client implements the clients.HTTPDoer interface over a plain net/http
// client
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new JSON lookup client. Pass nil to use a default
// client with the standard lookup timeout.
func NewClient(httpClient *http.Client) clients.HTTPDoer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: lookupTimeout}
	}
	return &Client{httpClient: httpClient}
}

// GetJSON fetches url and decodes the response body. All failure modes -
// request build, network, non-2xx status, undecodable body - are wrapped
// as core.ErrTransport.
func (c *Client) GetJSON(ctx context.Context, url string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup request: %v: %w", err, core.ErrTransport)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute lookup request: %v: %w", err, core.ErrTransport)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf(
			"lookup request failed with status %d: %s: %w",
			resp.StatusCode, string(body), core.ErrTransport,
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup response body: %v: %w", err, core.ErrTransport)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %v: %w", err, core.ErrTransport)
	}

	return decoded, nil
}
