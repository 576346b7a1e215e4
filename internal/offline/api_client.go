package offline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient replays queued entries against the server API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a replay client for the given server base URL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Replay sends one queued entry to its target endpoint using the token
// captured when the entry was enqueued. Progress entries POST, all
// other kinds PUT.
func (c *APIClient) Replay(ctx context.Context, entry Entry) error {
	method := http.MethodPut
	if entry.Kind == KindProgress {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+entry.Target, bytes.NewReader(entry.Payload))
	if err != nil {
		return fmt.Errorf("failed to build replay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if entry.Token != "" {
		req.Header.Set("Authorization", "Bearer "+entry.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("replay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("replay rejected with status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
