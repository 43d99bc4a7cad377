// internal/arbiter/client.go
//
// Package arbiter holds the HTTP transport for the external answer arbiter.
// The engine consumes it through the engine.Arbiter interface, so tests swap
// in a fake without any network.
package arbiter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBytes bounds how much of the model response we will read.
const maxResponseBytes = 64 * 1024

// Client calls the arbiter endpoint and returns its raw response text.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
}

// NewClient builds an arbiter client for the given endpoint.
func NewClient(url, apiKey string) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

type judgeRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Judge asks the arbiter whether the answer is a valid response to the
// question and roughly where it would rank. The raw body is returned as-is;
// defensive parsing happens in the engine.
func (c *Client) Judge(ctx context.Context, question, answer string) (string, error) {
	body, err := json.Marshal(judgeRequest{Question: question, Answer: answer})
	if err != nil {
		return "", fmt.Errorf("marshal arbiter request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build arbiter request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("arbiter request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("arbiter returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read arbiter response: %w", err)
	}
	return string(data), nil
}
