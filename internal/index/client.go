// Package index is a minimal REST client to the vector index in
// Qdrant's HTTP dialect. Points carry the chunk text and metadata as
// payload; embedding happens on the index side and is not this
// service's concern.
package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client communicates with the vector index HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	collection string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, collection string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		collection: collection,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Point is one upsert unit: a deterministic ID, the chunk text, and
// its metadata payload.
type Point struct {
	ID       string
	Text     string
	Metadata map[string]any
}

// Entry is one scanned index point.
type Entry struct {
	ID      string         `json:"id"`
	Payload map[string]any `json:"payload"`
}

// RetryableError marks transient index failures (rate limits, 5xx)
// worth retrying with backoff.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("index: retryable status %d: %s", e.StatusCode, e.Message)
}

// Upsert writes points, overwriting any with the same ID.
func (c *Client) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	payload := make([]map[string]any, len(points))
	for i, p := range points {
		body := map[string]any{"text": p.Text}
		for k, v := range p.Metadata {
			body[k] = v
		}
		payload[i] = map[string]any{
			"id":      p.ID,
			"payload": body,
		}
	}
	body := map[string]any{"points": payload}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s/points?wait=true", c.collection), body, nil)
}

// Scroll pages through the index, payloads only. offset is the
// cursor from the previous page (nil for the first); a nil returned
// cursor means the scan is complete.
func (c *Client) Scroll(ctx context.Context, limit int, offset any) ([]Entry, any, error) {
	req := map[string]any{
		"limit":        limit,
		"with_payload": true,
		"with_vector":  false,
	}
	if offset != nil {
		req["offset"] = offset
	}
	var resp struct {
		Result struct {
			Points         []Entry `json:"points"`
			NextPageOffset any     `json:"next_page_offset"`
		} `json:"result"`
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/scroll", c.collection), req, &resp)
	if err != nil {
		return nil, nil, err
	}
	return resp.Result.Points, resp.Result.NextPageOffset, nil
}

// sourceOf extracts the source name from a point payload, checking
// both the direct field and the nested metadata form.
func sourceOf(e Entry) []string {
	var out []string
	if s, ok := e.Payload["source"].(string); ok && s != "" {
		out = append(out, s)
	}
	if meta, ok := e.Payload["metadata"].(map[string]any); ok {
		if s, ok := meta["source"].(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Sources scans the whole index and returns the set of distinct
// source names present.
func (c *Client) Sources(ctx context.Context) (map[string]struct{}, error) {
	const pageSize = 1000
	sources := map[string]struct{}{}
	var offset any
	for {
		entries, next, err := c.Scroll(ctx, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("scan index: %w", err)
		}
		for _, e := range entries {
			for _, s := range sourceOf(e) {
				sources[s] = struct{}{}
			}
		}
		if next == nil || len(entries) == 0 {
			return sources, nil
		}
		offset = next
	}
}

// PointIDsBySource returns the IDs of every point whose payload
// references the given source, in either payload form.
func (c *Client) PointIDsBySource(ctx context.Context, source string) ([]string, error) {
	const pageSize = 1000
	var ids []string
	var offset any
	for {
		entries, next, err := c.Scroll(ctx, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("scan index: %w", err)
		}
		for _, e := range entries {
			for _, s := range sourceOf(e) {
				if s == source {
					ids = append(ids, e.ID)
					break
				}
			}
		}
		if next == nil || len(entries) == 0 {
			return ids, nil
		}
		offset = next
	}
}

// DeletePoints removes points by ID.
func (c *Client) DeletePoints(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string]any{"points": ids}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/delete?wait=true", c.collection), body, nil)
}

// CollectionInfo summarizes the index collection.
type CollectionInfo struct {
	Status      string `json:"status"`
	PointsCount int64  `json:"points_count"`
}

// Info returns collection status and point count.
func (c *Client) Info(ctx context.Context) (*CollectionInfo, error) {
	var resp struct {
		Result CollectionInfo `json:"result"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/collections/%s", c.collection), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("index %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("index %s %s: status %d: %s", method, path, resp.StatusCode, string(respBody))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
