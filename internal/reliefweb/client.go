// Package reliefweb implements the authenticated query client for the remote
// humanitarian data feed. The client performs no retries and no payload
// interpretation; failure policy belongs to the caller.
package reliefweb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError reports a non-2xx response from the remote source.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("reliefweb: unexpected status %d", e.Status)
}

// Client wraps the remote feed's query endpoint. All requests go to
// POST {base}/{resource}?appname={app} with a JSON body.
type Client struct {
	baseURL string
	appName string
	client  *http.Client
}

// NewClient constructs a Client for the given base URL and application name.
func NewClient(baseURL, appName string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		appName: appName,
		client:  &http.Client{Timeout: timeout},
	}
}

// Disasters queries the disasters resource and returns the matching field sets.
func (c *Client) Disasters(ctx context.Context, req Request) ([]DisasterFields, error) {
	env, err := c.query(ctx, "disasters", req)
	if err != nil {
		return nil, err
	}
	result := make([]DisasterFields, 0, len(env.Data))
	for _, item := range env.Data {
		var f DisasterFields
		if err := json.Unmarshal(item.Fields, &f); err != nil {
			return nil, fmt.Errorf("decoding disaster fields: %w", err)
		}
		result = append(result, f)
	}
	return result, nil
}

// Reports queries the reports resource and returns the matching field sets.
func (c *Client) Reports(ctx context.Context, req Request) ([]ReportFields, error) {
	env, err := c.query(ctx, "reports", req)
	if err != nil {
		return nil, err
	}
	result := make([]ReportFields, 0, len(env.Data))
	for _, item := range env.Data {
		var f ReportFields
		if err := json.Unmarshal(item.Fields, &f); err != nil {
			return nil, fmt.Errorf("decoding report fields: %w", err)
		}
		result = append(result, f)
	}
	return result, nil
}

func (c *Client) query(ctx context.Context, resource string, req Request) (*envelope, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	url := fmt.Sprintf("%s/%s?appname=%s", c.baseURL, resource, c.appName)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Status: resp.StatusCode, Body: string(b)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", resource, err)
	}
	return &env, nil
}
