// Package enrichment implements the serving-layer boundary client that asks
// for derived analysis to be computed if it is missing. The operation on the
// other side fetches documents, parses them and calls a remote model, so the
// client timeout is far above the usual default.
package enrichment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client triggers analysis computation on the serving layer.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient constructs a Client for the given serving-layer base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// UpdateAnalysis requests compute-if-absent of one analysis kind for one
// disaster. Idempotent on the serving side: an already computed analysis is
// returned as-is. An empty language leaves the serving-layer default.
func (c *Client) UpdateAnalysis(ctx context.Context, disasterID int64, analysisType, language string) error {
	q := url.Values{}
	q.Set("analysis_type", analysisType)
	if language != "" {
		q.Set("language", language)
	}

	u := fmt.Sprintf("%s/disasters/%d/analysis?%s", c.baseURL, disasterID, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s analysis for disaster %d: %w", analysisType, disasterID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s analysis for disaster %d: status %d: %s", analysisType, disasterID, resp.StatusCode, string(b))
	}
	return nil
}
