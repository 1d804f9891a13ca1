package liveresults

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Result holds the day's announced session results. A missing session is an
// empty string; the caller decides how to treat absence.
type Result struct {
	Morning string
	Evening string
}

// Client is a read-only client for the external live 2D results feed.
type Client struct {
	BaseURL string
	client  *http.Client
}

// NewClient creates a new feed client
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// livePayload mirrors the feed's JSON shape. The result array carries the
// day's announcements in order; index 1 is the mid-day result and index 3
// (or 2 on short days) the evening result.
type livePayload struct {
	Result []struct {
		Twod string `json:"twod"`
	} `json:"result"`
}

// FetchToday retrieves today's morning and evening results
func (c *Client) FetchToday(ctx context.Context) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/live", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("live feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("live feed returned status %d", resp.StatusCode)
	}

	var payload livePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("live feed returned malformed payload: %w", err)
	}

	result := &Result{}
	if len(payload.Result) > 1 {
		result.Morning = payload.Result[1].Twod
	}
	if len(payload.Result) > 3 {
		result.Evening = payload.Result[3].Twod
	} else if len(payload.Result) > 2 {
		result.Evening = payload.Result[2].Twod
	}
	return result, nil
}
