// Package quoteapi fetches motivational quotes from a quotable.io style
// HTTP endpoint.
package quoteapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
)

// Fetcher is the remote quote source. Callers treat any error as a signal to
// fall back to the local pool.
type Fetcher interface {
	FetchRandom(ctx context.Context, tags string) (*models.Quote, error)
}

// Client fetches random quotes over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// randomResponse mirrors the quotable.io /random payload.
type randomResponse struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// FetchRandom requests a random quote, optionally filtered by a
// comma-separated tag list.
func (c *Client) FetchRandom(ctx context.Context, tags string) (*models.Quote, error) {
	u := c.baseURL + "/random"
	if tags != "" {
		u += "?tags=" + url.QueryEscape(tags)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var body randomResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	if body.Content == "" {
		return nil, fmt.Errorf("empty quote in response")
	}

	return &models.Quote{Text: body.Content, Author: body.Author}, nil
}
