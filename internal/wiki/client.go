// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wiki

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/pdiddy/wiki-search/internal/httputil"
	"github.com/pdiddy/wiki-search/pkg/types"
)

// maxBodyBytes bounds a single API response.
const maxBodyBytes = 8 << 20

// Fetcher retrieves the raw body of a search request.
type Fetcher interface {
	Fetch(ctx context.Context, reqURL string) ([]byte, error)
}

// Client performs GET requests against the MediaWiki API.
type Client struct {
	HTTP       *http.Client
	UserAgent  string
	MaxRetries int

	// Limiter throttles outbound requests. Nil means unlimited.
	Limiter *rate.Limiter
}

// NewClient builds a Client from cfg.
func NewClient(cfg types.HTTPConfig) *Client {
	c := &Client{
		HTTP:       &http.Client{Timeout: cfg.Timeout},
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
	}
	if cfg.RateLimit > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return c
}

// Fetch sends one GET to reqURL and returns the response body. Any status
// other than 200 is an error.
func (c *Client) Fetch(ctx context.Context, reqURL string) ([]byte, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("search API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading search API response: %w", err)
	}
	return body, nil
}
