package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

const userAgent = "titan-market/1.0 (github.com)"

// Client is a concurrency-limited HTTP client for the game's public feeds.
type Client struct {
	http    *http.Client
	baseURL string
	sem     chan struct{}
	group   singleflight.Group
}

// NewClient creates a feed client for the given base URL.
// maxConcurrent bounds in-flight requests across all feeds.
func NewClient(baseURL string, timeout time.Duration, maxConcurrent int) *Client {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		sem:     make(chan struct{}, maxConcurrent),
	}
}

// HealthCheck pings the feed host to verify connectivity.
func (c *Client) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/item/last/all", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == 200
}

// FetchItems fetches the full item-definition catalog, keyed by item uid.
func (c *Client) FetchItems(ctx context.Context) (map[string]ItemDefinition, error) {
	var items map[string]ItemDefinition
	if err := c.getJSON(ctx, c.baseURL+"/assets/gameData/items.json", &items); err != nil {
		return nil, fmt.Errorf("item feed: %w", err)
	}
	return items, nil
}

// FetchTexts fetches the localization feed for a language and returns its
// flat uid-suffixed text table ("<uid>_name", "<uid>_desc", ...).
func (c *Client) FetchTexts(ctx context.Context, language string) (map[string]string, error) {
	var payload struct {
		Texts map[string]string `json:"texts"`
	}
	url := fmt.Sprintf("%s/assets/gameData/texts_%s.json", c.baseURL, language)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("localization feed (%s): %w", language, err)
	}
	if payload.Texts == nil {
		return map[string]string{}, nil
	}
	return payload.Texts, nil
}

// FetchLive fetches the latest trade records for every listing.
// Concurrent callers are coalesced into a single request; a null data
// payload decodes to an empty slice, not an error.
func (c *Client) FetchLive(ctx context.Context) ([]TradeRecord, error) {
	result, err, _ := c.group.Do("live", func() (interface{}, error) {
		var payload struct {
			Data []TradeRecord `json:"data"`
		}
		if err := c.getJSON(ctx, c.baseURL+"/api/item/last/all", &payload); err != nil {
			return nil, fmt.Errorf("trade feed: %w", err)
		}
		return payload.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]TradeRecord), nil
}

// getJSON fetches a URL and decodes JSON into dst.
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}) error {
	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
	case <-ctx.Done():
		return ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("feed %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}
