// Package ebay acquires auction listing and product detail records by
// scraping eBay's public search and item pages. The client hands every
// field back as the raw display text; downstream analytics own all
// numeric parsing.
package ebay

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/time/rate"

	"github.com/guarzo/auctionscope/internal/cache"
)

const (
	defaultBaseURL = "https://www.ebay.com"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	searchCacheTTL  = 1 * time.Hour
	productCacheTTL = 6 * time.Hour
)

// Client fetches auction search results and product detail pages.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	cache       *cache.Cache
}

// Config controls client construction. Zero values get conservative
// defaults.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	RequestEvery time.Duration
	Cache        *cache.Cache
}

// NewClient creates a scraping client. The cache is optional.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	every := cfg.RequestEvery
	if every == 0 {
		every = 1 * time.Second
	}

	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(rate.Every(every), 3),
		cache:       cfg.Cache,
	}
}

// Available reports whether the client can make requests.
func (c *Client) Available() bool {
	return c != nil && c.baseURL != ""
}

// fetch performs a rate-limited GET with browser headers and returns
// the decoded body.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	reader, err := decodedReader(resp)
	if err != nil {
		return nil, fmt.Errorf("create reader: %w", err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Cache-Control", "max-age=0")
}

func decodedReader(resp *http.Response) (io.Reader, error) {
	var reader io.Reader = resp.Body

	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		reader = gzipReader
	case "br":
		reader = brotli.NewReader(resp.Body)
	}

	return reader, nil
}
