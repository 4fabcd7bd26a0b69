package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"golang.org/x/net/html"
)

// DefaultUserAgent identifies the scraper to servers.
const DefaultUserAgent = "fieldkit-scrape/1.0 (+https://github.com/fieldkit-hq/fieldkit)"

const (
	DefaultTimeout = 10 * time.Second
	DefaultDelay   = 1 * time.Second
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20

// Config controls fetch behavior.
type Config struct {
	// Timeout bounds each HTTP request.
	Timeout time.Duration
	// Delay is the minimum gap between consecutive requests.
	Delay time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Client fetches and parses web pages. It enforces a politeness
// delay between consecutive requests and is safe for concurrent use.
type Client struct {
	http      *http.Client
	userAgent string
	delay     time.Duration

	mu        sync.Mutex
	lastFetch time.Time
}

// New builds a Client. A zero Timeout or empty UserAgent falls back
// to the default; a zero Delay disables the politeness delay.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Delay < 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		delay:     cfg.Delay,
	}
}

// waitTurn blocks until the politeness delay since the previous
// request has elapsed, or the context is done.
func (c *Client) waitTurn(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	wait := c.delay - now.Sub(c.lastFetch)
	if wait < 0 {
		wait = 0
	}
	c.lastFetch = now.Add(wait)
	c.mu.Unlock()

	if wait == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fetch retrieves a URL and returns the body and status code.
// Non-2xx responses yield a *StatusError.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, int, error) {
	if err := c.waitTurn(ctx); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("fetch %s: read body: %w", rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, resp.StatusCode, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	return body, resp.StatusCode, nil
}

// Scrape fetches a URL and extracts everything: metadata, links,
// images, headings, tables and visible text.
func (c *Client) Scrape(ctx context.Context, rawURL string) (*Page, error) {
	body, status, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	page, err := Extract(rawURL, body)
	if err != nil {
		return nil, err
	}
	page.StatusCode = status
	return page, nil
}

// Select fetches a URL and returns the text of the elements matching
// a simple CSS-style selector (see Match for the supported syntax).
func (c *Client) Select(ctx context.Context, rawURL, selector string) ([]string, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}

	body, _, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	root, err := parseHTML(body)
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, n := range sel.Find(root) {
		texts = append(texts, nodeText(n))
	}
	return texts, nil
}

// Download saves the resource at rawURL to a local file.
func (c *Client) Download(ctx context.Context, rawURL, path string) error {
	body, _, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o644)
}

func parseHTML(body []byte) (*html.Node, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return root, nil
}

// resolveURL turns a possibly-relative href into an absolute URL.
// Unparseable hrefs come back unchanged.
func resolveURL(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
