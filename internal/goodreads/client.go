// Package goodreads reads public shelf feeds and book detail pages.
package goodreads

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/listenupapp/shelfwrapped/internal/ratelimit"
)

const (
	defaultBaseURL   = "https://www.goodreads.com"
	defaultUserAgent = "ShelfWrapped/1.0"
	defaultPageSize  = 30
	defaultPageDelay = 250 * time.Millisecond
	defaultTimeout   = 15 * time.Second

	// One request every quarter second per host, burst of 4.
	defaultRPS   = 4.0
	defaultBurst = 4

	// Cap on bytes read from a single response.
	maxBodySize = 8 << 20
)

// Options configures a Client. Zero values fall back to defaults. A negative
// PageDelay turns the delay between feed pages off.
type Options struct {
	BaseURL   string
	UserAgent string
	PageSize  int
	PageDelay time.Duration
	Timeout   time.Duration
	RPS       float64
	Burst     int
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	if o.PageDelay == 0 {
		o.PageDelay = defaultPageDelay
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RPS <= 0 {
		o.RPS = defaultRPS
	}
	if o.Burst <= 0 {
		o.Burst = defaultBurst
	}
	return o
}

// Client is a rate-limited client for the public shelf feed and book pages.
type Client struct {
	http      *http.Client
	limiter   *ratelimit.KeyedRateLimiter
	logger    *slog.Logger
	baseURL   string
	userAgent string
	pageSize  int
	pageDelay time.Duration
}

// New creates a new client.
func New(opts Options, logger *slog.Logger) *Client {
	opts = opts.withDefaults()
	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter:   ratelimit.New(opts.RPS, opts.Burst),
		logger:    logger,
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		pageSize:  opts.PageSize,
		pageDelay: opts.PageDelay,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// PageSize is the number of items a full feed page carries.
func (c *Client) PageSize() int {
	return c.pageSize
}

// ShelfURL returns the public, human-readable URL of a profile's shelf.
func (c *Client) ShelfURL(profileID, shelf string) string {
	q := url.Values{"shelf": {shelf}}
	return fmt.Sprintf("%s/review/list/%s?%s", c.baseURL, url.PathEscape(profileID), q.Encode())
}

// doRequest executes a GET with rate limiting keyed by upstream host.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	if err := c.limiter.Wait(ctx, u.Host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("goodreads request",
		"path", path,
		"query", u.RawQuery,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
