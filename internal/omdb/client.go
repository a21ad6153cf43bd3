// Package omdb looks movie titles up in the OMDb catalog and normalizes
// the loosely typed answer into the fields a Movie stores.
//
// Base URL: http://www.omdbapi.com/  (query: apikey, t)
// Every ambiguous value degrades to a defined sentinel: a missing rating
// becomes 0.0, a missing poster becomes absent, a year range keeps its
// first year.
package omdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/s9096309/movie-shelf/internal/config"
)

const (
	defaultBaseURL = "http://www.omdbapi.com/"
	maxBodyBytes   = 1 << 20
)

// LookupCache stores raw catalog bodies by title.
type LookupCache interface {
	Get(ctx context.Context, title string) ([]byte, bool)
	Set(ctx context.Context, title string, body []byte)
}

// Client is an HTTP client for the OMDb API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   LookupCache
}

// Option customizes a Client.
type Option func(*Client)

// WithCache enables the lookup cache.
func WithCache(c LookupCache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) { cl.client = h }
}

// NewClient creates a Client. The timeout bounds every lookup; there is
// no retry.
func NewClient(cfg config.OMDBConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	c := &Client{
		apiKey:  cfg.APIKey,
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasAPIKey reports whether lookups can be attempted at all.
func (c *Client) HasAPIKey() bool { return c.apiKey != "" }

// Fetch looks title up and returns the normalized metadata.
func (c *Client) Fetch(ctx context.Context, title string) (Normalized, error) {
	if c.apiKey == "" {
		return Normalized{}, ErrMissingAPIKey
	}
	title = strings.TrimSpace(title)

	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, title); ok {
			if n, err := ParseResponse(title, body); err == nil {
				return n, nil
			}
		}
	}

	body, err := c.get(ctx, title)
	if err != nil {
		return Normalized{}, err
	}
	n, err := ParseResponse(title, body)
	if err != nil {
		return Normalized{}, err
	}
	if c.cache != nil {
		c.cache.Set(ctx, title, body)
	}
	return n, nil
}

func (c *Client) get(ctx context.Context, title string) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("omdb base url: %w", err)
	}
	q := u.Query()
	q.Set("apikey", c.apiKey)
	q.Set("t", title)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("omdb request build: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrNetwork, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}
	return body, nil
}
