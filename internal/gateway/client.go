// Package gateway talks to the external data sources: the Blockscout REST
// explorer, the lending subgraph, and the GeckoTerminal price API. All
// responses flow through a TTL cache and retried HTTP so the analysis layer
// never sees transient upstream noise.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Config locates the upstream services and sets retry/cache behavior.
// Zero fields fall back to defaults.
type Config struct {
	BlockscoutURL string
	SubgraphURL   string
	GeckoURL      string
	CacheTTL      time.Duration
	MaxRetries    int
	RetryBackoff  time.Duration
	HTTPTimeout   time.Duration
}

// Client is the shared transport under the per-source fetchers.
type Client struct {
	cfg   Config
	http  *http.Client
	cache Cache
	log   *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCache replaces the default in-memory cache.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger replaces the default no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}

	c := &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.HTTPTimeout},
		cache: NewMemoryCache(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON fetches url and decodes the body into out. When useCache is set,
// a fresh cached body short-circuits the request and successful bodies are
// stored for the configured TTL.
func (c *Client) getJSON(ctx context.Context, url string, useCache bool, out any) error {
	key := "GET:" + url

	if useCache {
		if body, ok := c.cache.Get(ctx, key); ok {
			return json.Unmarshal(body, out)
		}
	}

	body, err := c.doRetried(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	})
	if err != nil {
		return err
	}

	if useCache {
		c.cache.Set(ctx, key, body, c.cfg.CacheTTL)
	}
	return json.Unmarshal(body, out)
}

// postJSON sends a JSON payload and decodes the response into out. POST
// responses are cached the same way as GETs, keyed on the payload.
func (c *Client) postJSON(ctx context.Context, url string, payload any, useCache bool, out any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	key := "POST:" + url + ":" + string(encoded)

	if useCache {
		if body, ok := c.cache.Get(ctx, key); ok {
			return json.Unmarshal(body, out)
		}
	}

	body, err := c.doRetried(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return err
	}

	if useCache {
		c.cache.Set(ctx, key, body, c.cfg.CacheTTL)
	}
	return json.Unmarshal(body, out)
}

func (c *Client) doRetried(ctx context.Context, build func(context.Context) (*http.Request, error)) ([]byte, error) {
	var body []byte
	err := withRetry(ctx, c.cfg.MaxRetries, c.cfg.RetryBackoff, func(ctx context.Context) error {
		req, err := build(ctx)
		if err != nil {
			return err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("%s %s: status %d", req.Method, req.URL, resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		c.log.Warn("upstream request failed", zap.Error(err))
		return nil, err
	}
	return body, nil
}
