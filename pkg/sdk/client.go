package mflix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAggregationTimeout = 15 * time.Second

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	httpClient         *http.Client
	aggregationTimeout time.Duration
}

// WithHTTPClient sets the underlying HTTP client.
// Defaults to http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithAggregationTimeout bounds aggregation report calls.
// Defaults to 15s.
func WithAggregationTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.aggregationTimeout = d
	})
}

// Client is the mflix SDK entry point.
type Client struct {
	baseURL            string
	httpClient         *http.Client
	aggregationTimeout time.Duration
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	cfg := &clientConfig{
		httpClient:         http.DefaultClient,
		aggregationTimeout: defaultAggregationTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	return &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		httpClient:         cfg.httpClient,
		aggregationTimeout: cfg.aggregationTimeout,
	}
}

// Movies returns the movie CRUD service.
func (c *Client) Movies() *MovieService {
	return &MovieService{client: c}
}

// Search returns the search service.
func (c *Client) Search() *SearchService {
	return &SearchService{client: c}
}

// Reports returns the aggregation report service.
func (c *Client) Reports() *ReportService {
	return &ReportService{client: c, timeout: c.aggregationTimeout}
}

// do performs an HTTP request and decodes the response envelope.
// A non-success envelope is returned as an *APIError wrapping the
// matching sentinel.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*PageInfo, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s %s", ErrTimeout, method, path)
		}
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Message}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			if env.Error.Message != "" {
				apiErr.Message = env.Error.Message
			}
		}
		return nil, apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return env.Pagination, nil
}
