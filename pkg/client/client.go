// Package client is a typed HTTP client for the Dash0 Times API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:3001"
	DefaultTimeout = 10 * time.Second
)

type Viewer struct {
	ID   string `json:"id"`
	Plan string `json:"plan"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration

	mu       sync.RWMutex
	demoUser *Viewer
}

type Option func(*Client)

// WithHTTPClient replaces the default client, whose timeout is DefaultTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. It is applied to a copy of the
// HTTP client once all options have run, so a client passed to
// WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// SetDemoUser makes every following request carry the viewer in the
// x-demo-user header. A nil viewer clears it.
func (c *Client) SetDemoUser(v *Viewer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.demoUser = v
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var res HealthResponse
	return &res, c.do(ctx, http.MethodGet, "/api/health", &res)
}

func (c *Client) Articles(ctx context.Context) (*ArticlesResponse, error) {
	var res ArticlesResponse
	return &res, c.do(ctx, http.MethodGet, "/api/articles", &res)
}

func (c *Client) Article(ctx context.Context, id string) (*ArticleResponse, error) {
	var res ArticleResponse
	return &res, c.do(ctx, http.MethodGet, "/api/articles/"+url.PathEscape(id), &res)
}

func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	var res SearchResponse
	return &res, c.do(ctx, http.MethodGet, "/api/search?q="+url.QueryEscape(query), &res)
}

func (c *Client) Recommendations(ctx context.Context) (*RecommendationResponse, error) {
	var res RecommendationResponse
	return &res, c.do(ctx, http.MethodGet, "/api/recommendation", &res)
}

func (c *Client) Analyze(ctx context.Context) (*AnalyzeResponse, error) {
	var res AnalyzeResponse
	return &res, c.do(ctx, http.MethodPost, "/api/analyze", &res)
}

func (c *Client) FlakyService(ctx context.Context) (*FlakyResponse, error) {
	var res FlakyResponse
	return &res, c.do(ctx, http.MethodGet, "/api/flaky-service", &res)
}

func (c *Client) DatabaseQuery(ctx context.Context) (*DatabaseQueryResponse, error) {
	var res DatabaseQueryResponse
	return &res, c.do(ctx, http.MethodGet, "/api/database-query", &res)
}

func (c *Client) ExternalWeather(ctx context.Context) (*WeatherResponse, error) {
	var res WeatherResponse
	return &res, c.do(ctx, http.MethodGet, "/api/external-weather", &res)
}

func (c *Client) FileOperations(ctx context.Context) (*FileOperationsResponse, error) {
	var res FileOperationsResponse
	return &res, c.do(ctx, http.MethodPost, "/api/file-operations", &res)
}

func (c *Client) CacheDemo(ctx context.Context, key string) (*CacheDemoResponse, error) {
	var res CacheDemoResponse
	return &res, c.do(ctx, http.MethodGet, "/api/cache-demo/"+url.PathEscape(key), &res)
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.RLock()
	viewer := c.demoUser
	c.mu.RUnlock()
	if viewer != nil {
		header, err := json.Marshal(viewer)
		if err != nil {
			return fmt.Errorf("encoding demo user: %w", err)
		}
		req.Header.Set("x-demo-user", string(header))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: decoding response: %v", ErrNetwork, err)
	}
	return nil
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	}
	return apiErr
}

func classifyTransportError(err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
