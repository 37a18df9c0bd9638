// Package ghclient talks to the GitHub REST API v3.
//
// It covers the handful of endpoints a repository scan needs: repo
// metadata, branch heads, recursive trees and file contents. Responses
// are normalized into schema types and failures into the typed errors
// from internal/contract so callers can branch on them.
package ghclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 30 * time.Second
	userAgent      = "smellscan/1.0"
	apiVersion     = "2022-11-28"
)

// Client is a GitHub REST API client scoped to the scan endpoints.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	limiter *rate.Limiter
}

var _ contract.GitHubClient = &Client{} // Compile-time check

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host. Used with
// httptest servers and GitHub Enterprise installs.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithToken sets the bearer token for authenticated requests.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLimiter replaces the client-side rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient creates a GitHub client with pooled transport and a
// conservative client-side rate limit that keeps bursts of tree and
// content requests under the API abuse thresholds.
func NewClient(opts ...Option) *Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = defaultTimeout
	c := &Client{
		http:    httpClient,
		baseURL: defaultBaseURL,
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET against path, decodes the JSON body into out and
// maps non-2xx statuses onto the contract error taxonomy.
func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// statusError converts an error response into a typed contract error.
func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return &contract.NotFoundError{Resource: resp.Request.URL.Path}
	case http.StatusForbidden, http.StatusTooManyRequests:
		return &contract.RateLimitError{StatusCode: resp.StatusCode}
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &contract.UpstreamError{
		StatusCode: resp.StatusCode,
		Msg:        fmt.Sprintf("github api: %s", string(body)),
	}
}
