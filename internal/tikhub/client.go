// Package tikhub provides a client for TikHub-style video metadata APIs.
package tikhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lepinkainen/foodmap/internal/cache"
	"github.com/lepinkainen/foodmap/internal/errors"
	"github.com/lepinkainen/foodmap/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://api.tikhub.io"
	videoInfoEndpoint    = "/api/v1/douyin/video/info"
	defaultTimeout       = 10 * time.Second
	defaultRatePerSecond = 2
)

// VideoInfo is the metadata retrieved for a video reference. All fields may
// be empty; a failed retrieval degrades to the zero value upstream.
type VideoInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url"`
}

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a TikHub API client.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
}

// NewClient creates a new TikHub API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: ratelimit.New("TikHub", defaultRatePerSecond),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the TikHub API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// GetVideoInfo fetches metadata for a video share URL, consulting the
// response cache first.
func (c *Client) GetVideoInfo(ctx context.Context, videoURL string) (*VideoInfo, error) {
	info, _, err := cache.GetOrFetch("tikhub_cache", videoURL, func() (*VideoInfo, error) {
		return c.fetchVideoInfo(ctx, videoURL)
	})
	return info, err
}

func (c *Client) fetchVideoInfo(ctx context.Context, videoURL string) (*VideoInfo, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	endpoint := c.baseURL + videoInfoEndpoint + "?url=" + url.QueryEscape(videoURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.NewRateLimitError("tikhub: rate limited")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tikhub: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var payload struct {
		Title string `json:"title"`
		Desc  string `json:"desc"`
		Cover string `json:"cover"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("tikhub: decode response: %w", err)
	}

	return &VideoInfo{
		Title:       payload.Title,
		Description: payload.Desc,
		CoverURL:    payload.Cover,
	}, nil
}
