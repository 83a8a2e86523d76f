// Package amap provides a client for the AMap (高德) geocoding REST API.
package amap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/foodmap/internal/cache"
	"github.com/lepinkainen/foodmap/internal/place"
	"github.com/lepinkainen/foodmap/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://restapi.amap.com"
	geocodeEndpoint      = "/v3/geocode/geo"
	defaultTimeout       = 10 * time.Second
	defaultRatePerSecond = 3
)

// ErrNoResult is returned when the geocoder answers successfully but finds
// no coordinates for the query.
var ErrNoResult = fmt.Errorf("amap: no geocode result")

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an AMap geocoding client.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
}

// NewClient creates a new AMap geocoding client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: ratelimit.New("AMap", defaultRatePerSecond),
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

// WithBaseURL sets a custom base URL for the AMap API.
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

// Geocode resolves an address/city pair to coordinates, consulting the
// response cache first. The query mirrors the upstream convention: the city
// prefixes the street address when both are present.
func (c *Client) Geocode(ctx context.Context, address, city string) (*place.Coordinates, error) {
	query := city
	if address != "" {
		query = strings.TrimSpace(city + " " + address)
	}

	coords, _, err := cache.GetOrFetch("amap_cache", query+"|"+city, func() (*place.Coordinates, error) {
		return c.fetchCoordinates(ctx, query, city)
	})
	return coords, err
}

func (c *Client) fetchCoordinates(ctx context.Context, address, city string) (*place.Coordinates, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("address", address)
	params.Set("city", city)

	endpoint := c.baseURL + geocodeEndpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("amap: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var payload struct {
		Status   string `json:"status"`
		Geocodes []struct {
			Location string `json:"location"`
		} `json:"geocodes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("amap: decode response: %w", err)
	}

	if payload.Status != "1" || len(payload.Geocodes) == 0 {
		return nil, ErrNoResult
	}

	return parseLocation(payload.Geocodes[0].Location)
}

// parseLocation splits AMap's "longitude,latitude" payload.
func parseLocation(location string) (*place.Coordinates, error) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("amap: malformed location %q", location)
	}

	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("amap: malformed longitude %q", parts[0])
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("amap: malformed latitude %q", parts[1])
	}

	return &place.Coordinates{Lng: lng, Lat: lat}, nil
}
