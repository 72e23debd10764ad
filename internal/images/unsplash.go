package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Searcher finds an image URL for a free text query. An empty URL with a
// nil error means nothing matched.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

const DefaultUnsplashURL = "https://api.unsplash.com"

// UnsplashConfig holds Unsplash API settings
type UnsplashConfig struct {
	AccessKey         string
	BaseURL           string
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
}

// UnsplashClient searches Unsplash photos behind a token bucket
type UnsplashClient struct {
	client    *http.Client
	baseURL   string
	accessKey string
	limiter   *rate.Limiter
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
	Errors []string `json:"errors"`
}

// NewUnsplashClient creates a client. The access key is required.
func NewUnsplashClient(cfg UnsplashConfig) (*UnsplashClient, error) {
	if cfg.AccessKey == "" {
		return nil, fmt.Errorf("unsplash: access key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultUnsplashURL
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}

	return &UnsplashClient{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   cfg.BaseURL,
		accessKey: cfg.AccessKey,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}, nil
}

// Search returns the regular size URL of the first landscape result
func (u *UnsplashClient) Search(ctx context.Context, query string) (string, error) {
	if err := u.limiter.Wait(ctx); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unsplash error (status %d): %v", resp.StatusCode, sr.Errors)
	}

	if len(sr.Results) == 0 {
		return "", nil
	}
	return sr.Results[0].URLs.Regular, nil
}
