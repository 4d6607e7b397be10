// Package unsplash resolves representative photos for destinations via the
// Unsplash search API.
package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/provider/resilience"
)

const (
	// ProviderName identifies this image provider.
	ProviderName = "unsplash"

	// DefaultBaseURL is the Unsplash API base URL.
	DefaultBaseURL = "https://api.unsplash.com"
)

// ErrNoImage is returned when the search yields no usable photo.
var ErrNoImage = errors.New("no image found")

// ClientConfig holds configuration for the Unsplash client.
type ClientConfig struct {
	// AccessKey is the Unsplash API access key (required).
	AccessKey string

	// BaseURL is the API base URL (optional, defaults to Unsplash).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Unsplash API client.
type Client struct {
	accessKey  string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Unsplash client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		if cfg.Registry != nil {
			clientCfg.Registry = cfg.Registry
		}
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Client{
		accessKey:  cfg.AccessKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// SearchImage returns the regular-size URL of the top photo for the query.
func (c *Client) SearchImage(ctx context.Context, query string) (string, error) {
	u := fmt.Sprintf("%s/search/photos?query=%s&client_id=%s&per_page=1",
		c.baseURL, url.QueryEscape(query), c.accessKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(searchResp.Results) == 0 || searchResp.Results[0].URLs.Regular == "" {
		return "", fmt.Errorf("%w: %q", ErrNoImage, query)
	}

	return searchResp.Results[0].URLs.Regular, nil
}

// Unsplash API response structures.

type searchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}
