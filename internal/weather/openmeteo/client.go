// Package openmeteo is the Open-Meteo client: geocoding plus historical
// daily temperature means.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/provider/resilience"
	"github.com/tripweaver/tripweaver/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openmeteo"

	// DefaultGeocodingURL is the Open-Meteo geocoding API base URL.
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

	// DefaultForecastURL is the Open-Meteo historical forecast API base URL.
	DefaultForecastURL = "https://historical-forecast-api.open-meteo.com/v1/forecast"
)

// dateLayout is the YYYY-MM-DD form the API expects and returns.
const dateLayout = "2006-01-02"

// ClientConfig holds configuration for the Open-Meteo client.
type ClientConfig struct {
	// GeocodingURL is the geocoding API URL (optional, defaults to
	// Open-Meteo's).
	GeocodingURL string

	// ForecastURL is the historical forecast API URL (optional, defaults
	// to Open-Meteo's).
	ForecastURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo API client. No API key is required.
type Client struct {
	geocodingURL string
	forecastURL  string
	httpClient   *resilience.Client
	logger       zerolog.Logger
}

// NewClient creates a new Open-Meteo client.
func NewClient(cfg ClientConfig) *Client {
	geocodingURL := cfg.GeocodingURL
	if geocodingURL == "" {
		geocodingURL = DefaultGeocodingURL
	}

	forecastURL := cfg.ForecastURL
	if forecastURL == "" {
		forecastURL = DefaultForecastURL
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
		geocodingURL: geocodingURL,
		forecastURL:  forecastURL,
		httpClient:   httpClient,
		logger:       cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Geocode resolves a place name to its best-ranked match.
func (c *Client) Geocode(ctx context.Context, place string) (*weather.Location, error) {
	u := fmt.Sprintf("%s?name=%s&count=1", c.geocodingURL, url.QueryEscape(place))

	var geoResp geocodingResponse
	if err := c.get(ctx, u, &geoResp); err != nil {
		return nil, err
	}

	if len(geoResp.Results) == 0 {
		return nil, fmt.Errorf("%w: %q", weather.ErrPlaceNotFound, place)
	}

	top := geoResp.Results[0]
	return &weather.Location{
		Name:    top.Name,
		Country: top.Country,
		Lat:     top.Latitude,
		Lon:     top.Longitude,
	}, nil
}

// DailyMeans fetches daily mean temperatures for a coordinate over an
// inclusive date range.
func (c *Client) DailyMeans(ctx context.Context, lat, lon float64, start, end time.Time) (*weather.TemperatureSeries, error) {
	u := fmt.Sprintf("%s?latitude=%.6f&longitude=%.6f&start_date=%s&end_date=%s&daily=temperature_2m_mean",
		c.forecastURL, lat, lon, start.Format(dateLayout), end.Format(dateLayout))

	var fcResp forecastResponse
	if err := c.get(ctx, u, &fcResp); err != nil {
		return nil, err
	}

	series := &weather.TemperatureSeries{
		Dates: make([]time.Time, 0, len(fcResp.Daily.Time)),
		Means: make([]float64, 0, len(fcResp.Daily.TemperatureMean)),
	}

	for i, day := range fcResp.Daily.Time {
		if i >= len(fcResp.Daily.TemperatureMean) {
			break
		}
		parsed, err := time.Parse(dateLayout, day)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", day, err)
		}
		series.Dates = append(series.Dates, parsed)
		series.Means = append(series.Means, fcResp.Daily.TemperatureMean[i])
	}

	return series, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// Open-Meteo API response structures.

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Daily struct {
		Time            []string  `json:"time"`
		TemperatureMean []float64 `json:"temperature_2m_mean"`
	} `json:"daily"`
}
