// Package tripgen is the HTTP client for the itinerary generation backend.
package tripgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/itinerary"
	"github.com/tripweaver/tripweaver/internal/planner"
	"github.com/tripweaver/tripweaver/internal/provider/resilience"
)

// ProviderName identifies this generation provider.
const ProviderName = "tripgen"

// ClientConfig holds configuration for the generation backend client.
type ClientConfig struct {
	// BaseURL is the generation backend base URL (required).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client calls the generation backend.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new generation backend client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		if cfg.Registry != nil {
			clientCfg.Registry = cfg.Registry
		}
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GenerateItinerary requests a full trip plan from the backend. The backend
// also accepts the day count under "duration"; both fields are sent.
func (c *Client) GenerateItinerary(ctx context.Context, req planner.GenerationRequest) (*itinerary.Itinerary, error) {
	body := generateRequest{
		Location:   req.Location,
		Month:      req.Month,
		Days:       req.Days,
		Duration:   req.Days,
		Activities: req.Activities,
		Type:       string(req.Type),
	}

	var resp generateResponse
	if err := c.post(ctx, "/api/generateItinerary", body, &resp); err != nil {
		return nil, err
	}

	return resp.toItinerary(), nil
}

// SuggestDestinations requests seasonal destination ideas from the backend.
func (c *Client) SuggestDestinations(ctx context.Context, season planner.Season) (*planner.DestinationSuggestions, error) {
	body := destinationsRequest{Season: string(season)}

	var resp destinationsResponse
	if err := c.post(ctx, "/api/destinations", body, &resp); err != nil {
		return nil, err
	}

	return resp.toSuggestions(), nil
}

// post sends a JSON body and decodes a JSON response. Any transport failure,
// non-2xx status, or undecodable body maps to ErrGenerationFailed.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", planner.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: unexpected status code %d", planner.ErrGenerationFailed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", planner.ErrGenerationFailed, err)
	}

	return nil
}

// Generation backend request and response structures.

type generateRequest struct {
	Location   string   `json:"location"`
	Month      string   `json:"month"`
	Days       int      `json:"days"`
	Duration   int      `json:"duration"`
	Activities []string `json:"activities"`
	Type       string   `json:"type"`
}

type generateResponse struct {
	Title string `json:"title"`
	Info  struct {
		Weather string `json:"weather"`
	} `json:"info"`
	Itinerary []struct {
		Day        int    `json:"day"`
		Title      string `json:"title"`
		Activities []struct {
			Time        string `json:"time"`
			Location    string `json:"location"`
			Description string `json:"description"`
			Type        string `json:"type"`
		} `json:"activities"`
	} `json:"itinerary"`
	Accommodation *struct {
		Budget   accommodationTier `json:"budget"`
		MidRange accommodationTier `json:"mid_range"`
		Luxury   accommodationTier `json:"luxury"`
	} `json:"accommodation"`
	Budget struct {
		Flights       string `json:"flights"`
		Accommodation string `json:"accommodation"`
		DailyExpenses string `json:"daily_expenses"`
		TotalBudget   string `json:"total_budget"`
	} `json:"budget"`
}

type accommodationTier struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Amenities string `json:"amenities"`
}

// toItinerary converts the backend payload to the domain model. Activity
// type tags outside the closed enumeration decode to the Other fallback.
func (r *generateResponse) toItinerary() *itinerary.Itinerary {
	it := &itinerary.Itinerary{
		Title: r.Title,
		Info:  itinerary.Info{Weather: r.Info.Weather},
		Budget: itinerary.Budget{
			Flights:       r.Budget.Flights,
			Accommodation: r.Budget.Accommodation,
			DailyExpenses: r.Budget.DailyExpenses,
			TotalBudget:   r.Budget.TotalBudget,
		},
		Days: make([]itinerary.Day, 0, len(r.Itinerary)),
	}

	for _, d := range r.Itinerary {
		day := itinerary.Day{
			Number:     d.Day,
			Title:      d.Title,
			Activities: make([]itinerary.Activity, 0, len(d.Activities)),
		}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, itinerary.Activity{
				TimeRange:   a.Time,
				Location:    a.Location,
				Description: a.Description,
				Type:        itinerary.ParseActivityType(a.Type),
			})
		}
		it.Days = append(it.Days, day)
	}

	if r.Accommodation != nil {
		it.Accommodation = &itinerary.Accommodation{
			Budget:   itinerary.AccommodationTier(r.Accommodation.Budget),
			MidRange: itinerary.AccommodationTier(r.Accommodation.MidRange),
			Luxury:   itinerary.AccommodationTier(r.Accommodation.Luxury),
		}
	}

	return it
}

type destinationsRequest struct {
	Season string `json:"season"`
}

type destinationsResponse struct {
	DomesticDestinations []struct {
		Destination string `json:"destination"`
		Reason      string `json:"reason"`
	} `json:"domesticDestinations"`
	ForeignDestinations []struct {
		Destination string `json:"destination"`
		Reason      string `json:"reason"`
	} `json:"foreignDestinations"`
}

func (r *destinationsResponse) toSuggestions() *planner.DestinationSuggestions {
	out := &planner.DestinationSuggestions{
		Domestic: make([]planner.Destination, 0, len(r.DomesticDestinations)),
		Foreign:  make([]planner.Destination, 0, len(r.ForeignDestinations)),
	}

	for _, d := range r.DomesticDestinations {
		out.Domestic = append(out.Domestic, planner.Destination{Name: d.Destination, Reason: d.Reason})
	}
	for _, d := range r.ForeignDestinations {
		out.Foreign = append(out.Foreign, planner.Destination{Name: d.Destination, Reason: d.Reason})
	}

	return out
}
