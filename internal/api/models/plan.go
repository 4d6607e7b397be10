package models

// TravelType is the party composition for a trip.
type TravelType string

const (
	TravelSolo    TravelType = "solo"
	TravelCouple  TravelType = "couple"
	TravelFamily  TravelType = "family"
	TravelFriends TravelType = "friends"
)

// Valid reports whether the travel type is one of the known values.
func (t TravelType) Valid() bool {
	switch t {
	case TravelSolo, TravelCouple, TravelFamily, TravelFriends:
		return true
	}
	return false
}

// GenerateItineraryRequest is the body for the generation endpoints.
type GenerateItineraryRequest struct {
	Location   string     `json:"location"`
	Month      string     `json:"month"`
	Days       int        `json:"days"`
	Activities []string   `json:"activities"`
	Type       TravelType `json:"type"`
}

// Validate checks the generation request.
func (r *GenerateItineraryRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Location == "" {
		errs = append(errs, FieldError{Field: "location", Message: "is required"})
	}
	if r.Month == "" {
		errs = append(errs, FieldError{Field: "month", Message: "is required"})
	}
	if r.Days < 1 || r.Days > 30 {
		errs = append(errs, FieldError{Field: "days", Message: "must be between 1 and 30"})
	}
	if !r.Type.Valid() {
		errs = append(errs, FieldError{Field: "type", Message: "must be one of solo, couple, family, friends"})
	}

	return errs
}

// EnqueueGenerationResponse acknowledges an async generation job.
type EnqueueGenerationResponse struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

// Destination is a suggested place to travel, with an optional image
// resolved from the photo provider.
type Destination struct {
	Destination string `json:"destination"`
	Reason      string `json:"reason"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// DestinationSuggestions groups seasonal suggestions by reach.
type DestinationSuggestions struct {
	DomesticDestinations []Destination `json:"domesticDestinations"`
	ForeignDestinations  []Destination `json:"foreignDestinations"`
}
