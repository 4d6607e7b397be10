package planner

import (
	"errors"
	"time"
)

// ErrGenerationFailed indicates the generation provider could not produce an
// itinerary. Partial responses are discarded, never surfaced.
var ErrGenerationFailed = errors.New("itinerary generation failed")

// TravelType describes who is travelling. Closed enumeration; requests with
// any other value are rejected before reaching the provider.
type TravelType string

const (
	TravelSolo    TravelType = "solo"
	TravelCouple  TravelType = "couple"
	TravelFamily  TravelType = "family"
	TravelFriends TravelType = "friends"
)

// Valid reports whether t is one of the known travel types.
func (t TravelType) Valid() bool {
	switch t {
	case TravelSolo, TravelCouple, TravelFamily, TravelFriends:
		return true
	}
	return false
}

// GenerationRequest carries the trip parameters sent to the generation
// provider.
type GenerationRequest struct {
	// Location is the destination to plan for, e.g. "Kyoto".
	Location string

	// Month is the month of travel as a display string, e.g. "April".
	Month string

	// Days is the trip length in days.
	Days int

	// Activities are the traveller's interests, e.g. "hiking", "food".
	Activities []string

	// Type is who is travelling.
	Type TravelType
}

// Season is a coarse travel season used for destination suggestions.
type Season string

const (
	SeasonSummer  Season = "Summer"
	SeasonMonsoon Season = "Monsoon"
	SeasonAutumn  Season = "Autumn"
	SeasonWinter  Season = "Winter"
)

// SeasonFor maps a month to its travel season: April through June is Summer,
// July through October is Monsoon, November and December are Autumn, and the
// remainder is Winter.
func SeasonFor(month time.Month) Season {
	switch {
	case month >= time.April && month <= time.June:
		return SeasonSummer
	case month >= time.July && month <= time.October:
		return SeasonMonsoon
	case month >= time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// Destination is one suggested place to travel.
type Destination struct {
	Name     string
	Reason   string
	ImageURL string
}

// DestinationSuggestions groups suggestions by whether travel crosses a
// border.
type DestinationSuggestions struct {
	Domestic []Destination
	Foreign  []Destination
}
