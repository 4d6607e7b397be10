// Package itinerary provides the itinerary state model: the document shape,
// activity ordering, pure mutation operations, and persistence against the
// itinerary document store.
package itinerary

import (
	"errors"
	"time"
)

// Domain errors.
var (
	// ErrItineraryNotFound is the normal outcome for a lookup of a missing
	// document, not a fault.
	ErrItineraryNotFound = errors.New("itinerary not found")

	// ErrNotOwner is returned when a write is attempted by a viewer who did
	// not create the itinerary.
	ErrNotOwner = errors.New("not the itinerary owner")

	// ErrDayOutOfRange is returned when a mutation addresses a day index
	// outside the itinerary's day sequence.
	ErrDayOutOfRange = errors.New("day index out of range")

	// ErrActivityOutOfRange is returned when a mutation addresses an
	// activity index outside the day's activity sequence.
	ErrActivityOutOfRange = errors.New("activity index out of range")
)

// ActivityType classifies an activity for icon lookup. The wire form is an
// open string; unknown values decode to TypeOther so rendering stays total.
type ActivityType string

const (
	TypeSightseeing ActivityType = "sightseeing"
	TypeDining      ActivityType = "dining"
	TypeShopping    ActivityType = "shopping"
	TypeRelaxation  ActivityType = "relaxation"
	TypeBeach       ActivityType = "beach activity"
	TypeNightlife   ActivityType = "nightlife"
	TypeOther       ActivityType = "activity"
)

// knownTypes holds the recognized activity type tags.
var knownTypes = map[ActivityType]bool{
	TypeSightseeing: true,
	TypeDining:      true,
	TypeShopping:    true,
	TypeRelaxation:  true,
	TypeBeach:       true,
	TypeNightlife:   true,
	TypeOther:       true,
}

// ParseActivityType maps a wire tag to a closed ActivityType, falling back
// to TypeOther for anything unrecognized.
func ParseActivityType(s string) ActivityType {
	if knownTypes[ActivityType(s)] {
		return ActivityType(s)
	}
	return TypeOther
}

// Activity is a single scheduled item within a day.
type Activity struct {
	// TimeRange is the display range, e.g. "9:00 AM - 11:00 AM". The start
	// component drives ordering within the day.
	TimeRange   string       `json:"time" bson:"time"`
	Location    string       `json:"location" bson:"location"`
	Description string       `json:"description" bson:"description"`
	Type        ActivityType `json:"type" bson:"type"`
}

// Day is one day's ordered activity list. The position of a Day within the
// itinerary is fixed at generation time; only its activities change.
type Day struct {
	// Number is the 1-based day label shown to the user.
	Number     int        `json:"day" bson:"day"`
	Title      string     `json:"title" bson:"title"`
	Activities []Activity `json:"activities" bson:"activities"`
}

// AccommodationTier describes one price tier of suggested lodging.
type AccommodationTier struct {
	Name      string `json:"name" bson:"name"`
	Location  string `json:"location" bson:"location"`
	Amenities string `json:"amenities" bson:"amenities"`
}

// Accommodation groups lodging suggestions by price tier.
type Accommodation struct {
	Budget   AccommodationTier `json:"budget" bson:"budget"`
	MidRange AccommodationTier `json:"mid_range" bson:"mid_range"`
	Luxury   AccommodationTier `json:"luxury" bson:"luxury"`
}

// Budget is the estimated cost breakdown. Values are display strings as
// produced by the generation provider, not parsed amounts.
type Budget struct {
	Flights       string `json:"flights" bson:"flights"`
	Accommodation string `json:"accommodation" bson:"accommodation"`
	DailyExpenses string `json:"daily_expenses" bson:"daily_expenses"`
	TotalBudget   string `json:"total_budget" bson:"total_budget"`
}

// Info carries the overview blurbs for an itinerary.
type Info struct {
	Weather string `json:"weather" bson:"weather"`
}

// Itinerary is the full multi-day travel plan document. An itinerary with an
// empty ID has never been persisted; Save treats it as a create.
type Itinerary struct {
	ID             string         `json:"id,omitempty" bson:"itinerary_id,omitempty"`
	OwnerID        string         `json:"-" bson:"owner_id"`
	Title          string         `json:"title" bson:"title"`
	Info           Info           `json:"info" bson:"info"`
	Destination    string         `json:"destination,omitempty" bson:"destination,omitempty"`
	Month          string         `json:"month,omitempty" bson:"month,omitempty"`
	Days           []Day          `json:"itinerary" bson:"days"`
	Accommodation  *Accommodation `json:"accommodation,omitempty" bson:"accommodation,omitempty"`
	Budget         Budget         `json:"budget" bson:"budget"`
	CreatedBy      string         `json:"createdBy,omitempty" bson:"created_by,omitempty"`
	CreatorProfile string         `json:"creatorProfile,omitempty" bson:"creator_profile,omitempty"`
	CreatedAt      *time.Time     `json:"createdAt,omitempty" bson:"created_at,omitempty"`
}

// IsNew reports whether the itinerary has ever been persisted.
func (it *Itinerary) IsNew() bool {
	return it.ID == ""
}
