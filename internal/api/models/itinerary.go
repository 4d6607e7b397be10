package models

// Activity is a single scheduled item within a day.
type Activity struct {
	// Time is the display range, e.g. "9:00 AM - 11:00 AM".
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Day is one day's ordered activity list.
type Day struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

// AccommodationTier describes one price tier of suggested lodging.
type AccommodationTier struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Amenities string `json:"amenities"`
}

// Accommodation groups lodging suggestions by price tier.
type Accommodation struct {
	Budget   AccommodationTier `json:"budget"`
	MidRange AccommodationTier `json:"mid_range"`
	Luxury   AccommodationTier `json:"luxury"`
}

// BudgetBreakdown is the estimated cost table. Amounts are display strings.
type BudgetBreakdown struct {
	Flights       string `json:"flights"`
	Accommodation string `json:"accommodation"`
	DailyExpenses string `json:"daily_expenses"`
	TotalBudget   string `json:"total_budget"`
}

// ItineraryInfo carries the overview blurbs.
type ItineraryInfo struct {
	Weather string `json:"weather"`
}

// Itinerary is the travel plan document as served by the API.
type Itinerary struct {
	ID             string          `json:"id,omitempty"`
	Title          string          `json:"title"`
	Info           ItineraryInfo   `json:"info"`
	Destination    string          `json:"destination,omitempty"`
	Month          string          `json:"month,omitempty"`
	Itinerary      []Day           `json:"itinerary"`
	Accommodation  *Accommodation  `json:"accommodation,omitempty"`
	Budget         BudgetBreakdown `json:"budget"`
	CreatedBy      string          `json:"createdBy,omitempty"`
	CreatorProfile string          `json:"creatorProfile,omitempty"`
	CreatedAt      *Timestamp      `json:"createdAt,omitempty"`

	// ShareToken is the composite "<itineraryId>-<ownerId>" token for the
	// public read-only view. Set on persisted itineraries only.
	ShareToken string `json:"shareToken,omitempty"`

	// Editable reports whether the requesting viewer may mutate this
	// itinerary.
	Editable bool `json:"editable"`
}

// SaveItineraryRequest is the body for the save endpoint. An absent or empty
// id makes the save a create; a present id makes it an update of that
// document.
type SaveItineraryRequest struct {
	ID            string          `json:"id,omitempty"`
	Title         string          `json:"title"`
	Info          ItineraryInfo   `json:"info"`
	Destination   string          `json:"destination,omitempty"`
	Month         string          `json:"month,omitempty"`
	Itinerary     []Day           `json:"itinerary"`
	Accommodation *Accommodation  `json:"accommodation,omitempty"`
	Budget        BudgetBreakdown `json:"budget"`
}

// ActivityInput is the body for activity add and edit endpoints.
type ActivityInput struct {
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// ItineraryList wraps a user's saved itineraries, newest first.
type ItineraryList struct {
	Items []Itinerary `json:"items"`
}
