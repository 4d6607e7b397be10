// Package weather produces destination weather summaries from recent
// observed temperatures.
package weather

import (
	"errors"
	"time"
)

// ErrPlaceNotFound is returned when a destination cannot be geocoded.
var ErrPlaceNotFound = errors.New("place not found")

// Location is a geocoded place.
type Location struct {
	Name    string
	Country string
	Lat     float64
	Lon     float64
}

// TemperatureSeries holds daily mean temperatures for a location over a date
// range, in degrees Celsius.
type TemperatureSeries struct {
	Dates []time.Time
	Means []float64
}

// Average returns the mean of the daily means, and whether the series holds
// any data at all.
func (s *TemperatureSeries) Average() (float64, bool) {
	if len(s.Means) == 0 {
		return 0, false
	}

	var sum float64
	for _, m := range s.Means {
		sum += m
	}
	return sum / float64(len(s.Means)), true
}
