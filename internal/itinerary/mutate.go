package itinerary

import (
	"fmt"

	"github.com/tripweaver/tripweaver/pkg/clock12"
)

// The mutation operations are pure: they take an itinerary value and return
// a new one, cloning only the addressed day and its activity slice. Days not
// addressed keep their backing arrays, so a caller can detect an unsaved
// change cheaply instead of deep-comparing documents. No operation performs
// I/O; persisting the result is the caller's decision.

// AddActivity appends an activity to the day at dayIndex (0-based position
// in the day sequence) and re-sorts that day by start time.
func AddActivity(it Itinerary, dayIndex int, activity Activity) (Itinerary, error) {
	if err := ValidateActivity(activity); err != nil {
		return Itinerary{}, err
	}
	if dayIndex < 0 || dayIndex >= len(it.Days) {
		return Itinerary{}, fmt.Errorf("%w: day %d of %d", ErrDayOutOfRange, dayIndex, len(it.Days))
	}

	day := it.Days[dayIndex]
	activities := make([]Activity, 0, len(day.Activities)+1)
	activities = append(activities, day.Activities...)
	activities = append(activities, activity)
	day.Activities = SortActivities(activities)

	return replaceDay(it, dayIndex, day), nil
}

// EditActivity replaces the activity at activityIndex within the day at
// dayIndex and re-sorts that day.
func EditActivity(it Itinerary, dayIndex, activityIndex int, activity Activity) (Itinerary, error) {
	if err := ValidateActivity(activity); err != nil {
		return Itinerary{}, err
	}
	if dayIndex < 0 || dayIndex >= len(it.Days) {
		return Itinerary{}, fmt.Errorf("%w: day %d of %d", ErrDayOutOfRange, dayIndex, len(it.Days))
	}

	day := it.Days[dayIndex]
	if activityIndex < 0 || activityIndex >= len(day.Activities) {
		return Itinerary{}, fmt.Errorf("%w: activity %d of %d", ErrActivityOutOfRange, activityIndex, len(day.Activities))
	}

	activities := make([]Activity, len(day.Activities))
	copy(activities, day.Activities)
	activities[activityIndex] = activity
	day.Activities = SortActivities(activities)

	return replaceDay(it, dayIndex, day), nil
}

// DeleteActivity removes the activity at activityIndex within the day at
// dayIndex. The day is re-sorted for uniformity with add and edit, although
// removal cannot disturb an already sorted sequence.
func DeleteActivity(it Itinerary, dayIndex, activityIndex int) (Itinerary, error) {
	if dayIndex < 0 || dayIndex >= len(it.Days) {
		return Itinerary{}, fmt.Errorf("%w: day %d of %d", ErrDayOutOfRange, dayIndex, len(it.Days))
	}

	day := it.Days[dayIndex]
	if activityIndex < 0 || activityIndex >= len(day.Activities) {
		return Itinerary{}, fmt.Errorf("%w: activity %d of %d", ErrActivityOutOfRange, activityIndex, len(day.Activities))
	}

	activities := make([]Activity, 0, len(day.Activities)-1)
	activities = append(activities, day.Activities[:activityIndex]...)
	activities = append(activities, day.Activities[activityIndex+1:]...)
	day.Activities = SortActivities(activities)

	return replaceDay(it, dayIndex, day), nil
}

// ValidationError reports a rejected activity payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid activity: " + e.Field + " " + e.Message
}

// ValidateActivity checks an activity before it enters a day. The original
// client accepted unparseable time strings and silently mis-sorted them;
// rejecting them here is the fix.
func ValidateActivity(a Activity) error {
	if a.TimeRange == "" {
		return &ValidationError{Field: "time", Message: "is required"}
	}
	if !clock12.ValidRange(a.TimeRange) {
		return &ValidationError{Field: "time", Message: `must be "H:MM AM|PM - H:MM AM|PM"`}
	}
	if a.Location == "" {
		return &ValidationError{Field: "location", Message: "is required"}
	}
	return nil
}

// replaceDay returns a copy of the itinerary whose day sequence is a fresh
// slice with the addressed day swapped in. Other days are shared.
func replaceDay(it Itinerary, dayIndex int, day Day) Itinerary {
	days := make([]Day, len(it.Days))
	copy(days, it.Days)
	days[dayIndex] = day
	it.Days = days
	return it
}
