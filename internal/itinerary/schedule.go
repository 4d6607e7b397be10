package itinerary

import (
	"sort"

	"github.com/tripweaver/tripweaver/pkg/clock12"
)

// SortActivities returns a new slice with the activities in ascending order
// of their range start, compared on the zero-padded 24-hour key. The sort is
// stable: ties keep their relative input order. Activities whose time range
// does not parse order after all parseable ones, also stably. Generated
// payloads are not validated before display, so the sort has to stay total.
func SortActivities(activities []Activity) []Activity {
	if len(activities) <= 1 {
		out := make([]Activity, len(activities))
		copy(out, activities)
		return out
	}

	type keyed struct {
		act   Activity
		key   string
		valid bool
	}

	entries := make([]keyed, len(activities))
	for i, a := range activities {
		key, err := clock12.StartKey(a.TimeRange)
		entries[i] = keyed{act: a, key: key, valid: err == nil}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].valid != entries[j].valid {
			return entries[i].valid
		}
		if !entries[i].valid {
			return false
		}
		return entries[i].key < entries[j].key
	})

	out := make([]Activity, len(entries))
	for i, e := range entries {
		out[i] = e.act
	}
	return out
}
