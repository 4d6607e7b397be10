// Package clock12 converts between 12-hour display times ("9:00 AM") and
// zero-padded 24-hour sort keys ("09:00"). Zero-padding makes lexicographic
// and chronological order coincide, so the 24-hour form can be compared as a
// plain string.
package clock12

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RangeSeparator splits the start and end of a display time range,
// e.g. "9:00 AM - 11:00 AM".
const RangeSeparator = " - "

// ErrInvalidTime is returned when a time string does not match the expected
// shape for its clock form.
var ErrInvalidTime = errors.New("invalid time")

// To24Hour converts a 12-hour display time ("H:MM AM|PM") to a zero-padded
// 24-hour key ("HH:MM"). Hour 12 maps to 00 in the AM case; PM hours other
// than 12 add 12.
func To24Hour(time12 string) (string, error) {
	clock, meridiem, ok := strings.Cut(time12, " ")
	if !ok {
		return "", fmt.Errorf("%w: %q: missing AM/PM marker", ErrInvalidTime, time12)
	}
	if meridiem != "AM" && meridiem != "PM" {
		return "", fmt.Errorf("%w: %q: marker must be AM or PM", ErrInvalidTime, time12)
	}

	hour, minute, err := splitClock(clock)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %s", ErrInvalidTime, time12, err)
	}
	if hour < 1 || hour > 12 {
		return "", fmt.Errorf("%w: %q: hour must be 1-12", ErrInvalidTime, time12)
	}

	if meridiem == "AM" && hour == 12 {
		hour = 0
	}
	if meridiem == "PM" && hour != 12 {
		hour += 12
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// To12Hour converts a zero-padded 24-hour key ("HH:MM") back to the 12-hour
// display form ("H:MM AM|PM"). Hour 00 displays as 12 AM, hour 12 as 12 PM.
func To12Hour(time24 string) (string, error) {
	hour, minute, err := splitClock(time24)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %s", ErrInvalidTime, time24, err)
	}
	if hour > 23 {
		return "", fmt.Errorf("%w: %q: hour must be 00-23", ErrInvalidTime, time24)
	}

	meridiem := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}

	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem), nil
}

// StartKey extracts the start of a display range ("9:00 AM - 11:00 AM") and
// returns its 24-hour sort key.
func StartKey(timeRange string) (string, error) {
	start, _, _ := strings.Cut(timeRange, RangeSeparator)
	return To24Hour(start)
}

// ValidRange reports whether both ends of a display time range parse as
// 12-hour times.
func ValidRange(timeRange string) bool {
	start, end, ok := strings.Cut(timeRange, RangeSeparator)
	if !ok {
		return false
	}
	if _, err := To24Hour(start); err != nil {
		return false
	}
	_, err := To24Hour(end)
	return err == nil
}

// splitClock parses "H:MM" or "HH:MM" into hour and minute values.
func splitClock(clock string) (int, int, error) {
	h, m, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, 0, errors.New("missing minute separator")
	}
	if len(h) < 1 || len(h) > 2 || len(m) != 2 {
		return 0, 0, errors.New("hour must be 1-2 digits and minute exactly 2")
	}
	// Atoi accepts a leading sign, which is not part of the H:MM shape.
	if !allDigits(h) {
		return 0, 0, errors.New("non-numeric hour")
	}
	if !allDigits(m) {
		return 0, 0, errors.New("non-numeric minute")
	}

	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, errors.New("non-numeric hour")
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, errors.New("non-numeric minute")
	}
	if minute > 59 {
		return 0, 0, errors.New("minute must be 00-59")
	}

	return hour, minute, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
