package domain

import (
	"errors"
	"time"
)

// DayKeyLayout is the canonical calendar-day key format. Every day-partitioned
// record in the store is keyed by a string in this layout.
const DayKeyLayout = "2006-01-02"

// ReferenceZone is the fixed zone in which day boundaries are computed.
// Using a single zone keeps "today" identical across devices and makes
// midnight transitions (carry-forward, ring resets) deterministic.
var ReferenceZone = time.UTC

var ErrInvalidDayKey = errors.New("invalid day key (must be YYYY-MM-DD)")

// DayKey returns the calendar-day key for an instant as seen in the
// reference zone.
func DayKey(t time.Time) string {
	return t.In(ReferenceZone).Format(DayKeyLayout)
}

// ParseDayKey converts a day key back into a midnight instant in the
// reference zone.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, key, ReferenceZone)
	if err != nil {
		return time.Time{}, ErrInvalidDayKey
	}
	return t, nil
}

// IsWeekend reports whether the instant falls on a Saturday or Sunday in the
// reference zone.
func IsWeekend(t time.Time) bool {
	wd := t.In(ReferenceZone).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
