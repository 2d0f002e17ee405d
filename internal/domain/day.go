package domain

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Day is a calendar day in the simulation. Delivery buckets are keyed by Day
// and lead times are applied with AddDays.
type Day = civil.Date

// DayOf returns the calendar day of t in t's location.
func DayOf(t time.Time) Day {
	return civil.DateOf(t)
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return d, nil
}
