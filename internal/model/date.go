package model

import "time"

// DateLayout is the calendar-day key format used by habit and challenge
// entries.
const DateLayout = "2006-01-02"

// DateKey formats t as a calendar-day key in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a calendar-day key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, key, loc)
}

// StartOfDay returns midnight at the beginning of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns midnight at the beginning of the day after t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}
