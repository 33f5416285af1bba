package utils

import "time"

// DayKeyFormat is the calendar-day bucket used when grouping history entries
const DayKeyFormat = "2006-01-02"

// DayKey returns the UTC calendar day a timestamp falls on
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyFormat)
}

// SameUTCDay reports whether two timestamps fall on the same UTC calendar day
func SameUTCDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}
