package training

import (
	"math"
	"time"
)

// dayBounds returns the calendar day containing t as a half-open interval
// [midnight, next midnight) in t's location.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// weekBounds returns the ISO calendar week containing t as a half-open
// interval [Monday midnight, next Monday midnight).
func weekBounds(t time.Time) (time.Time, time.Time) {
	dayStart, _ := dayBounds(t)
	// time.Weekday puts Sunday at 0; shift so Monday is 0.
	offset := (int(t.Weekday()) + 6) % 7
	start := dayStart.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// monthBounds returns the calendar month containing t as a half-open interval.
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// daysBetween returns the number of whole calendar days from a to b,
// ignoring time of day. Rounding absorbs DST-shortened and -lengthened days.
func daysBetween(a, b time.Time) int {
	aStart, _ := dayBounds(a)
	bStart, _ := dayBounds(b.In(a.Location()))
	return int(math.Round(bStart.Sub(aStart).Hours() / 24))
}
