// Package timeutil constructs the half-open report windows (days, weeks,
// months, custom ranges) used to scope duration aggregation. All functions
// take an explicit reference time so callers and tests control the clock.
package timeutil

import (
	"time"

	"github.com/xolan/tally/internal/punch"
)

// StartOfDay returns midnight of the given day in the same location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Day returns the window covering the calendar day of ref.
func Day(ref time.Time) punch.Window {
	start := StartOfDay(ref)
	return punch.Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// Yesterday returns the window covering the day before ref.
func Yesterday(ref time.Time) punch.Window {
	return Day(ref.AddDate(0, 0, -1))
}

// startOfWeek returns the first day of the week containing t. weekStart is
// "monday" or "sunday"; anything else falls back to monday.
func startOfWeek(t time.Time, weekStart string) time.Time {
	weekday := int(t.Weekday()) // Sunday == 0

	var offset int
	if weekStart == "sunday" {
		offset = weekday
	} else {
		offset = weekday - 1
		if offset < 0 { // Sunday belongs to the previous monday-based week
			offset = 6
		}
	}
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// Week returns the window covering the week of ref.
func Week(ref time.Time, weekStart string) punch.Window {
	start := startOfWeek(ref, weekStart)
	return punch.Window{Start: start, End: start.AddDate(0, 0, 7)}
}

// LastWeek returns the window covering the week before ref's.
func LastWeek(ref time.Time, weekStart string) punch.Window {
	return Week(ref.AddDate(0, 0, -7), weekStart)
}

// Month returns the window covering the calendar month of ref. AddDate
// handles month lengths, so no day arithmetic is needed.
func Month(ref time.Time) punch.Window {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return punch.Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// LastMonth returns the window covering the month before ref's.
func LastMonth(ref time.Time) punch.Window {
	return Month(Month(ref).Start.AddDate(0, 0, -1))
}

// LastDays returns the window covering the n complete days ending with
// ref's day (inclusive).
func LastDays(ref time.Time, n int) punch.Window {
	end := StartOfDay(ref).AddDate(0, 0, 1)
	return punch.Window{Start: end.AddDate(0, 0, -n), End: end}
}

// Range returns the window from the from date through the to date,
// both inclusive as calendar days.
func Range(from, to time.Time) punch.Window {
	return punch.Window{
		Start: StartOfDay(from),
		End:   StartOfDay(to).AddDate(0, 0, 1),
	}
}

// AllTime returns a window wide enough to contain any recorded punch.
func AllTime() punch.Window {
	return punch.Window{
		Start: time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
