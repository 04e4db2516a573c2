// Package cli provides the CLI presentation layer for the tally application.
// It handles command-line output formatting and shared command dependencies.
package cli

import (
	"fmt"
	"time"

	"github.com/xolan/tally/internal/punch"
)

// FormatDuration formats a duration as a human-readable string
// Examples: "30m", "2h", "1h 30m"
func FormatDuration(d time.Duration) string {
	totalMinutes := int(d.Minutes())
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm", totalMinutes)
	}
	hours := totalMinutes / 60
	mins := totalMinutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatHours formats a duration as fractional hours for reports.
// Example: 90 minutes formats as "1.50h".
func FormatHours(d time.Duration) string {
	return fmt.Sprintf("%.2fh", d.Hours())
}

// FormatState formats a clock state for display
func FormatState(s punch.State) string {
	if s == punch.Active {
		return "ACTIVE"
	}
	return "passive"
}

// FormatPunchTime formats a punch timestamp relative to now.
// Returns "today at 3:04 PM" for same-day punches, otherwise the full date.
func FormatPunchTime(ts, now time.Time) string {
	clock := ts.Format("3:04 PM")
	sameDay := ts.Year() == now.Year() &&
		ts.Month() == now.Month() &&
		ts.Day() == now.Day()
	if sameDay {
		return fmt.Sprintf("today at %s", clock)
	}
	return fmt.Sprintf("%s at %s", ts.Format("Mon Jan 2"), clock)
}

// FormatWindowForDisplay formats a report window for human-readable display.
// The window is half-open, so the shown end date is the last included day.
func FormatWindowForDisplay(w punch.Window) string {
	lastDay := w.End.Add(-time.Nanosecond)
	if w.Start.Format("2006-01-02") == lastDay.Format("2006-01-02") {
		return w.Start.Format("Mon, Jan 2, 2006")
	}
	if w.Start.Year() == lastDay.Year() {
		return fmt.Sprintf("%s - %s", w.Start.Format("Jan 2"), lastDay.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", w.Start.Format("Jan 2, 2006"), lastDay.Format("Jan 2, 2006"))
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
