package timeutil

import (
	"fmt"
	"time"
)

// ParseDate parses a date string in YYYY-MM-DD or DD/MM/YYYY format in the
// given location, returning midnight of that day. ISO format is tried first
// so ambiguous inputs resolve predictably.
func ParseDate(input string, loc *time.Location) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2025-01-15)")
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.ParseInLocation("2006-01-02", input, loc); err == nil {
		return StartOfDay(t), nil
	}
	if t, err := time.ParseInLocation("02/01/2006", input, loc); err == nil {
		return StartOfDay(t), nil
	}

	return time.Time{}, fmt.Errorf("invalid date format %q (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2025-01-15 or 15/01/2025)", input)
}

// ParseTimestamp parses a punch timestamp: either a full date-time
// ("YYYY-MM-DD HH:MM" or RFC 3339) or a bare time of day ("HH:MM",
// interpreted on ref's date).
func ParseTimestamp(input string, ref time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.ParseInLocation(time.RFC3339, input, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", input, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("15:04", input, loc); err == nil {
		day := StartOfDay(ref.In(loc))
		return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q (use HH:MM, YYYY-MM-DD HH:MM, or RFC 3339)", input)
}
