package punch

import "time"

// Window is a half-open time range [Start, End) used to scope duration
// aggregation.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Length returns End - Start.
func (w Window) Length() time.Duration {
	return w.End.Sub(w.Start)
}

// Interval is a span of active time derived from a pair of punches.
// An open interval (a trailing punch in with no matching out) has a nil End;
// absence is modeled explicitly rather than with a sentinel timestamp so
// duration math can never silently include a bogus endpoint.
type Interval struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// Open reports whether the interval has no recorded end.
func (iv Interval) Open() bool {
	return iv.End == nil
}

// Duration returns the closed interval's length. Open intervals have no
// concrete duration; use DurationUntil.
func (iv Interval) Duration() time.Duration {
	if iv.End == nil {
		return 0
	}
	return iv.End.Sub(iv.Start)
}

// DurationUntil returns the interval's length, clipping an open interval at
// asOf. An open interval starting after asOf contributes nothing.
func (iv Interval) DurationUntil(asOf time.Time) time.Duration {
	end := asOf
	if iv.End != nil {
		end = *iv.End
	}
	if !end.After(iv.Start) {
		return 0
	}
	return end.Sub(iv.Start)
}

// Overlap returns the portion of the interval that falls inside w, clipping
// an open interval at asOf first. An interval straddling a window boundary
// contributes only its overlapping part; this is what keeps "hours worked
// this week" correct when a punch pair spans midnight or a week boundary.
func (iv Interval) Overlap(w Window, asOf time.Time) time.Duration {
	end := asOf
	if iv.End != nil {
		end = *iv.End
	}

	start := iv.Start
	if start.Before(w.Start) {
		start = w.Start
	}
	if end.After(w.End) {
		end = w.End
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}
