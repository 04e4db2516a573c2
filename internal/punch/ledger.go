package punch

import "time"

// Ledger is the ordered history of punches for one charge code. Insertion
// order is chronological order; Append enforces it rather than assuming it.
// The zero value is an empty, passive ledger ready for use.
type Ledger struct {
	events []Event
}

// NewLedger builds a ledger from already-validated events. Use Validate
// first when the events come from persisted (untrusted) data.
func NewLedger(events []Event) Ledger {
	return Ledger{events: events}
}

// Events returns a copy of the recorded events in chronological order.
func (l *Ledger) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of recorded events.
func (l *Ledger) Len() int {
	return len(l.events)
}

// State derives the current clock state from the last event: Passive when
// the ledger is empty or ends on an out punch, Active when it ends on an in.
func (l *Ledger) State() State {
	if len(l.events) == 0 || l.events[len(l.events)-1].Kind == Out {
		return Passive
	}
	return Active
}

// Append records a punch event. It fails with *OutOfOrderError if ts is not
// strictly after the last recorded timestamp, and with *SequenceError if the
// kind does not alternate correctly (the first event must be In). A failed
// append leaves the ledger exactly as it was. On success the resulting state
// is returned.
func (l *Ledger) Append(ts time.Time, kind Kind) (State, error) {
	if n := len(l.events); n > 0 {
		last := l.events[n-1].Timestamp
		if !ts.After(last) {
			return l.State(), &OutOfOrderError{Timestamp: ts, Last: last}
		}
	}

	expected := In
	if l.State() == Active {
		expected = Out
	}
	if kind != expected {
		return l.State(), &SequenceError{Kind: kind}
	}

	l.events = append(l.events, Event{Timestamp: ts, Kind: kind})
	return l.State(), nil
}

// ClosedIntervals returns all paired (in, out) intervals in chronological
// order. A trailing unmatched in punch is excluded; see OpenInterval.
func (l *Ledger) ClosedIntervals() []Interval {
	var intervals []Interval
	for i := 0; i+1 < len(l.events); i += 2 {
		end := l.events[i+1].Timestamp
		intervals = append(intervals, Interval{Start: l.events[i].Timestamp, End: &end})
	}
	return intervals
}

// OpenInterval returns the trailing unmatched in punch paired with asOf when
// the ledger is active. The second return value reports presence.
func (l *Ledger) OpenInterval(asOf time.Time) (Interval, bool) {
	if l.State() != Active {
		return Interval{}, false
	}
	return Interval{Start: l.events[len(l.events)-1].Timestamp}, true
}

// TotalDuration sums the closed intervals' overlap with window, plus the
// open interval's overlap (if any) clipped at asOf.
func (l *Ledger) TotalDuration(window Window, asOf time.Time) time.Duration {
	var total time.Duration
	for _, iv := range l.ClosedIntervals() {
		total += iv.Overlap(window, asOf)
	}
	if open, ok := l.OpenInterval(asOf); ok {
		total += open.Overlap(window, asOf)
	}
	return total
}

// First returns the timestamp of the first recorded event. The second
// return value is false for an empty ledger.
func (l *Ledger) First() (time.Time, bool) {
	if len(l.events) == 0 {
		return time.Time{}, false
	}
	return l.events[0].Timestamp, true
}

// Last returns the timestamp of the last recorded event. The second
// return value is false for an empty ledger.
func (l *Ledger) Last() (time.Time, bool) {
	if len(l.events) == 0 {
		return time.Time{}, false
	}
	return l.events[len(l.events)-1].Timestamp, true
}

// Validate replays events through the append rules and returns the first
// violation. Persisted data could in principle be hand-edited, so loaders
// run it before trusting a ledger.
func Validate(events []Event) error {
	var l Ledger
	for _, e := range events {
		if _, err := l.Append(e.Timestamp, e.Kind); err != nil {
			return err
		}
	}
	return nil
}
