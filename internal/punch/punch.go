// Package punch implements the punch ledger: the append-only record of
// clock-in/clock-out events for a single charge code, and the interval
// arithmetic used for duration reporting.
package punch

import "time"

// Kind is the direction of a punch event.
type Kind int

const (
	// In opens an interval of chargeable time.
	In Kind = iota
	// Out closes the currently open interval.
	Out
)

// String returns "in" or "out".
func (k Kind) String() string {
	if k == In {
		return "in"
	}
	return "out"
}

// State is the derived clock state of a ledger. It is never stored
// independently; it is always recomputed from the last recorded event.
type State int

const (
	// Passive means no interval is currently open.
	Passive State = iota
	// Active means the last event was a punch in with no matching out.
	Active
)

// String returns "active" or "passive".
func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "passive"
}

// Event is a single recorded punch.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      Kind      `json:"kind"`
}

// MarshalText encodes the kind as "in"/"out" so the on-disk format stays
// readable and independent of the enum's numeric values.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes "in"/"out". Anything else is rejected.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in":
		*k = In
	case "out":
		*k = Out
	default:
		return &SequenceError{Detail: "unknown punch kind " + string(text)}
	}
	return nil
}
