package punch

import (
	"fmt"
	"time"
)

// OutOfOrderError is returned when a punch timestamp is not strictly after
// the last recorded event. The failed append leaves the ledger unchanged.
type OutOfOrderError struct {
	Timestamp time.Time // the rejected timestamp
	Last      time.Time // the last recorded timestamp
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("punch at %s is not after last recorded punch at %s",
		e.Timestamp.Format(time.RFC3339), e.Last.Format(time.RFC3339))
}

// SequenceError is returned when a punch kind violates the alternation rule
// (a ledger starts with an in punch and strictly alternates in/out).
// Unreachable through ChargeCode.Punch, which derives the kind from the
// current state, but persisted data is untrusted and is checked on load.
type SequenceError struct {
	Kind   Kind
	Detail string
}

func (e *SequenceError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("punch %s does not alternate with the previous event", e.Kind)
}
