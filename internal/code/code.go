// Package code defines the charge code: a named bucket of labor time that
// toggles between active and passive through its punch ledger.
package code

import (
	"time"

	"github.com/xolan/tally/internal/punch"
)

// ChargeCode is a named bucket of labor time. The identifier is immutable
// after creation; the description is free text and may be updated. The
// clock state is always derived from the ledger, never stored.
type ChargeCode struct {
	Identifier  string
	Description string
	Ledger      punch.Ledger
}

// New returns a fresh charge code: passive, with an empty ledger.
func New(identifier, description string) *ChargeCode {
	return &ChargeCode{
		Identifier:  identifier,
		Description: description,
	}
}

// State returns the current clock state derived from the ledger.
func (c *ChargeCode) State() punch.State {
	return c.Ledger.State()
}

// Punch toggles the code's state at ts. The kind is inferred as the opposite
// of the current state (passive punches in, active punches out); callers
// never choose the kind directly. Ledger errors propagate unchanged, and a
// failed punch leaves the ledger exactly as it was.
func (c *ChargeCode) Punch(ts time.Time) (punch.State, error) {
	kind := punch.In
	if c.Ledger.State() == punch.Active {
		kind = punch.Out
	}
	return c.Ledger.Append(ts, kind)
}

// ActiveSince returns the start of the open interval when the code is
// active. The second return value reports presence.
func (c *ChargeCode) ActiveSince() (time.Time, bool) {
	open, ok := c.Ledger.OpenInterval(time.Time{})
	if !ok {
		return time.Time{}, false
	}
	return open.Start, true
}

// TotalDuration reports the code's chargeable time inside window, with any
// open interval clipped at asOf.
func (c *ChargeCode) TotalDuration(window punch.Window, asOf time.Time) time.Duration {
	return c.Ledger.TotalDuration(window, asOf)
}
