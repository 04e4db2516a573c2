// Package service provides the business logic layer for the tally
// application. It wraps the registry, report engine, storage gateway, and
// config packages behind a clean API shared by the CLI and TUI frontends.
package service

import (
	"time"

	"github.com/xolan/tally/internal/code"
	"github.com/xolan/tally/internal/punch"
)

// DateRange identifies a predefined or custom reporting range.
type DateRange int

const (
	DateRangeAll DateRange = iota
	DateRangeToday
	DateRangeYesterday
	DateRangeThisWeek
	DateRangePrevWeek
	DateRangeThisMonth
	DateRangePrevMonth
	DateRangeLast // last N days (requires LastDays)
	DateRangeCustom
)

// DateRangeSpec specifies a reporting range.
type DateRangeSpec struct {
	Type     DateRange
	LastDays int       // used when Type is DateRangeLast
	From     time.Time // used when Type is DateRangeCustom
	To       time.Time // used when Type is DateRangeCustom
}

// CodeStatus is one charge code with its derived clock state, for listings.
type CodeStatus struct {
	Code      *code.ChargeCode
	State     punch.State
	Since     time.Time     // start of the open interval, zero when passive
	ActiveFor time.Duration // elapsed open time as of the listing, zero when passive
}

// PunchResult reports the outcome of a punch.
type PunchResult struct {
	Identifier string
	State      punch.State
	Timestamp  time.Time
}
