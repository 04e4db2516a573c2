// Package report implements the duration-aggregation engine: per-code
// totals over a requested window and period-bucketed histories. All
// computation is pure; the single asOf parameter is the only clock input,
// so identical ledgers and windows always produce identical reports.
package report

import (
	"sort"
	"time"

	"github.com/xolan/tally/internal/code"
	"github.com/xolan/tally/internal/punch"
	"github.com/xolan/tally/internal/registry"
)

// SortMode controls the row order of a summary.
type SortMode int

const (
	// SortByIdentifier orders rows lexicographically by charge code.
	SortByIdentifier SortMode = iota
	// SortByDuration orders rows by total duration, longest first.
	SortByDuration
)

// Row is one charge code's total inside the requested window. Durations are
// numeric so the presentation layer controls all formatting.
type Row struct {
	Identifier  string
	Description string
	Duration    time.Duration
}

// Seconds returns the row's duration in whole seconds.
func (r Row) Seconds() int64 {
	return int64(r.Duration / time.Second)
}

// Hours returns the row's duration as fractional hours.
func (r Row) Hours() float64 {
	return r.Duration.Hours()
}

// Summary is the output of Summarize: one row per requested code plus the
// overall total.
type Summary struct {
	Rows   []Row
	Total  time.Duration
	Window punch.Window
	AsOf   time.Time
}

// Bucket is one period's total in a period-bucketed history.
type Bucket struct {
	Window   punch.Window
	Duration time.Duration
}

// Seconds returns the bucket's duration in whole seconds.
func (b Bucket) Seconds() int64 {
	return int64(b.Duration / time.Second)
}

// Hours returns the bucket's duration as fractional hours.
func (b Bucket) Hours() float64 {
	return b.Duration.Hours()
}

// Engine computes summaries over charge codes read from the registry.
type Engine struct {
	registry *registry.Registry
}

// NewEngine returns an engine reading from r.
func NewEngine(r *registry.Registry) *Engine {
	return &Engine{registry: r}
}

// Summarize computes each requested code's total duration inside window,
// with open intervals clipped at asOf. An empty identifiers slice means all
// registered codes. An unknown identifier fails the whole call with
// *registry.NotFoundError before anything is computed (all-or-nothing).
func (e *Engine) Summarize(identifiers []string, window punch.Window, asOf time.Time, mode SortMode) (*Summary, error) {
	codes, err := e.resolve(identifiers)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Window: window, AsOf: asOf}
	for _, c := range codes {
		d := c.TotalDuration(window, asOf)
		summary.Rows = append(summary.Rows, Row{
			Identifier:  c.Identifier,
			Description: c.Description,
			Duration:    d,
		})
		summary.Total += d
	}

	if mode == SortByDuration {
		sort.SliceStable(summary.Rows, func(i, j int) bool {
			if summary.Rows[i].Duration != summary.Rows[j].Duration {
				return summary.Rows[i].Duration > summary.Rows[j].Duration
			}
			return summary.Rows[i].Identifier < summary.Rows[j].Identifier
		})
	} else {
		sort.SliceStable(summary.Rows, func(i, j int) bool {
			return summary.Rows[i].Identifier < summary.Rows[j].Identifier
		})
	}

	return summary, nil
}

// BucketByPeriod partitions a code's interval history into consecutive,
// non-overlapping windows of the given length, starting from the code's
// first recorded event and extending through its last activity (the open
// interval counts, clipped at asOf). Periods with zero overlapping time
// still appear with duration zero, so tabular rendering never has to infer
// missing rows. A code with no events yields no buckets.
func (e *Engine) BucketByPeriod(identifier string, period time.Duration, asOf time.Time) ([]Bucket, error) {
	c, err := e.registry.Get(identifier)
	if err != nil {
		return nil, err
	}
	if period <= 0 {
		return nil, &InvalidPeriodError{Period: period}
	}

	first, ok := c.Ledger.First()
	if !ok {
		return nil, nil
	}

	// The histories extend through the last closed punch, or asOf when an
	// interval is still open.
	end, _ := c.Ledger.Last()
	if _, open := c.Ledger.OpenInterval(asOf); open && asOf.After(end) {
		end = asOf
	}

	var buckets []Bucket
	for start := first; start.Before(end); start = start.Add(period) {
		w := punch.Window{Start: start, End: start.Add(period)}
		buckets = append(buckets, Bucket{
			Window:   w,
			Duration: c.TotalDuration(w, asOf),
		})
	}
	return buckets, nil
}

// resolve maps identifiers to codes, or returns every registered code for
// an empty request. The whole lookup fails on the first unknown identifier.
func (e *Engine) resolve(identifiers []string) ([]*code.ChargeCode, error) {
	if len(identifiers) == 0 {
		return e.registry.List(), nil
	}
	codes := make([]*code.ChargeCode, 0, len(identifiers))
	for _, id := range identifiers {
		c, err := e.registry.Get(id)
		if err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, nil
}
