package report

import (
	"errors"
	"testing"
	"time"

	"github.com/xolan/tally/internal/code"
	"github.com/xolan/tally/internal/punch"
	"github.com/xolan/tally/internal/registry"
)

var day0 = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

// nullGateway satisfies registry.Gateway without persisting anything.
type nullGateway struct{}

func (nullGateway) Load() ([]code.ChargeCode, error) { return nil, nil }
func (nullGateway) Save([]code.ChargeCode) error     { return nil }

// buildRegistry creates a registry with codes punched at hour offsets from
// day0. Each inner slice alternates in/out punches.
func buildRegistry(t *testing.T, punches map[string][]float64) *registry.Registry {
	t.Helper()
	r := registry.New(nullGateway{})
	for id, hours := range punches {
		if _, err := r.Create(id, "test code "+id); err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		for _, h := range hours {
			ts := day0.Add(time.Duration(h * float64(time.Hour)))
			if _, err := r.Punch(id, ts); err != nil {
				t.Fatalf("Punch(%q, %v): %v", id, ts, err)
			}
		}
	}
	return r
}

func hoursWindow(from, to float64) punch.Window {
	return punch.Window{
		Start: day0.Add(time.Duration(from * float64(time.Hour))),
		End:   day0.Add(time.Duration(to * float64(time.Hour))),
	}
}

func TestEngine_SummarizeClosedInterval(t *testing.T) {
	// ENG-100 punched 09:00-12:00; total over [09:00,13:00) is 3h.
	r := buildRegistry(t, map[string][]float64{"ENG-100": {9, 12}})
	e := NewEngine(r)

	s, err := e.Summarize([]string{"ENG-100"}, hoursWindow(9, 13), day0.Add(13*time.Hour), SortByIdentifier)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len(s.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(s.Rows))
	}
	if s.Rows[0].Duration != 3*time.Hour {
		t.Errorf("expected 3h, got %v", s.Rows[0].Duration)
	}
	if s.Total != 3*time.Hour {
		t.Errorf("expected total 3h, got %v", s.Total)
	}
}

func TestEngine_SummarizeOpenIntervalClippedAtAsOf(t *testing.T) {
	// OPS-200 punched in at 08:00 with no closing punch; over [00:00,24:00)
	// as of 10:00 the total is 2h.
	r := buildRegistry(t, map[string][]float64{"OPS-200": {8}})
	e := NewEngine(r)

	s, err := e.Summarize([]string{"OPS-200"}, hoursWindow(0, 24), day0.Add(10*time.Hour), SortByIdentifier)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if s.Total != 2*time.Hour {
		t.Errorf("expected 2h, got %v", s.Total)
	}
}

func TestEngine_SummarizeAllCodesWhenEmptyRequest(t *testing.T) {
	r := buildRegistry(t, map[string][]float64{
		"OPS-200": {8, 9},
		"ENG-100": {9, 12},
	})
	e := NewEngine(r)

	s, err := e.Summarize(nil, hoursWindow(0, 24), day0.Add(24*time.Hour), SortByIdentifier)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len(s.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(s.Rows))
	}
	if s.Rows[0].Identifier != "ENG-100" || s.Rows[1].Identifier != "OPS-200" {
		t.Errorf("rows not sorted by identifier: %v, %v", s.Rows[0].Identifier, s.Rows[1].Identifier)
	}
	if s.Total != 4*time.Hour {
		t.Errorf("expected total 4h, got %v", s.Total)
	}
}

func TestEngine_SummarizeSortByDuration(t *testing.T) {
	r := buildRegistry(t, map[string][]float64{
		"AAA-1": {8, 9},   // 1h
		"BBB-2": {9, 12},  // 3h
		"CCC-3": {12, 14}, // 2h
	})
	e := NewEngine(r)

	s, err := e.Summarize(nil, hoursWindow(0, 24), day0.Add(24*time.Hour), SortByDuration)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	var got []string
	for _, row := range s.Rows {
		got = append(got, row.Identifier)
	}
	want := []string{"BBB-2", "CCC-3", "AAA-1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestEngine_SummarizeUnknownIdentifier(t *testing.T) {
	r := buildRegistry(t, map[string][]float64{"ENG-100": {9, 12}})
	e := NewEngine(r)

	_, err := e.Summarize([]string{"ENG-100", "MISSING"}, hoursWindow(0, 24), day0.Add(24*time.Hour), SortByIdentifier)
	var nfErr *registry.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *registry.NotFoundError, got %v", err)
	}
	if nfErr.Identifier != "MISSING" {
		t.Errorf("error should carry the identifier, got %q", nfErr.Identifier)
	}
}

func TestEngine_SummarizeDeterministic(t *testing.T) {
	r := buildRegistry(t, map[string][]float64{"ENG-100": {9}})
	e := NewEngine(r)

	asOf := day0.Add(11 * time.Hour)
	first, err := e.Summarize(nil, hoursWindow(0, 24), asOf, SortByIdentifier)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Summarize(nil, hoursWindow(0, 24), asOf, SortByIdentifier)
	if err != nil {
		t.Fatal(err)
	}
	if first.Total != second.Total {
		t.Errorf("identical inputs produced different totals: %v vs %v", first.Total, second.Total)
	}
}

func TestEngine_BucketByPeriod(t *testing.T) {
	// Work on day 1 (09:00-12:00) and day 3 (09:00-10:00); daily buckets
	// from the first event must include an explicit zero for day 2.
	r := buildRegistry(t, map[string][]float64{"ENG-100": {9, 12, 57, 58}})
	e := NewEngine(r)

	buckets, err := e.BucketByPeriod("ENG-100", 24*time.Hour, day0.Add(72*time.Hour))
	if err != nil {
		t.Fatalf("BucketByPeriod failed: %v", err)
	}
	if len(buckets) != 3 {
		t.Fatalf("expected 3 daily buckets, got %d", len(buckets))
	}
	want := []time.Duration{3 * time.Hour, 0, time.Hour}
	for i, b := range buckets {
		if b.Duration != want[i] {
			t.Errorf("bucket %d: expected %v, got %v", i, want[i], b.Duration)
		}
	}

	// Buckets are consecutive and non-overlapping.
	for i := 1; i < len(buckets); i++ {
		if !buckets[i].Window.Start.Equal(buckets[i-1].Window.End) {
			t.Errorf("bucket %d does not start where bucket %d ends", i, i-1)
		}
	}
}

func TestEngine_BucketDurationsSumToTotal(t *testing.T) {
	// For any period length, bucket durations sum to the total over the
	// union of all buckets.
	r := buildRegistry(t, map[string][]float64{"ENG-100": {1, 4.5, 20, 26, 50}})
	e := NewEngine(r)
	asOf := day0.Add(55 * time.Hour)

	for _, period := range []time.Duration{time.Hour, 7 * time.Hour, 24 * time.Hour, 100 * time.Hour} {
		buckets, err := e.BucketByPeriod("ENG-100", period, asOf)
		if err != nil {
			t.Fatalf("period %v: %v", period, err)
		}
		if len(buckets) == 0 {
			t.Fatalf("period %v: expected buckets", period)
		}

		var sum time.Duration
		for _, b := range buckets {
			sum += b.Duration
		}

		union := punch.Window{
			Start: buckets[0].Window.Start,
			End:   buckets[len(buckets)-1].Window.End,
		}
		s, err := e.Summarize([]string{"ENG-100"}, union, asOf, SortByIdentifier)
		if err != nil {
			t.Fatal(err)
		}
		if sum != s.Total {
			t.Errorf("period %v: bucket sum %v != window total %v", period, sum, s.Total)
		}
	}
}

func TestEngine_BucketByPeriodEdgeCases(t *testing.T) {
	r := buildRegistry(t, map[string][]float64{
		"EMPTY-1": {},
		"ENG-100": {9, 12},
	})
	e := NewEngine(r)
	asOf := day0.Add(24 * time.Hour)

	buckets, err := e.BucketByPeriod("EMPTY-1", 24*time.Hour, asOf)
	if err != nil {
		t.Fatalf("unexpected error for empty ledger: %v", err)
	}
	if len(buckets) != 0 {
		t.Errorf("expected no buckets for empty ledger, got %d", len(buckets))
	}

	if _, err := e.BucketByPeriod("MISSING", 24*time.Hour, asOf); err == nil {
		t.Error("expected error for unknown identifier")
	}

	_, err = e.BucketByPeriod("ENG-100", 0, asOf)
	var perErr *InvalidPeriodError
	if !errors.As(err, &perErr) {
		t.Errorf("expected *InvalidPeriodError, got %v", err)
	}
}

func TestRowAndBucketNumericExport(t *testing.T) {
	row := Row{Duration: 90 * time.Minute}
	if row.Seconds() != 5400 {
		t.Errorf("expected 5400 seconds, got %d", row.Seconds())
	}
	if row.Hours() != 1.5 {
		t.Errorf("expected 1.5 hours, got %v", row.Hours())
	}

	b := Bucket{Duration: 45 * time.Minute}
	if b.Seconds() != 2700 {
		t.Errorf("expected 2700 seconds, got %d", b.Seconds())
	}
	if b.Hours() != 0.75 {
		t.Errorf("expected 0.75 hours, got %v", b.Hours())
	}
}
