package service

import (
	"fmt"
	"time"

	"github.com/xolan/tally/internal/config"
	"github.com/xolan/tally/internal/punch"
	"github.com/xolan/tally/internal/report"
	"github.com/xolan/tally/internal/timeutil"
)

// Period lengths accepted by Buckets.
const (
	PeriodDay  = 24 * time.Hour
	PeriodWeek = 7 * 24 * time.Hour
)

// ReportService generates duration summaries from the charge code registry.
type ReportService struct {
	codes  *CodeService
	config config.Config
}

// NewReportService creates a ReportService reading through codes.
func NewReportService(codes *CodeService, cfg config.Config) *ReportService {
	return &ReportService{
		codes:  codes,
		config: cfg,
	}
}

// ResolveRange turns a range spec into a concrete window relative to asOf,
// plus a human-readable period description for headings.
func (s *ReportService) ResolveRange(spec DateRangeSpec, asOf time.Time) (punch.Window, string) {
	loc, err := s.config.Location()
	if err != nil {
		loc = time.Local
	}
	ref := asOf.In(loc)

	switch spec.Type {
	case DateRangeToday:
		return timeutil.Day(ref), "today"
	case DateRangeYesterday:
		return timeutil.Yesterday(ref), "yesterday"
	case DateRangeThisWeek:
		return timeutil.Week(ref, s.config.WeekStartDay), "this week"
	case DateRangePrevWeek:
		return timeutil.LastWeek(ref, s.config.WeekStartDay), "last week"
	case DateRangeThisMonth:
		return timeutil.Month(ref), "this month"
	case DateRangePrevMonth:
		return timeutil.LastMonth(ref), "last month"
	case DateRangeLast:
		return timeutil.LastDays(ref, spec.LastDays), fmt.Sprintf("last %d days", spec.LastDays)
	case DateRangeCustom:
		w := timeutil.Range(spec.From, spec.To)
		return w, fmt.Sprintf("%s to %s", spec.From.Format("2006-01-02"), spec.To.Format("2006-01-02"))
	default:
		return timeutil.AllTime(), "all time"
	}
}

// Summarize computes per-code totals over the requested range, open
// intervals clipped at asOf. Empty identifiers means all codes.
func (s *ReportService) Summarize(identifiers []string, spec DateRangeSpec, asOf time.Time, mode report.SortMode) (*report.Summary, string, error) {
	reg, err := s.codes.Registry()
	if err != nil {
		return nil, "", err
	}

	window, period := s.ResolveRange(spec, asOf)
	summary, err := report.NewEngine(reg).Summarize(identifiers, window, asOf, mode)
	if err != nil {
		return nil, "", err
	}
	return summary, period, nil
}

// Buckets computes a code's period-bucketed duration history.
func (s *ReportService) Buckets(identifier string, period time.Duration, asOf time.Time) ([]report.Bucket, error) {
	reg, err := s.codes.Registry()
	if err != nil {
		return nil, err
	}
	return report.NewEngine(reg).BucketByPeriod(identifier, period, asOf)
}
