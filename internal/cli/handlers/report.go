package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/registry"
	"github.com/xolan/tally/internal/report"
	"github.com/xolan/tally/internal/service"
)

// ShowReport displays per-code duration totals for the requested range.
func ShowReport(deps *cli.Deps, identifiers []string, spec service.DateRangeSpec, mode report.SortMode) {
	services := openServices(deps)
	if services == nil {
		return
	}

	summary, period, err := services.Report.Summarize(identifiers, spec, deps.Now(), mode)
	if err != nil {
		reportReportError(deps, err)
		return
	}

	if len(summary.Rows) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No charge codes to report for %s\n", period)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Report for %s (%s):\n", period, cli.FormatWindowForDisplay(summary.Window))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	for _, row := range summary.Rows {
		line := fmt.Sprintf("  %-12s %10s", row.Identifier, cli.FormatDuration(row.Duration))
		if row.Description != "" {
			line += fmt.Sprintf("  %s", row.Description)
		}
		_, _ = fmt.Fprintln(deps.Stdout, line)
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", cli.FormatDuration(summary.Total))
}

// ShowBuckets displays a charge code's per-period duration history.
func ShowBuckets(deps *cli.Deps, identifier string, period time.Duration, periodName string) {
	services := openServices(deps)
	if services == nil {
		return
	}

	buckets, err := services.Report.Buckets(identifier, period, deps.Now())
	if err != nil {
		reportReportError(deps, err)
		return
	}

	if len(buckets) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No punches recorded for %s\n", identifier)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%s by %s:\n", identifier, periodName)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	var total time.Duration
	for _, b := range buckets {
		_, _ = fmt.Fprintf(deps.Stdout, "  %s  %s\n",
			b.Window.Start.Format("2006-01-02"), cli.FormatDuration(b.Duration))
		total += b.Duration
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", cli.FormatDuration(total))
}

func reportReportError(deps *cli.Deps, err error) {
	var nfErr *registry.NotFoundError
	var periodErr *report.InvalidPeriodError

	switch {
	case errors.As(err, &nfErr):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No charge code %q\n", nfErr.Identifier)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List existing codes with 'tally'")
	case errors.As(err, &periodErr):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid report period")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	default:
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to generate report")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	deps.Exit(1)
}
