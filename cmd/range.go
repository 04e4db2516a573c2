package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/timeutil"
)

// addRangeFlags registers the date range flags shared by report and export.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("today", false, "Limit to today")
	cmd.Flags().Bool("yesterday", false, "Limit to yesterday")
	cmd.Flags().Bool("week", false, "Limit to this week")
	cmd.Flags().Bool("last-week", false, "Limit to last week")
	cmd.Flags().Bool("month", false, "Limit to this month")
	cmd.Flags().Bool("last-month", false, "Limit to last month")
	cmd.Flags().Int("last", 0, "Limit to the last N days")
	cmd.Flags().String("from", "", "Range start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Range end date (YYYY-MM-DD), inclusive")
}

// resolveRangeSpec builds a DateRangeSpec from the range flags. Without any
// range flag the returned spec covers all time. Reports errors itself and
// returns false after calling Exit.
func resolveRangeSpec(cmd *cobra.Command, deps *cli.Deps) (service.DateRangeSpec, bool) {
	boolFlag := func(name string) bool {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}
	lastDays, _ := cmd.Flags().GetInt("last")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	count := 0
	spec := service.DateRangeSpec{Type: service.DateRangeAll}
	for name, typ := range map[string]service.DateRange{
		"today":      service.DateRangeToday,
		"yesterday":  service.DateRangeYesterday,
		"week":       service.DateRangeThisWeek,
		"last-week":  service.DateRangePrevWeek,
		"month":      service.DateRangeThisMonth,
		"last-month": service.DateRangePrevMonth,
	} {
		if boolFlag(name) {
			spec = service.DateRangeSpec{Type: typ}
			count++
		}
	}
	if lastDays > 0 {
		spec = service.DateRangeSpec{Type: service.DateRangeLast, LastDays: lastDays}
		count++
	}
	if from != "" || to != "" {
		fromTime, toTime, ok := parseCustomRange(deps, from, to)
		if !ok {
			return service.DateRangeSpec{}, false
		}
		spec = service.DateRangeSpec{Type: service.DateRangeCustom, From: fromTime, To: toTime}
		count++
	}

	if count > 1 {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Conflicting date range flags")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use at most one of --today, --yesterday, --week, --last-week, --month, --last-month, --last, --from/--to")
		deps.Exit(1)
		return service.DateRangeSpec{}, false
	}
	return spec, true
}

// parseCustomRange parses --from and --to, defaulting an absent end to today
// and an absent start to the epoch.
func parseCustomRange(deps *cli.Deps, from, to string) (time.Time, time.Time, bool) {
	loc := rangeLocation(deps)

	fromTime := time.Date(1970, 1, 1, 0, 0, 0, 0, loc)
	if from != "" {
		parsed, err := timeutil.ParseDate(from, loc)
		if err != nil {
			reportDateError(deps, "--from", from, err)
			return time.Time{}, time.Time{}, false
		}
		fromTime = parsed
	}

	toTime := deps.Now().In(loc)
	if to != "" {
		parsed, err := timeutil.ParseDate(to, loc)
		if err != nil {
			reportDateError(deps, "--to", to, err)
			return time.Time{}, time.Time{}, false
		}
		toTime = parsed
	}

	if toTime.Before(fromTime) {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: --to date is before --from date")
		deps.Exit(1)
		return time.Time{}, time.Time{}, false
	}
	return fromTime, toTime, true
}

func rangeLocation(deps *cli.Deps) *time.Location {
	services, err := deps.Services()
	if err != nil {
		return time.Local
	}
	cfg := services.Config.Get()
	loc, err := cfg.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

func reportDateError(deps *cli.Deps, flag, value string, err error) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid %s date '%s'\n", flag, value)
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use YYYY-MM-DD, e.g. 2025-03-12")
	deps.Exit(1)
}
