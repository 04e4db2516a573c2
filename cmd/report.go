package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
	"github.com/xolan/tally/internal/report"
	"github.com/xolan/tally/internal/service"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report [identifiers...]",
	Short: "Show per-code duration totals for a date range",
	Long: `Show the total time charged to each code over a date range.

Without identifiers, all charge codes are reported. Codes that are still
clocked in contribute their open interval up to now. Without a range flag
the report covers all recorded time.

Breakdown mode:
  With exactly one identifier, --by splits that code's time into daily
  or weekly buckets instead of a single total.

Examples:
  tally report                        All codes, all time
  tally report --today                All codes, today
  tally report ENG-100 --week         One code, this week
  tally report --last 30 --sort duration
  tally report --from 2025-03-01 --to 2025-03-15
  tally report ENG-100 --by day       Daily breakdown for one code`,
	Run: func(cmd *cobra.Command, args []string) {
		runReport(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addRangeFlags(reportCmd)
	reportCmd.Flags().String("sort", "id", "Row order: 'id' or 'duration'")
	reportCmd.Flags().String("by", "", "Bucket one code's time by 'day' or 'week'")
}

// runReport handles the report command logic
func runReport(cmd *cobra.Command, args []string) {
	deps := cli.GetDeps()

	by, _ := cmd.Flags().GetString("by")
	if by != "" {
		runBuckets(deps, args, by)
		return
	}

	sortFlag, _ := cmd.Flags().GetString("sort")
	var mode report.SortMode
	switch sortFlag {
	case "id", "":
		mode = report.SortByIdentifier
	case "duration":
		mode = report.SortByDuration
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid --sort value '%s'. Must be 'id' or 'duration'\n", sortFlag)
		deps.Exit(1)
		return
	}

	spec, ok := resolveRangeSpec(cmd, deps)
	if !ok {
		return
	}
	handlers.ShowReport(deps, args, spec, mode)
}

// runBuckets handles the --by breakdown mode.
func runBuckets(deps *cli.Deps, args []string, by string) {
	if len(args) != 1 {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: --by requires exactly one charge code identifier")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: tally report ENG-100 --by day")
		deps.Exit(1)
		return
	}

	switch by {
	case "day":
		handlers.ShowBuckets(deps, args[0], service.PeriodDay, "day")
	case "week":
		handlers.ShowBuckets(deps, args[0], service.PeriodWeek, "week")
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid --by value '%s'. Must be 'day' or 'week'\n", by)
		deps.Exit(1)
	}
}
