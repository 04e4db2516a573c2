package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// exportCmd represents the export parent command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export per-code totals to machine-readable formats",
	Long: `Export per-code duration totals for programmatic use.

Available formats:
  csv     One row per charge code with total seconds and fractional hours
  json    A document with the range, per-code totals, and the grand total

The same date range flags as 'tally report' apply. Rows are sorted by
identifier so repeated exports over unchanged data are byte-identical.

Examples:
  tally export csv                   All codes, all time
  tally export json --week           This week as JSON
  tally export csv --last 30 > totals.csv`,
}

// exportCSVCmd represents the export csv command
var exportCSVCmd = &cobra.Command{
	Use:   "csv [identifiers...]",
	Short: "Export per-code totals as CSV",
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		spec, ok := resolveRangeSpec(cmd, deps)
		if !ok {
			return
		}
		handlers.ExportCSV(deps, args, spec)
	},
}

// exportJSONCmd represents the export json command
var exportJSONCmd = &cobra.Command{
	Use:   "json [identifiers...]",
	Short: "Export per-code totals as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		spec, ok := resolveRangeSpec(cmd, deps)
		if !ok {
			return
		}
		handlers.ExportJSON(deps, args, spec)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportJSONCmd)
	addRangeFlags(exportCSVCmd)
	addRangeFlags(exportJSONCmd)
}
