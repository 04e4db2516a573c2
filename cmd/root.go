// Package cmd defines the cobra command tree for the tally CLI.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "A punch clock for charge codes",
	Long: `tally tracks time against charge codes with a punch clock model.

Each charge code is either active (clocked in) or passive (clocked out).
Punching a code toggles its state; every punch is recorded, and reports
aggregate the closed and still-open intervals over a date range.

Usage:
  tally                                  List charge codes with their state
  tally create <identifier> [desc...]    Create a new charge code
  tally punch [identifier]               Toggle a code's clock state
  tally status                           Show codes currently clocked in
  tally report [identifiers...]          Per-code totals for a date range
  tally export (csv|json)                Machine-readable report output
  tally validate                         Check data file health
  tally restore [n]                      Restore a data file backup
  tally tui                              Launch the interactive terminal UI`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ListCodes(cli.GetDeps())
	},
}

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create <identifier> [description...]",
	Short: "Create a new charge code",
	Long: `Create a new charge code in the passive state.

The identifier names the code in every other command. Any further
arguments become the description.

Examples:
  tally create ENG-100
  tally create ENG-100 platform engineering`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.CreateCode(cli.GetDeps(), args[0], strings.Join(args[1:], " "))
	},
}

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe <identifier> <description...>",
	Short: "Update a charge code's description",
	Long: `Update the description of an existing charge code.

Examples:
  tally describe ENG-100 platform engineering`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.DescribeCode(cli.GetDeps(), args[0], strings.Join(args[1:], " "))
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(describeCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"tally version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
