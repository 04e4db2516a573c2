package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
	"github.com/xolan/tally/internal/timeutil"
)

// punchCmd represents the punch command
var punchCmd = &cobra.Command{
	Use:   "punch [identifier]",
	Short: "Toggle a charge code's clock state",
	Long: `Punch a charge code: clock in if it is passive, clock out if active.

Without an identifier, the default_code from the config file is punched.
Use --at to backdate the punch, as long as it stays after the code's
last recorded event.

Accepted --at formats:
  15:04                   Clock time today
  2006-01-02 15:04        Date and time
  RFC 3339                Full timestamp with offset

Examples:
  tally punch ENG-100
  tally punch
  tally punch ENG-100 --at 08:30
  tally punch ENG-100 --at '2025-03-12 08:30'`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		identifier := ""
		if len(args) == 1 {
			identifier = args[0]
		}
		at, _ := cmd.Flags().GetString("at")
		runPunch(identifier, at)
	},
}

func init() {
	rootCmd.AddCommand(punchCmd)
	punchCmd.Flags().String("at", "", "Punch timestamp (default: now)")
}

// runPunch resolves the punch timestamp and delegates to the handler.
func runPunch(identifier, at string) {
	deps := cli.GetDeps()

	ts := deps.Now()
	if at != "" {
		loc, err := punchLocation(deps)
		if err != nil {
			return
		}
		ts, err = timeutil.ParseTimestamp(at, deps.Now(), loc)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid timestamp '%s'\n", at)
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use '15:04', '2006-01-02 15:04', or an RFC 3339 timestamp")
			deps.Exit(1)
			return
		}
	}

	handlers.PunchCode(deps, identifier, ts)
}

// punchLocation resolves the configured timezone for parsing --at values.
func punchLocation(deps *cli.Deps) (*time.Location, error) {
	services, err := deps.Services()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to initialize")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return nil, err
	}
	cfg := services.Config.Get()
	loc, err := cfg.Location()
	if err != nil {
		loc = time.Local
	}
	return loc, nil
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show charge codes currently clocked in",
	Long: `Show the charge codes that are currently active, with the punch-in
time and elapsed duration for each.

Examples:
  tally status`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowStatus(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
