package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check data file health",
	Long: `Inspect the data file and report on its health, including any charge
codes whose punch records would fail to load.

Exits non-zero when problems are found.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ValidateData(cli.GetDeps())
	},
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [n]",
	Short: "Restore a data file backup",
	Long: `Restore the data file from one of its rotating backups.

tally keeps up to three backups, rotated on every save; backup 1 is the
most recent. Without a number, backup 1 is restored. The current data
file is backed up first, so a restore is itself recoverable.

Examples:
  tally restore --list      List available backups
  tally restore             Restore the most recent backup
  tally restore 2           Restore the second most recent backup`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRestore(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().Bool("list", false, "List available backups")
}

// runRestore handles the restore command logic
func runRestore(cmd *cobra.Command, args []string) {
	deps := cli.GetDeps()

	if list, _ := cmd.Flags().GetBool("list"); list {
		handlers.ListBackups(deps)
		return
	}

	backupNum := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: List available backups with 'tally restore --list'")
			deps.Exit(1)
			return
		}
		backupNum = n
	}

	handlers.RestoreBackup(deps, backupNum)
}
