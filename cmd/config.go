package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for tally.

Shows the configuration file location, whether it exists, and all current
settings. Values are merged from the config file with sensible defaults,
so tally works without any configuration file at all.

Settings:
  data_file        Name of the registry data file (default: codes.json)
  default_code     Code punched when 'tally punch' names none
  week_start_day   monday or sunday (default: monday)
  timezone         IANA timezone for report windows (default: Local)
  theme            TUI color theme

Examples:
  tally config                          Show all current settings
  tally config set default_code ENG-100 Update a setting
  tally config init                     Create a commented sample config file`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowConfig(cli.GetDeps())
	},
}

// configSetCmd represents the config set command
var configSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Update a configuration setting",
	Long: `Update a single configuration setting and save the config file.

Examples:
  tally config set default_code ENG-100
  tally config set week_start_day sunday
  tally config set timezone Europe/Oslo`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.SetConfig(cli.GetDeps(), args[0], args[1])
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample config file",
	Long: `Create a commented sample configuration file at the default location.

Fails if a config file already exists.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.InitConfig(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
}
