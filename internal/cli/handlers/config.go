package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/tally/internal/cli"
)

// ShowConfig displays the current effective configuration.
func ShowConfig(deps *cli.Deps) {
	services := openServices(deps)
	if services == nil {
		return
	}

	cfg := services.Config.Get()
	configPath := services.Config.GetPath()
	fileExists := services.Config.Exists()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for tally")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", configPath)
	if fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Data file:       %s\n", services.Code.DataPath())
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	if cfg.DefaultCode == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "Default Code:    (none)")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Default Code:    %s\n", cfg.DefaultCode)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Week Start Day:  %s\n", cfg.WeekStartDay)
	_, _ = fmt.Fprintf(deps.Stdout, "Timezone:        %s\n", cfg.Timezone)
	if cfg.Theme == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "Theme:           (default)")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Theme:           %s\n", cfg.Theme)
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	if !fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'tally config init' to create a commented sample config file.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

// SetConfig updates a single configuration setting and saves the file.
func SetConfig(deps *cli.Deps, key, value string) {
	services := openServices(deps)
	if services == nil {
		return
	}

	cfg := services.Config.Get()
	switch key {
	case "data_file":
		cfg.DataFile = value
	case "default_code":
		cfg.DefaultCode = value
	case "week_start_day":
		cfg.WeekStartDay = value
	case "timezone":
		cfg.Timezone = value
	case "theme":
		cfg.Theme = value
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unknown setting '%s'\n", key)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Settings are data_file, default_code, week_start_day, timezone, theme")
		deps.Exit(1)
		return
	}

	if err := services.Config.Update(cfg); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid value for '%s'\n", key)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Set %s = %s\n", key, value)
}

// InitConfig creates a sample configuration file.
func InitConfig(deps *cli.Deps) {
	services := openServices(deps)
	if services == nil {
		return
	}

	if err := services.Config.Init(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to create config file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", services.Config.GetPath())
	_, _ = fmt.Fprintln(deps.Stdout, "Edit it to customize settings, all entries are optional.")
}
