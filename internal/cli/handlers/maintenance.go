package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/storage"
)

// ValidateData inspects the data file and reports its health.
func ValidateData(deps *cli.Deps) {
	services := openServices(deps)
	if services == nil {
		return
	}
	dataPath := services.Code.DataPath()

	health, err := storage.Inspect(dataPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to inspect data file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Data file: %s\n", dataPath)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Charge codes: %d\n", health.Codes)
	_, _ = fmt.Fprintf(deps.Stdout, "Punch events: %d\n", health.Events)

	if len(health.Problems) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Problems:")
		for _, p := range health.Problems {
			if p.Identifier != "" {
				_, _ = fmt.Fprintf(deps.Stdout, "  %s: %s\n", p.Identifier, p.Detail)
			} else {
				_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", p.Detail)
			}
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if health.OK() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: data file is healthy")
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Status: data file has %d %s\n",
		len(health.Problems), cli.Pluralize("problem", len(health.Problems)))
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Restore a backup with 'tally restore'")
	deps.Exit(1)
}

// ListBackups displays the available data file backups.
func ListBackups(deps *cli.Deps) {
	services := openServices(deps)
	if services == nil {
		return
	}

	backups := storage.ListBackups(services.Code.DataPath())
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups (1 is most recent):")
	for _, b := range backups {
		_, _ = fmt.Fprintf(deps.Stdout, "  [%d] %s\n", b.Number, b.Path)
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Restore one with: tally restore <number>")
}

// RestoreBackup replaces the data file with the numbered backup.
func RestoreBackup(deps *cli.Deps, backupNum int) {
	services := openServices(deps)
	if services == nil {
		return
	}
	dataPath := services.Code.DataPath()

	if err := storage.RestoreBackup(dataPath, backupNum); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to restore backup %d\n", backupNum)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List available backups with 'tally restore --list'")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Restored backup %d to %s\n", backupNum, dataPath)
	_, _ = fmt.Fprintln(deps.Stdout, "The previous data file was backed up first.")
}
