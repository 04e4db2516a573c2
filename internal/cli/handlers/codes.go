// Package handlers contains the CLI command logic shared between commands.
// Each handler takes the CLI dependencies explicitly for testability.
package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/punch"
	"github.com/xolan/tally/internal/registry"
	"github.com/xolan/tally/internal/service"
)

// openServices builds the service layer, reporting failures to stderr.
// Returns nil after calling Exit when construction fails.
func openServices(deps *cli.Deps) *service.Services {
	services, err := deps.Services()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to initialize")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your config directory is accessible")
		deps.Exit(1)
		return nil
	}
	return services
}

// ListCodes displays all charge codes with their current clock state.
func ListCodes(deps *cli.Deps) {
	services := openServices(deps)
	if services == nil {
		return
	}

	statuses, err := services.Code.List(deps.Now())
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load charge codes")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Run 'tally validate' to inspect the data file: %s\n", services.Code.DataPath())
		deps.Exit(1)
		return
	}

	if len(statuses) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No charge codes defined")
		_, _ = fmt.Fprintln(deps.Stdout, "Create one with: tally create <identifier> [description]")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Charge codes:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, st := range statuses {
		line := fmt.Sprintf("  %-12s %-8s", st.Code.Identifier, cli.FormatState(st.State))
		if st.State == punch.Active {
			line += fmt.Sprintf(" %s", cli.FormatDuration(st.ActiveFor))
		}
		if st.Code.Description != "" {
			line += fmt.Sprintf("  %s", st.Code.Description)
		}
		_, _ = fmt.Fprintln(deps.Stdout, line)
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "%d %s\n", len(statuses), cli.Pluralize("code", len(statuses)))
}

// CreateCode registers a new charge code.
func CreateCode(deps *cli.Deps, identifier, description string) {
	services := openServices(deps)
	if services == nil {
		return
	}

	c, err := services.Code.Create(identifier, description)
	if err != nil {
		var dupErr *registry.DuplicateIdentifierError
		if errors.As(err, &dupErr) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Charge code %q already exists\n", dupErr.Identifier)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: List existing codes with 'tally'")
			deps.Exit(1)
			return
		}
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to create charge code")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	if c.Description != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Created charge code %s (%s)\n", c.Identifier, c.Description)
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Created charge code %s\n", c.Identifier)
	}
}

// DescribeCode updates the description of an existing charge code.
func DescribeCode(deps *cli.Deps, identifier, description string) {
	services := openServices(deps)
	if services == nil {
		return
	}

	if err := services.Code.Describe(identifier, description); err != nil {
		var nfErr *registry.NotFoundError
		if errors.As(err, &nfErr) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: No charge code %q\n", nfErr.Identifier)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: List existing codes with 'tally'")
			deps.Exit(1)
			return
		}
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to update charge code")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Updated %s: %s\n", identifier, description)
}
