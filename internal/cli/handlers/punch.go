package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/punch"
	"github.com/xolan/tally/internal/registry"
	"github.com/xolan/tally/internal/service"
)

// PunchCode toggles the clock state of a charge code at ts. An empty
// identifier uses the configured default code.
func PunchCode(deps *cli.Deps, identifier string, ts time.Time) {
	services := openServices(deps)
	if services == nil {
		return
	}

	result, err := services.Code.Punch(identifier, ts)
	if err != nil {
		reportPunchError(deps, err)
		return
	}

	if result.State == punch.Active {
		_, _ = fmt.Fprintf(deps.Stdout, "Punched in %s at %s\n",
			result.Identifier, cli.FormatPunchTime(result.Timestamp, deps.Now()))
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Punched out %s at %s",
		result.Identifier, cli.FormatPunchTime(result.Timestamp, deps.Now()))
	if session, ok := lastSession(services, result.Identifier); ok {
		_, _ = fmt.Fprintf(deps.Stdout, " (session: %s)", cli.FormatDuration(session))
	}
	_, _ = fmt.Fprintln(deps.Stdout)
}

// lastSession returns the length of the most recently closed interval.
func lastSession(services *service.Services, identifier string) (time.Duration, bool) {
	c, err := services.Code.Get(identifier)
	if err != nil {
		return 0, false
	}
	intervals := c.Ledger.ClosedIntervals()
	if len(intervals) == 0 {
		return 0, false
	}
	return intervals[len(intervals)-1].Duration(), true
}

func reportPunchError(deps *cli.Deps, err error) {
	var nfErr *registry.NotFoundError
	var oooErr *punch.OutOfOrderError

	switch {
	case errors.Is(err, service.ErrNoDefaultCode):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: No charge code given and no default configured")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Pass an identifier ('tally punch ENG-100') or set default_code in the config file")
	case errors.As(err, &nfErr):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No charge code %q\n", nfErr.Identifier)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Create it first with 'tally create'")
	case errors.As(err, &oooErr):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Punch is out of order")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Punches must be strictly later than the code's last recorded event")
	default:
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to punch")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	deps.Exit(1)
}

// ShowStatus displays the currently active charge codes.
func ShowStatus(deps *cli.Deps) {
	services := openServices(deps)
	if services == nil {
		return
	}

	active, err := services.Code.Active(deps.Now())
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load charge codes")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(active) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No active charge codes")
		_, _ = fmt.Fprintln(deps.Stdout, "Punch in with: tally punch <identifier>")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%d active %s:\n", len(active), cli.Pluralize("code", len(active)))
	for _, st := range active {
		_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", st.Code.Identifier)
		_, _ = fmt.Fprintf(deps.Stdout, "    Since:   %s\n", cli.FormatPunchTime(st.Since, deps.Now()))
		_, _ = fmt.Fprintf(deps.Stdout, "    Elapsed: %s\n", cli.FormatDuration(st.ActiveFor))
	}
}
