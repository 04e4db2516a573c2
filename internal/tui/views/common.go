package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/tally/internal/punch"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/tui/ui"
)

// CodeRenderOptions configures how charge codes are rendered
type CodeRenderOptions struct {
	Width  int // Available width for rendering
	Cursor int // Currently selected code index (-1 for none)
}

// RenderCodeList renders a list of charge codes with aligned columns
func RenderCodeList(statuses []service.CodeStatus, styles ui.Styles, opts CodeRenderOptions) string {
	if len(statuses) == 0 {
		return ""
	}

	maxIDWidth := 0
	for _, st := range statuses {
		if len(st.Code.Identifier) > maxIDWidth {
			maxIDWidth = len(st.Code.Identifier)
		}
	}

	maxDescWidth := opts.Width - maxIDWidth - 24
	if maxDescWidth < 16 {
		maxDescWidth = 16
	}

	var b strings.Builder
	for i, st := range statuses {
		style := styles.CodeNormal
		if i == opts.Cursor {
			style = styles.CodeSelected
		}

		id := styles.CodeIdentifier.Render(fmt.Sprintf("%-*s", maxIDWidth, st.Code.Identifier))

		var stateCol string
		if st.State == punch.Active {
			stateCol = styles.ClockActive.Render("● active") + " " +
				styles.ClockElapsed.Render(formatDuration(st.ActiveFor))
		} else {
			stateCol = styles.ClockPassive.Render("○ passive")
		}

		desc := st.Code.Description
		if len(desc) > maxDescWidth {
			desc = desc[:maxDescWidth-1] + "…"
		}

		line := fmt.Sprintf("%s  %s  %s", id, stateCol, styles.CodeDesc.Render(desc))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// formatDuration formats a duration as human-readable
func formatDuration(d time.Duration) string {
	totalMinutes := int(d.Minutes())
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm", totalMinutes)
	}
	hours := totalMinutes / 60
	mins := totalMinutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
