package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/tally/internal/report"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/tui/ui"
)

// ReportModel is the model for the report view
type ReportModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	spec    service.DateRangeSpec
	summary *report.Summary
	period  string
	loading bool
	err     error
}

// NewReportModel creates a new report view model
func NewReportModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) ReportModel {
	return ReportModel{
		services: services,
		styles:   styles,
		keys:     keys,
		spec:     service.DateRangeSpec{Type: service.DateRangeToday},
		loading:  true,
	}
}

// reportLoadedMsg is sent when the summary is computed
type reportLoadedMsg struct {
	summary *report.Summary
	period  string
	err     error
}

// Init implements tea.Model
func (m ReportModel) Init() tea.Cmd {
	return m.loadReport()
}

// Update implements tea.Model
func (m ReportModel) Update(msg tea.Msg) (ReportModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Today):
			m.spec = service.DateRangeSpec{Type: service.DateRangeToday}
			return m, m.loadReport()
		case key.Matches(msg, m.keys.ThisWeek):
			m.spec = service.DateRangeSpec{Type: service.DateRangeThisWeek}
			return m, m.loadReport()
		case key.Matches(msg, m.keys.ThisMonth):
			m.spec = service.DateRangeSpec{Type: service.DateRangeThisMonth}
			return m, m.loadReport()
		case key.Matches(msg, m.keys.AllTime):
			m.spec = service.DateRangeSpec{Type: service.DateRangeAll}
			return m, m.loadReport()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadReport()
		}

	case reportLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.summary = msg.summary
			m.period = msg.period
		}
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m ReportModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Report"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	b.WriteString(m.styles.StatLabel.Render("Period:"))
	b.WriteString(" ")
	b.WriteString(m.styles.StatValue.Render(m.period))
	b.WriteString("\n\n")

	if m.summary == nil || len(m.summary.Rows) == 0 {
		b.WriteString(m.styles.ClockPassive.Render("No charge codes to report"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("t today  w week  m month  a all time"))
		return b.String()
	}

	b.WriteString(strings.Repeat("─", min(50, m.width)))
	b.WriteString("\n")

	maxIDWidth := 0
	for _, row := range m.summary.Rows {
		if len(row.Identifier) > maxIDWidth {
			maxIDWidth = len(row.Identifier)
		}
	}

	for _, row := range m.summary.Rows {
		id := m.styles.CodeIdentifier.Render(fmt.Sprintf("%-*s", maxIDWidth, row.Identifier))
		dur := m.styles.CodeDuration.Render(formatDuration(row.Duration))
		line := fmt.Sprintf("%s %s", id, dur)
		if row.Description != "" {
			line += "  " + m.styles.CodeDesc.Render(row.Description)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", min(50, m.width)))
	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render("Total:"))
	b.WriteString(" ")
	b.WriteString(m.styles.ClockElapsed.Render(formatDuration(m.summary.Total)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.StatLabel.Render("t today  w week  m month  a all time  r refresh"))

	return b.String()
}

// SetSize sets the view dimensions
func (m *ReportModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadReport creates a command to compute the summary for the current range
func (m ReportModel) loadReport() tea.Cmd {
	spec := m.spec
	return func() tea.Msg {
		summary, period, err := m.services.Report.Summarize(nil, spec, time.Now(), report.SortByDuration)
		return reportLoadedMsg{summary: summary, period: period, err: err}
	}
}
