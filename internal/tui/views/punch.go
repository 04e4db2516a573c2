package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/tally/internal/punch"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/tui/ui"
)

// PunchModel is the model for the punch clock view
type PunchModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	active  []service.CodeStatus
	loading bool
	err     error
	notice  string

	// Input state for punching by identifier
	inputMode bool
	input     textinput.Model
}

// NewPunchModel creates a new punch clock view model
func NewPunchModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) PunchModel {
	ti := textinput.New()
	ti.Placeholder = "Charge code identifier..."
	ti.CharLimit = 64
	ti.Width = 40

	if def := services.Config.Get().DefaultCode; def != "" {
		ti.Placeholder = fmt.Sprintf("Identifier (empty for %s)...", def)
	}

	return PunchModel{
		services: services,
		styles:   styles,
		keys:     keys,
		loading:  true,
		input:    ti,
	}
}

// punchLoadedMsg is sent when the active code list is loaded
type punchLoadedMsg struct {
	active []service.CodeStatus
	notice string
	err    error
}

// punchTickMsg is sent every second to update elapsed times
type punchTickMsg time.Time

// Init implements tea.Model
func (m PunchModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadActive(""),
		m.tick(),
	)
}

// Update implements tea.Model
func (m PunchModel) Update(msg tea.Msg) (PunchModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			return m.handleInputMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Punch):
			m.inputMode = true
			m.input.Focus()
			m.input.SetValue("")
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadActive("")
		}

	case punchLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.inputMode = false
		if msg.err == nil {
			m.active = msg.active
			m.notice = msg.notice
		}
		return m, nil

	case punchTickMsg:
		now := time.Time(msg)
		for i := range m.active {
			if now.After(m.active[i].Since) {
				m.active[i].ActiveFor = now.Sub(m.active[i].Since)
			}
		}
		return m, m.tick()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.inputMode {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleInputMode handles key events when entering an identifier
func (m PunchModel) handleInputMode(msg tea.KeyMsg) (PunchModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select): // Enter
		identifier := strings.TrimSpace(m.input.Value())
		m.inputMode = false
		m.input.Blur()
		return m, m.punchCode(identifier)
	case key.Matches(msg, m.keys.Back): // Escape
		m.inputMode = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m PunchModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Punch Clock"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press 'p' to punch, 'r' to refresh"))
		return b.String()
	}

	if m.inputMode {
		b.WriteString(m.styles.StatLabel.Render("Punch Charge Code"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.InputFocused.Render(m.input.View()))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Enter to punch, Esc to cancel"))
		return b.String()
	}

	if len(m.active) == 0 {
		b.WriteString(m.styles.ClockPassive.Render("Nothing clocked in"))
		b.WriteString("\n\n")
	} else {
		b.WriteString(m.styles.ClockActive.Render(
			fmt.Sprintf("● %d %s clocked in", len(m.active), pluralize("code", len(m.active)))))
		b.WriteString("\n\n")

		for _, st := range m.active {
			b.WriteString(m.styles.StatLabel.Render("Code:"))
			b.WriteString(" ")
			b.WriteString(m.styles.StatValue.Render(st.Code.Identifier))
			b.WriteString("\n")
			b.WriteString(m.styles.StatLabel.Render("Since:"))
			b.WriteString(" ")
			b.WriteString(m.styles.StatValue.Render(formatPunchTime(st.Since)))
			b.WriteString("\n")
			b.WriteString(m.styles.StatLabel.Render("Elapsed:"))
			b.WriteString(" ")
			b.WriteString(m.styles.ClockElapsed.Render(formatDuration(st.ActiveFor)))
			b.WriteString("\n\n")
		}
	}

	if m.notice != "" {
		b.WriteString(m.styles.Success.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.StatLabel.Render("Press 'p' to punch a code"))

	return b.String()
}

// SetSize sets the view dimensions
func (m *PunchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadActive creates a command to load the active codes
func (m PunchModel) loadActive(notice string) tea.Cmd {
	return func() tea.Msg {
		active, err := m.services.Code.Active(time.Now())
		return punchLoadedMsg{active: active, notice: notice, err: err}
	}
}

// punchCode creates a command to toggle a code and reload the active list
func (m PunchModel) punchCode(identifier string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.services.Code.Punch(identifier, time.Now())
		if err != nil {
			return punchLoadedMsg{err: err}
		}

		notice := fmt.Sprintf("Punched out %s", result.Identifier)
		if result.State == punch.Active {
			notice = fmt.Sprintf("Punched in %s", result.Identifier)
		}

		active, err := m.services.Code.Active(time.Now())
		return punchLoadedMsg{active: active, notice: notice, err: err}
	}
}

// tick returns a command that sends a tick every second
func (m PunchModel) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return punchTickMsg(t)
	})
}

func formatPunchTime(t time.Time) string {
	now := time.Now()
	if t.Year() == now.Year() && t.Month() == now.Month() && t.Day() == now.Day() {
		return "today at " + t.Format("3:04 PM")
	}
	return t.Format("Mon Jan 2 at 3:04 PM")
}

// IsInputMode returns true when the view is capturing keyboard input
func (m PunchModel) IsInputMode() bool {
	return m.inputMode
}
