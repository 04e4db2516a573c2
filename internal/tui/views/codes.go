package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/tui/ui"
)

// CodesModel is the model for the charge code list view
type CodesModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width    int
	height   int
	statuses []service.CodeStatus
	cursor   int
	loading  bool
	err      error
	notice   string

	// Input state for creating a code
	inputMode  bool
	inputFocus int // 0 identifier, 1 description
	idInput    textinput.Model
	descInput  textinput.Model
}

// NewCodesModel creates a new charge code list view model
func NewCodesModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) CodesModel {
	id := textinput.New()
	id.Placeholder = "Identifier (e.g. ENG-100)..."
	id.CharLimit = 64
	id.Width = 40

	desc := textinput.New()
	desc.Placeholder = "Description (optional)..."
	desc.CharLimit = 200
	desc.Width = 40

	return CodesModel{
		services:  services,
		styles:    styles,
		keys:      keys,
		loading:   true,
		idInput:   id,
		descInput: desc,
	}
}

// codesLoadedMsg is sent when the code list is loaded
type codesLoadedMsg struct {
	statuses []service.CodeStatus
	err      error
}

// codesTickMsg is sent every second to update elapsed times
type codesTickMsg time.Time

// Init implements tea.Model
func (m CodesModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadCodes(),
		m.tick(),
	)
}

// Update implements tea.Model
func (m CodesModel) Update(msg tea.Msg) (CodesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			return m.handleInputMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.statuses)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Punch):
			if m.cursor < len(m.statuses) {
				return m, m.punchCode(m.statuses[m.cursor].Code.Identifier)
			}
			return m, nil
		case key.Matches(msg, m.keys.New):
			m.inputMode = true
			m.inputFocus = 0
			m.idInput.SetValue("")
			m.descInput.SetValue("")
			m.idInput.Focus()
			m.descInput.Blur()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadCodes()
		}

	case codesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.statuses = msg.statuses
			if m.cursor >= len(m.statuses) && m.cursor > 0 {
				m.cursor = len(m.statuses) - 1
			}
		}
		return m, nil

	case codesTickMsg:
		// Recompute elapsed times from the clock rather than reloading.
		now := time.Time(msg)
		for i := range m.statuses {
			if !m.statuses[i].Since.IsZero() && now.After(m.statuses[i].Since) {
				m.statuses[i].ActiveFor = now.Sub(m.statuses[i].Since)
			}
		}
		return m, m.tick()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.inputMode {
		return m.updateInputs(msg)
	}
	return m, nil
}

// handleInputMode handles key events when creating a new code
func (m CodesModel) handleInputMode(msg tea.KeyMsg) (CodesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextTab): // Tab switches fields
		if m.inputFocus == 0 {
			m.inputFocus = 1
			m.idInput.Blur()
			m.descInput.Focus()
		} else {
			m.inputFocus = 0
			m.descInput.Blur()
			m.idInput.Focus()
		}
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Select): // Enter
		identifier := strings.TrimSpace(m.idInput.Value())
		if identifier == "" {
			return m, nil
		}
		m.inputMode = false
		m.idInput.Blur()
		m.descInput.Blur()
		return m, m.createCode(identifier, strings.TrimSpace(m.descInput.Value()))

	case key.Matches(msg, m.keys.Back): // Escape
		m.inputMode = false
		m.idInput.Blur()
		m.descInput.Blur()
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m CodesModel) updateInputs(msg tea.Msg) (CodesModel, tea.Cmd) {
	var cmd tea.Cmd
	if m.inputFocus == 0 {
		m.idInput, cmd = m.idInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model
func (m CodesModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Charge Codes"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if m.inputMode {
		b.WriteString(m.styles.StatLabel.Render("New Charge Code"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Identifier:"))
		b.WriteString("\n")
		b.WriteString(m.renderInput(m.idInput, m.inputFocus == 0))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Description:"))
		b.WriteString("\n")
		b.WriteString(m.renderInput(m.descInput, m.inputFocus == 1))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Tab to switch field, Enter to create, Esc to cancel"))
		return b.String()
	}

	if len(m.statuses) == 0 {
		b.WriteString(m.styles.ClockPassive.Render("No charge codes defined"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press 'n' to create one"))
		return b.String()
	}

	b.WriteString(RenderCodeList(m.statuses, m.styles, CodeRenderOptions{
		Width:  m.width,
		Cursor: m.cursor,
	}))

	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render(
		fmt.Sprintf("%d %s", len(m.statuses), pluralize("code", len(m.statuses)))))

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.notice))
	}

	return b.String()
}

func (m CodesModel) renderInput(input textinput.Model, focused bool) string {
	if focused {
		return m.styles.InputFocused.Render(input.View())
	}
	return m.styles.Input.Render(input.View())
}

// SetSize sets the view dimensions
func (m *CodesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadCodes creates a command to load the charge code list
func (m CodesModel) loadCodes() tea.Cmd {
	return func() tea.Msg {
		statuses, err := m.services.Code.List(time.Now())
		return codesLoadedMsg{statuses: statuses, err: err}
	}
}

// punchCode creates a command to toggle a code and reload the list
func (m CodesModel) punchCode(identifier string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.services.Code.Punch(identifier, time.Now()); err != nil {
			return codesLoadedMsg{err: err}
		}
		statuses, err := m.services.Code.List(time.Now())
		return codesLoadedMsg{statuses: statuses, err: err}
	}
}

// createCode creates a command to register a new code and reload the list
func (m CodesModel) createCode(identifier, description string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.services.Code.Create(identifier, description); err != nil {
			return codesLoadedMsg{err: err}
		}
		statuses, err := m.services.Code.List(time.Now())
		return codesLoadedMsg{statuses: statuses, err: err}
	}
}

// tick returns a command that sends a tick every second
func (m CodesModel) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return codesTickMsg(t)
	})
}

// IsInputMode returns true when the view is capturing keyboard input
func (m CodesModel) IsInputMode() bool {
	return m.inputMode
}
