package views

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/tally/internal/config"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/tui/ui"
)

func setupTestServices(t *testing.T) *service.Services {
	t.Helper()
	tmpDir := t.TempDir()
	return service.NewServicesWithPaths(
		filepath.Join(tmpDir, "codes.json"),
		filepath.Join(tmpDir, "config.toml"),
		config.DefaultConfig(),
	)
}

func testStyles() ui.Styles {
	return ui.DefaultStyles()
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// runCmd executes a command and feeds the resulting message back into the model
func runCodesCmd(t *testing.T, m CodesModel, cmd tea.Cmd) CodesModel {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	m, _ = m.Update(msg)
	return m
}

// --- CodesModel ---

func TestCodesModel_Load(t *testing.T) {
	services := setupTestServices(t)
	if _, err := services.Code.Create("ENG-100", "platform work"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	m := NewCodesModel(services, testStyles(), ui.DefaultKeyMap())

	m = runCodesCmd(t, m, m.loadCodes())

	if m.loading {
		t.Error("expected loading to be false after load")
	}
	if len(m.statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(m.statuses))
	}
	if m.statuses[0].Code.Identifier != "ENG-100" {
		t.Errorf("expected ENG-100, got %s", m.statuses[0].Code.Identifier)
	}
}

func TestCodesModel_View_Empty(t *testing.T) {
	services := setupTestServices(t)
	m := NewCodesModel(services, testStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 24)

	m = runCodesCmd(t, m, m.loadCodes())

	view := m.View()
	if !strings.Contains(view, "No charge codes defined") {
		t.Errorf("expected empty message, got: %s", view)
	}
	if !strings.Contains(view, "'n'") {
		t.Errorf("expected create hint, got: %s", view)
	}
}

func TestCodesModel_View_WithCodes(t *testing.T) {
	services := setupTestServices(t)
	if _, err := services.Code.Create("ENG-100", "platform work"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	m := NewCodesModel(services, testStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 24)
	m = runCodesCmd(t, m, m.loadCodes())

	view := m.View()
	if !strings.Contains(view, "ENG-100") {
		t.Errorf("expected identifier in view, got: %s", view)
	}
	if !strings.Contains(view, "passive") {
		t.Errorf("expected passive state, got: %s", view)
	}
	if !strings.Contains(view, "1 code") {
		t.Errorf("expected code count, got: %s", view)
	}
}

func TestCodesModel_CursorNavigation(t *testing.T) {
	services := setupTestServices(t)
	for _, id := range []string{"ADM-001", "ENG-100", "ENG-200"} {
		if _, err := services.Code.Create(id, ""); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	m := NewCodesModel(services, testStyles(), ui.DefaultKeyMap())
	m = runCodesCmd(t, m, m.loadCodes())

	// Down twice
	m, _ = m.Update(keyMsg('j'))
	m, _ = m.Update(keyMsg('j'))
	if m.cursor != 2 {
		t.Errorf("expected cursor 2, got %d", m.cursor)
	}

	// Down at bottom stays put
	m, _ = m.Update(keyMsg('j'))
	if m.cursor != 2 {
		t.Errorf("expected cursor to stay at 2, got %d", m.cursor)
	}

	// Up
	m, _ = m.Update(keyMsg('k'))
	if m.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", m.cursor)
	}
}

func TestCodesModel_PunchSelected(t *testing.T) {
	services := setupTestServices(t)
	if _, err := services.Code.Create("ENG-100", ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	m := NewCodesModel(services, testStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 24)
	m = runCodesCmd(t, m, m.loadCodes())

	// 'p' punches the selected code and reloads
	var cmd tea.Cmd
	m, cmd = m.Update(keyMsg('p'))
	m = runCodesCmd(t, m, cmd)

	if !strings.Contains(m.View(), "active") {
		t.Errorf("expected active state after punch, got: %s", m.View())
	}
}

func TestCodesModel_CreateFlow(t *testing.T) {
	services := setupTestServices(t)
	m := NewCodesModel(services, testStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 24)
	m = runCodesCmd(t, m, m.loadCodes())

	// 'n' opens the create form
	m, _ = m.Update(keyMsg('n'))
	if !m.IsInputMode() {
		t.Fatal("expected input mode after 'n'")
	}
	if !strings.Contains(m.View(), "New Charge Code") {
		t.Errorf("expected create form, got: %s", m.View())
	}

	// Type an identifier
	for _, r := range "OPS-1" {
		m, _ = m.Update(keyMsg(r))
	}
	if m.idInput.Value() != "OPS-1" {
		t.Errorf("expected input 'OPS-1', got %q", m.idInput.Value())
	}

	// Tab switches to the description field
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.inputFocus != 1 {
		t.Errorf("expected focus on description, got %d", m.inputFocus)
	}

	// Enter creates and closes the form
	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = runCodesCmd(t, m, cmd)

	if m.IsInputMode() {
		t.Error("expected input mode to be closed")
	}
	if len(m.statuses) != 1 || m.statuses[0].Code.Identifier != "OPS-1" {
		t.Errorf("expected created code in list, got %+v", m.statuses)
	}
}

func TestCodesModel_CreateCancel(t *testing.T) {
	services := setupTestServices(t)
	m := NewCodesModel(services, testStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(keyMsg('n'))
	if !m.IsInputMode() {
		t.Fatal("expected input mode")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.IsInputMode() {
		t.Error("expected input mode to be closed after escape")
	}
}

func TestCodesModel_Tick_UpdatesElapsed(t *testing.T) {
	services := setupTestServices(t)
	if _, err := services.Code.Create("ENG-100", ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	start := time.Now().Add(-30 * time.Minute)
	if _, err := services.Code.Punch("ENG-100", start); err != nil {
		t.Fatalf("Punch failed: %v", err)
	}

	m := NewCodesModel(services, testStyles(), ui.DefaultKeyMap())
	m = runCodesCmd(t, m, m.loadCodes())

	m, cmd := m.Update(codesTickMsg(time.Now().Add(time.Hour)))
	if cmd == nil {
		t.Error("expected tick to schedule the next tick")
	}
	if m.statuses[0].ActiveFor < 89*time.Minute {
		t.Errorf("expected elapsed near 90m, got %v", m.statuses[0].ActiveFor)
	}
}

// --- PunchModel ---

func runPunchCmd(t *testing.T, m PunchModel, cmd tea.Cmd) PunchModel {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	m, _ = m.Update(msg)
	return m
}

func TestPunchModel_View_Idle(t *testing.T) {
	services := setupTestServices(t)
	m := NewPunchModel(services, testStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 24)

	m = runPunchCmd(t, m, m.loadActive(""))

	view := m.View()
	if !strings.Contains(view, "Nothing clocked in") {
		t.Errorf("expected idle message, got: %s", view)
	}
}

func TestPunchModel_PunchFlow(t *testing.T) {
	services := setupTestServices(t)
	if _, err := services.Code.Create("ENG-100", ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	m := NewPunchModel(services, testStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 24)
	m = runPunchCmd(t, m, m.loadActive(""))

	// 'p' opens the identifier input
	m, _ = m.Update(keyMsg('p'))
	if !m.IsInputMode() {
		t.Fatal("expected input mode after 'p'")
	}

	for _, r := range "ENG-100" {
		m, _ = m.Update(keyMsg(r))
	}

	// Enter punches the code
	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = runPunchCmd(t, m, cmd)

	if m.IsInputMode() {
		t.Error("expected input mode to be closed")
	}
	if len(m.active) != 1 {
		t.Fatalf("expected 1 active code, got %d", len(m.active))
	}
	if !strings.Contains(m.View(), "Punched in ENG-100") {
		t.Errorf("expected punch notice, got: %s", m.View())
	}
}

func TestPunchModel_UnknownCode(t *testing.T) {
	services := setupTestServices(t)
	m := NewPunchModel(services, testStyles(), ui.DefaultKeyMap())
	m = runPunchCmd(t, m, m.loadActive(""))

	m = runPunchCmd(t, m, m.punchCode("NOPE-1"))

	if m.err == nil {
		t.Error("expected error for unknown code")
	}
	if !strings.Contains(m.View(), "Error") {
		t.Errorf("expected error in view, got: %s", m.View())
	}
}

func TestPunchModel_DefaultCodePlaceholder(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DefaultCode = "ENG-100"
	services := service.NewServicesWithPaths(
		filepath.Join(tmpDir, "codes.json"),
		filepath.Join(tmpDir, "config.toml"),
		cfg,
	)

	m := NewPunchModel(services, testStyles(), ui.DefaultKeyMap())

	if !strings.Contains(m.input.Placeholder, "ENG-100") {
		t.Errorf("expected default code in placeholder, got %q", m.input.Placeholder)
	}
}

// --- ReportModel ---

func runReportCmd(t *testing.T, m ReportModel, cmd tea.Cmd) ReportModel {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	m, _ = m.Update(msg)
	return m
}

func TestReportModel_Load(t *testing.T) {
	services := setupTestServices(t)
	if _, err := services.Code.Create("ENG-100", "platform"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	now := time.Now()
	if _, err := services.Code.Punch("ENG-100", now.Add(-2*time.Hour)); err != nil {
		t.Fatalf("Punch failed: %v", err)
	}
	if _, err := services.Code.Punch("ENG-100", now.Add(-time.Hour)); err != nil {
		t.Fatalf("Punch failed: %v", err)
	}

	m := NewReportModel(services, testStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 24)
	m = runReportCmd(t, m, m.loadReport())

	view := m.View()
	if !strings.Contains(view, "ENG-100") {
		t.Errorf("expected code in report, got: %s", view)
	}
	if !strings.Contains(view, "1h") {
		t.Errorf("expected 1h total, got: %s", view)
	}
}

func TestReportModel_RangeToggles(t *testing.T) {
	services := setupTestServices(t)
	m := NewReportModel(services, testStyles(), ui.DefaultKeyMap())

	tests := []struct {
		key      rune
		expected service.DateRange
	}{
		{'w', service.DateRangeThisWeek},
		{'m', service.DateRangeThisMonth},
		{'a', service.DateRangeAll},
		{'t', service.DateRangeToday},
	}

	for _, tt := range tests {
		var cmd tea.Cmd
		m, cmd = m.Update(keyMsg(tt.key))
		if m.spec.Type != tt.expected {
			t.Errorf("pressing %c: expected range %v, got %v", tt.key, tt.expected, m.spec.Type)
		}
		if cmd == nil {
			t.Errorf("pressing %c: expected a reload command", tt.key)
		}
	}
}

func TestReportModel_View_Empty(t *testing.T) {
	services := setupTestServices(t)
	m := NewReportModel(services, testStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 24)
	m = runReportCmd(t, m, m.loadReport())

	if !strings.Contains(m.View(), "No charge codes to report") {
		t.Errorf("expected empty message, got: %s", m.View())
	}
}

// --- ConfigModel ---

func newTestConfigModel(t *testing.T) ConfigModel {
	t.Helper()
	services := setupTestServices(t)
	tp := ui.NewThemeProvider("")
	return NewConfigModel(services, tp, tp.Styles(), ui.DefaultKeyMap())
}

func TestConfigModel_Load(t *testing.T) {
	m := newTestConfigModel(t)
	m.SetSize(80, 24)

	msg := m.loadConfig()()
	m, _ = m.Update(msg)

	view := m.View()
	if !strings.Contains(view, "data_file") {
		t.Errorf("expected data_file line, got: %s", view)
	}
	if !strings.Contains(view, "codes.json") {
		t.Errorf("expected data file name, got: %s", view)
	}
	if !strings.Contains(view, "(none)") {
		t.Errorf("expected '(none)' default code, got: %s", view)
	}
	if !strings.Contains(view, "week_start_day") {
		t.Errorf("expected week_start_day line, got: %s", view)
	}
}

func TestConfigModel_ThemeSelector(t *testing.T) {
	m := newTestConfigModel(t)
	m.SetSize(80, 24)

	msg := m.loadConfig()()
	m, _ = m.Update(msg)

	// 't' opens the selector
	m, _ = m.Update(keyMsg('t'))
	if !m.selectingTheme {
		t.Fatal("expected theme selector to open")
	}
	if !strings.Contains(m.View(), "Select a theme") {
		t.Errorf("expected selector in view, got: %s", m.View())
	}

	// Navigate and select
	startCursor := m.themeCursor
	m, _ = m.Update(keyMsg('j'))
	if m.themeCursor != startCursor+1 && startCursor < len(m.themes)-1 {
		t.Errorf("expected cursor to advance, got %d", m.themeCursor)
	}

	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.selectingTheme {
		t.Error("expected selector to close after selection")
	}
	if cmd == nil {
		t.Fatal("expected a theme change command")
	}

	changeMsg, ok := cmd().(ui.ThemeChangeRequestMsg)
	if !ok {
		t.Fatal("expected ThemeChangeRequestMsg")
	}
	if changeMsg.ThemeName == "" {
		t.Error("expected a theme name in the request")
	}
}

func TestConfigModel_ThemeSelectorCancel(t *testing.T) {
	m := newTestConfigModel(t)

	m, _ = m.Update(keyMsg('t'))
	if !m.selectingTheme {
		t.Fatal("expected theme selector to open")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.selectingTheme {
		t.Error("expected selector to close on escape")
	}
}

// --- common helpers ---

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"minutes", 30 * time.Minute, "30m"},
		{"exact hours", 2 * time.Hour, "2h"},
		{"hours and minutes", 90 * time.Minute, "1h 30m"},
		{"zero", 0, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.duration); got != tt.expected {
				t.Errorf("formatDuration(%v) = %q, expected %q", tt.duration, got, tt.expected)
			}
		})
	}
}

func TestRenderCodeList(t *testing.T) {
	services := setupTestServices(t)
	if _, err := services.Code.Create("ENG-100", "platform work"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	statuses, err := services.Code.List(time.Now())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	rendered := RenderCodeList(statuses, testStyles(), CodeRenderOptions{Width: 80, Cursor: 0})

	if !strings.Contains(rendered, "ENG-100") {
		t.Errorf("expected identifier, got: %s", rendered)
	}
	if !strings.Contains(rendered, "passive") {
		t.Errorf("expected passive marker, got: %s", rendered)
	}
}
