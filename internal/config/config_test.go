package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTempConfigFile writes content to a temp config.toml and returns its path.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	return tmpFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.WeekStartDay != "monday" {
		t.Errorf("DefaultConfig().WeekStartDay = %q, expected %q", cfg.WeekStartDay, "monday")
	}
	if cfg.Timezone != "Local" {
		t.Errorf("DefaultConfig().Timezone = %q, expected %q", cfg.Timezone, "Local")
	}
	if cfg.DataFile != "" || cfg.DefaultCode != "" || cfg.Theme != "" {
		t.Errorf("DefaultConfig() should leave optional fields empty, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() should validate, got %v", err)
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error for non-existent file: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected defaults for missing file, got %+v", cfg)
	}
}

func TestLoadOrDefault_ValidFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, `data_file = "work.json"
default_code = "ENG-100"
week_start_day = "Sunday"
timezone = "America/New_York"
theme = "dracula"`)

	cfg, err := LoadOrDefault(tmpFile)
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error: %v", err)
	}
	if cfg.DataFile != "work.json" {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
	if cfg.DefaultCode != "ENG-100" {
		t.Errorf("DefaultCode = %q", cfg.DefaultCode)
	}
	// Normalized to lowercase.
	if cfg.WeekStartDay != "sunday" {
		t.Errorf("WeekStartDay = %q, expected %q", cfg.WeekStartDay, "sunday")
	}
	if cfg.Timezone != "America/New_York" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.Theme != "dracula" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
}

func TestLoadOrDefault_PartialFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, `default_code = "OPS-200"`)

	cfg, err := LoadOrDefault(tmpFile)
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error: %v", err)
	}
	if cfg.DefaultCode != "OPS-200" {
		t.Errorf("DefaultCode = %q", cfg.DefaultCode)
	}
	// Unset fields keep their defaults.
	if cfg.WeekStartDay != "monday" {
		t.Errorf("WeekStartDay = %q, expected default", cfg.WeekStartDay)
	}
}

func TestLoadOrDefault_InvalidTOML(t *testing.T) {
	tmpFile := createTempConfigFile(t, `week_start_day = [broken`)
	if _, err := LoadOrDefault(tmpFile); err == nil {
		t.Error("LoadOrDefault() should return error for invalid TOML")
	}
}

func TestLoadOrDefault_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad week start", `week_start_day = "friday"`},
		{"bad timezone", `timezone = "Mars/Olympus_Mons"`},
		{"data file with path", `data_file = "../../etc/passwd"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.content)
			if _, err := LoadOrDefault(tmpFile); err == nil {
				t.Errorf("LoadOrDefault() should reject %s", tt.name)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	want := DefaultConfig()
	want.DefaultCode = "ENG-100"
	want.Theme = "nord"
	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if got != want {
		t.Errorf("round trip changed config: %+v -> %+v", want, got)
	}
}

func TestConfig_Location(t *testing.T) {
	cfg := DefaultConfig()
	loc, err := cfg.Location()
	if err != nil || loc == nil {
		t.Fatalf("Location() for Local failed: %v", err)
	}

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	if err != nil {
		t.Fatalf("Location() for UTC failed: %v", err)
	}
	if loc.String() != "UTC" {
		t.Errorf("expected UTC, got %v", loc)
	}
}

func TestGenerateSampleConfig(t *testing.T) {
	sample := GenerateSampleConfig()
	for _, key := range []string{"data_file", "default_code", "week_start_day", "timezone", "theme"} {
		if !strings.Contains(sample, key) {
			t.Errorf("sample config missing %q", key)
		}
	}
}
