package handlers

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xolan/tally/internal/service"
)

func TestExportCSV(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDepsWithConfig(t, utcConfig())
	seedReportData(t, deps)
	stdout.Reset()

	ExportCSV(deps, nil, service.DateRangeSpec{Type: service.DateRangeToday})

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}

	records, err := csv.NewReader(strings.NewReader(stdout.String())).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if got := records[0]; got[0] != "identifier" || got[2] != "seconds" || got[3] != "hours" {
		t.Errorf("unexpected header: %v", got)
	}
	// Rows are identifier-sorted.
	if records[1][0] != "ADM-001" || records[2][0] != "ENG-100" {
		t.Errorf("unexpected row order: %v, %v", records[1], records[2])
	}
	if records[2][2] != "10800" {
		t.Errorf("ENG-100 seconds = %q, want 10800", records[2][2])
	}
	if records[2][3] != "3.0000" {
		t.Errorf("ENG-100 hours = %q, want 3.0000", records[2][3])
	}
}

func TestExportJSON(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDepsWithConfig(t, utcConfig())
	seedReportData(t, deps)
	stdout.Reset()

	ExportJSON(deps, nil, service.DateRangeSpec{Type: service.DateRangeToday})

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}

	var doc struct {
		Codes []struct {
			Identifier string  `json:"identifier"`
			Seconds    int64   `json:"seconds"`
			Hours      float64 `json:"hours"`
		} `json:"codes"`
		TotalSeconds int64 `json:"total_seconds"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(doc.Codes) != 2 {
		t.Fatalf("expected 2 codes, got %d", len(doc.Codes))
	}
	if doc.Codes[1].Identifier != "ENG-100" || doc.Codes[1].Seconds != 10800 || doc.Codes[1].Hours != 3.0 {
		t.Errorf("unexpected ENG-100 row: %+v", doc.Codes[1])
	}
	if doc.TotalSeconds != 14400 {
		t.Errorf("total seconds = %d, want 14400", doc.TotalSeconds)
	}
}

func TestExportJSON_EmptyRegistry(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDepsWithConfig(t, utcConfig())

	ExportJSON(deps, nil, service.DateRangeSpec{Type: service.DateRangeToday})

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), `"codes": []`) {
		t.Errorf("expected empty codes array, got %q", stdout.String())
	}
}

func TestExportCSV_UnknownCode(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	ExportCSV(deps, []string{"MISSING"}, service.DateRangeSpec{Type: service.DateRangeAll})

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "No charge code") {
		t.Errorf("expected not found error, got %q", stderr.String())
	}
}
