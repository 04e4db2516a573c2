package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xolan/tally/internal/config"
	"github.com/xolan/tally/internal/punch"
	"github.com/xolan/tally/internal/registry"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// newTestServices wires services against temp files.
func newTestServices(t *testing.T, cfg config.Config) *Services {
	t.Helper()
	tmpDir := t.TempDir()
	return NewServicesWithPaths(
		filepath.Join(tmpDir, "codes.json"),
		filepath.Join(tmpDir, "config.toml"),
		cfg,
	)
}

func TestCodeService_CreateAndList(t *testing.T) {
	svc := newTestServices(t, config.DefaultConfig())

	if _, err := svc.Code.Create("ENG-100", "engineering"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Code.Create("ADM-001", "admin"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	statuses, err := svc.Code.List(t0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 codes, got %d", len(statuses))
	}
	if statuses[0].Code.Identifier != "ADM-001" {
		t.Errorf("expected identifier-sorted listing, got %q first", statuses[0].Code.Identifier)
	}
	for _, st := range statuses {
		if st.State != punch.Passive {
			t.Errorf("%s: fresh code should be passive", st.Code.Identifier)
		}
	}
}

func TestCodeService_PunchAndElapsed(t *testing.T) {
	svc := newTestServices(t, config.DefaultConfig())
	if _, err := svc.Code.Create("ENG-100", ""); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Code.Punch("ENG-100", t0)
	if err != nil {
		t.Fatalf("Punch failed: %v", err)
	}
	if result.State != punch.Active || result.Identifier != "ENG-100" {
		t.Errorf("unexpected result: %+v", result)
	}

	statuses, err := svc.Code.List(t0.Add(90 * time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if statuses[0].ActiveFor != 90*time.Minute {
		t.Errorf("expected 1h30m elapsed, got %v", statuses[0].ActiveFor)
	}
	if !statuses[0].Since.Equal(t0) {
		t.Errorf("expected since %v, got %v", t0, statuses[0].Since)
	}

	active, err := svc.Code.Active(t0.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].Code.Identifier != "ENG-100" {
		t.Errorf("expected ENG-100 active, got %+v", active)
	}
}

func TestCodeService_PunchDefaultCode(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DefaultCode = "ENG-100"
	svc := newTestServices(t, cfg)
	if _, err := svc.Code.Create("ENG-100", ""); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Code.Punch("", t0)
	if err != nil {
		t.Fatalf("Punch with default failed: %v", err)
	}
	if result.Identifier != "ENG-100" {
		t.Errorf("expected default code, got %q", result.Identifier)
	}
}

func TestCodeService_PunchNoDefaultConfigured(t *testing.T) {
	svc := newTestServices(t, config.DefaultConfig())
	_, err := svc.Code.Punch("", t0)
	if !errors.Is(err, ErrNoDefaultCode) {
		t.Fatalf("expected ErrNoDefaultCode, got %v", err)
	}
}

func TestCodeService_PunchUnknownCode(t *testing.T) {
	svc := newTestServices(t, config.DefaultConfig())
	_, err := svc.Code.Punch("MISSING", t0)
	var nfErr *registry.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *registry.NotFoundError, got %v", err)
	}
}

func TestCodeService_PersistsAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()
	dataPath := filepath.Join(tmpDir, "codes.json")
	configPath := filepath.Join(tmpDir, "config.toml")
	cfg := config.DefaultConfig()

	first := NewServicesWithPaths(dataPath, configPath, cfg)
	if _, err := first.Code.Create("ENG-100", "engineering"); err != nil {
		t.Fatal(err)
	}
	if _, err := first.Code.Punch("ENG-100", t0); err != nil {
		t.Fatal(err)
	}

	// A new service instance sees the punched state from disk.
	second := NewServicesWithPaths(dataPath, configPath, cfg)
	c, err := second.Code.Get("ENG-100")
	if err != nil {
		t.Fatalf("Get after reload failed: %v", err)
	}
	if c.State() != punch.Active {
		t.Errorf("expected Active after reload, got %v", c.State())
	}
}

func TestCodeService_Describe(t *testing.T) {
	svc := newTestServices(t, config.DefaultConfig())
	if _, err := svc.Code.Create("ENG-100", "old"); err != nil {
		t.Fatal(err)
	}

	if err := svc.Code.Describe("ENG-100", "new words"); err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	c, _ := svc.Code.Get("ENG-100")
	if c.Description != "new words" {
		t.Errorf("expected updated description, got %q", c.Description)
	}

	if err := svc.Code.Describe("MISSING", "x"); err == nil {
		t.Error("expected error for unknown code")
	}
}
