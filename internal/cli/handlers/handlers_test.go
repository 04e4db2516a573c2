package handlers

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/tally/internal/cli"
	"github.com/xolan/tally/internal/config"
	"github.com/xolan/tally/internal/service"
)

var testNow = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	return setupTestDepsWithConfig(t, config.DefaultConfig())
}

func setupTestDepsWithConfig(t *testing.T, cfg config.Config) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	tmpDir := t.TempDir()
	services := service.NewServicesWithPaths(
		filepath.Join(tmpDir, "codes.json"),
		filepath.Join(tmpDir, "config.toml"),
		cfg,
	)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Now:      func() time.Time { return testNow },
		Services: func() (*service.Services, error) { return services, nil },
	}

	return deps, stdout, stderr, &exitCode
}
