package main

import (
	"fmt"
	"os"

	"github.com/xolan/tally/cmd"
	"github.com/xolan/tally/internal/config"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is os.Exit, replaceable in tests.
var exitFunc = os.Exit

func run() int {
	cmd.SetVersionInfo(version, commit, date)

	// Fail early if the config directory cannot be resolved
	if _, err := config.GetConfigPath(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error resolving config path: %v\n", err)
		return 1
	}

	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	exitFunc(run())
}
