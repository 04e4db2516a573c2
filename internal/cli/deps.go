package cli

import (
	"io"
	"os"
	"time"

	"github.com/xolan/tally/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)
	Now    func() time.Time

	// Services constructs the service layer on first use. Commands call
	// this instead of holding a Services directly so that construction
	// errors surface per invocation.
	Services func() (*service.Services, error)
}

// DefaultDeps creates a new Deps with default values
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Now:      time.Now,
		Services: service.NewServices,
	}
}

// Global deps instance for CLI
var deps = DefaultDeps()

// SetDeps sets the global deps (for testing)
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets to default deps
func ResetDeps() {
	deps = DefaultDeps()
}

// GetDeps returns the current deps
func GetDeps() *Deps {
	return deps
}
