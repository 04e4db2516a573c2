package report

import (
	"fmt"
	"time"
)

// InvalidPeriodError is returned when a bucketed report is requested with a
// non-positive period length.
type InvalidPeriodError struct {
	Period time.Duration
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("period length must be positive, got %v", e.Period)
}
