package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xolan/tally/internal/punch"
)

// Problem describes one defect found in the data file.
type Problem struct {
	Identifier string // affected charge code, empty for file-level problems
	Detail     string
}

// Health contains the results of inspecting the data file: counts of codes
// and events plus details about anything that would fail a load.
type Health struct {
	Codes    int
	Events   int
	Problems []Problem
}

// OK reports whether the data file is loadable as-is.
func (h Health) OK() bool {
	return len(h.Problems) == 0
}

// inspectRecord mirrors record but keeps events raw so one bad event is
// reported per-code instead of failing the whole decode.
type inspectRecord struct {
	Identifier string            `json:"identifier"`
	Events     []json.RawMessage `json:"events"`
}

// Inspect analyzes the data file without loading it into a registry. It
// reports structural problems (invalid JSON, unknown punch kinds, ledgers
// violating alternation or timestamp order) rather than failing on the
// first one. A missing file is healthy and empty.
func Inspect(path string) (Health, error) {
	var health Health

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return health, nil
		}
		return health, err
	}

	var doc struct {
		Codes []inspectRecord `json:"codes"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		health.Problems = append(health.Problems, Problem{
			Detail: fmt.Sprintf("not valid JSON: %v", err),
		})
		return health, nil
	}

	seen := make(map[string]bool)
	for _, rec := range doc.Codes {
		health.Codes++
		if seen[rec.Identifier] {
			health.Problems = append(health.Problems, Problem{
				Identifier: rec.Identifier,
				Detail:     "duplicate identifier",
			})
			continue
		}
		seen[rec.Identifier] = true

		var events []punch.Event
		bad := false
		for i, raw := range rec.Events {
			var e punch.Event
			if err := json.Unmarshal(raw, &e); err != nil {
				health.Problems = append(health.Problems, Problem{
					Identifier: rec.Identifier,
					Detail:     fmt.Sprintf("event %d: %v", i+1, err),
				})
				bad = true
				break
			}
			events = append(events, e)
		}
		if bad {
			continue
		}

		health.Events += len(events)
		if err := punch.Validate(events); err != nil {
			health.Problems = append(health.Problems, Problem{
				Identifier: rec.Identifier,
				Detail:     err.Error(),
			})
		}
	}

	return health, nil
}
