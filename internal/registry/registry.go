// Package registry implements the durable collection of charge codes. All
// mutation goes through the registry's methods, which validate before
// mutating and persist after (write-through).
package registry

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xolan/tally/internal/code"
	"github.com/xolan/tally/internal/punch"
)

// Gateway is the persistence contract the registry depends on. A save is
// atomic from the registry's perspective: it either fully succeeds or the
// prior persisted state remains intact. The on-disk representation is the
// gateway's own business.
type Gateway interface {
	Load() ([]code.ChargeCode, error)
	Save([]code.ChargeCode) error
}

// Registry maps identifiers to charge codes. It is the sole mutable shared
// structure in a process; callers never touch a code's ledger directly.
type Registry struct {
	codes   map[string]*code.ChargeCode
	gateway Gateway
}

// New returns an empty registry backed by gw.
func New(gw Gateway) *Registry {
	return &Registry{
		codes:   make(map[string]*code.ChargeCode),
		gateway: gw,
	}
}

// Open loads the persisted registry state through gw. Each persisted ledger
// is replayed through the punch validation rules before it is trusted;
// a ledger that violates alternation or monotonicity fails the load.
func Open(gw Gateway) (*Registry, error) {
	snapshot, err := gw.Load()
	if err != nil {
		return nil, err
	}

	r := New(gw)
	for i := range snapshot {
		c := snapshot[i]
		if _, ok := r.codes[c.Identifier]; ok {
			return nil, &DuplicateIdentifierError{Identifier: c.Identifier}
		}
		if err := punch.Validate(c.Ledger.Events()); err != nil {
			return nil, fmt.Errorf("charge code %q has an invalid ledger: %w", c.Identifier, err)
		}
		r.codes[c.Identifier] = &c
	}
	return r, nil
}

// Create adds a fresh passive charge code and persists the registry.
// It fails with *DuplicateIdentifierError if the identifier is taken.
func (r *Registry) Create(identifier, description string) (*code.ChargeCode, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("identifier cannot be empty")
	}
	if _, ok := r.codes[identifier]; ok {
		return nil, &DuplicateIdentifierError{Identifier: identifier}
	}

	c := code.New(identifier, description)
	r.codes[identifier] = c

	if err := r.save(); err != nil {
		delete(r.codes, identifier)
		return nil, err
	}
	return c, nil
}

// Get returns the charge code for identifier, or *NotFoundError.
func (r *Registry) Get(identifier string) (*code.ChargeCode, error) {
	c, ok := r.codes[identifier]
	if !ok {
		return nil, &NotFoundError{Identifier: identifier}
	}
	return c, nil
}

// List returns all charge codes sorted by identifier. The order is
// deterministic so listings and reports are stable across runs.
func (r *Registry) List() []*code.ChargeCode {
	out := make([]*code.ChargeCode, 0, len(r.codes))
	for _, c := range r.codes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Identifier < out[j].Identifier
	})
	return out
}

// Len returns the number of registered charge codes.
func (r *Registry) Len() int {
	return len(r.codes)
}

// Punch toggles the identified code at ts and persists the registry. A punch
// the ledger rejects is not persisted and leaves everything as it was.
func (r *Registry) Punch(identifier string, ts time.Time) (punch.State, error) {
	c, err := r.Get(identifier)
	if err != nil {
		return punch.Passive, err
	}

	state, err := c.Punch(ts)
	if err != nil {
		return state, err
	}

	if err := r.save(); err != nil {
		return state, err
	}
	return state, nil
}

// SetDescription updates the one mutable field of a charge code and
// persists the registry.
func (r *Registry) SetDescription(identifier, description string) error {
	c, err := r.Get(identifier)
	if err != nil {
		return err
	}
	c.Description = description
	return r.save()
}

// save writes the current state through the gateway.
func (r *Registry) save() error {
	snapshot := make([]code.ChargeCode, 0, len(r.codes))
	for _, c := range r.List() {
		snapshot = append(snapshot, *c)
	}
	return r.gateway.Save(snapshot)
}
