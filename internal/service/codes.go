package service

import (
	"fmt"
	"time"

	"github.com/xolan/tally/internal/code"
	"github.com/xolan/tally/internal/config"
	"github.com/xolan/tally/internal/punch"
	"github.com/xolan/tally/internal/registry"
	"github.com/xolan/tally/internal/storage"
)

// ErrNoDefaultCode is returned when a punch names no charge code and the
// config defines no default.
var ErrNoDefaultCode = fmt.Errorf("no charge code given and no default_code configured")

// CodeService provides operations on the charge code registry. The registry
// is loaded lazily on first use and kept for the life of the service; all
// mutations write through to the data file.
type CodeService struct {
	gateway *storage.FileGateway
	config  config.Config
	reg     *registry.Registry
}

// NewCodeService creates a new CodeService persisting to dataPath.
func NewCodeService(dataPath string, cfg config.Config) *CodeService {
	return &CodeService{
		gateway: storage.NewFileGateway(dataPath),
		config:  cfg,
	}
}

// Registry returns the loaded registry, opening it from the data file on
// first call. Persisted ledgers are validated during the open.
func (s *CodeService) Registry() (*registry.Registry, error) {
	if s.reg == nil {
		reg, err := registry.Open(s.gateway)
		if err != nil {
			return nil, fmt.Errorf("failed to load charge codes: %w", err)
		}
		s.reg = reg
	}
	return s.reg, nil
}

// DataPath returns the location of the registry data file.
func (s *CodeService) DataPath() string {
	return s.gateway.Path()
}

// Create registers a fresh passive charge code.
func (s *CodeService) Create(identifier, description string) (*code.ChargeCode, error) {
	reg, err := s.Registry()
	if err != nil {
		return nil, err
	}
	return reg.Create(identifier, description)
}

// Get returns one charge code.
func (s *CodeService) Get(identifier string) (*code.ChargeCode, error) {
	reg, err := s.Registry()
	if err != nil {
		return nil, err
	}
	return reg.Get(identifier)
}

// List returns all charge codes sorted by identifier, each with its clock
// state derived as of asOf.
func (s *CodeService) List(asOf time.Time) ([]CodeStatus, error) {
	reg, err := s.Registry()
	if err != nil {
		return nil, err
	}

	var statuses []CodeStatus
	for _, c := range reg.List() {
		status := CodeStatus{Code: c, State: c.State()}
		if since, ok := c.ActiveSince(); ok {
			status.Since = since
			if asOf.After(since) {
				status.ActiveFor = asOf.Sub(since)
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Punch toggles the identified code at ts. An empty identifier selects the
// configured default code; without one, ErrNoDefaultCode is returned.
func (s *CodeService) Punch(identifier string, ts time.Time) (PunchResult, error) {
	if identifier == "" {
		if s.config.DefaultCode == "" {
			return PunchResult{}, ErrNoDefaultCode
		}
		identifier = s.config.DefaultCode
	}

	reg, err := s.Registry()
	if err != nil {
		return PunchResult{}, err
	}

	state, err := reg.Punch(identifier, ts)
	if err != nil {
		return PunchResult{}, err
	}
	return PunchResult{Identifier: identifier, State: state, Timestamp: ts}, nil
}

// Describe updates a charge code's description.
func (s *CodeService) Describe(identifier, description string) error {
	reg, err := s.Registry()
	if err != nil {
		return err
	}
	return reg.SetDescription(identifier, description)
}

// Active returns the codes currently punched in, sorted by identifier.
func (s *CodeService) Active(asOf time.Time) ([]CodeStatus, error) {
	statuses, err := s.List(asOf)
	if err != nil {
		return nil, err
	}
	var active []CodeStatus
	for _, st := range statuses {
		if st.State == punch.Active {
			active = append(active, st)
		}
	}
	return active, nil
}
