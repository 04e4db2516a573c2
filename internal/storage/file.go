// Package storage implements the persistence gateway for the charge code
// registry: a single JSON data file under the user config directory,
// written atomically with rotating backups.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xolan/tally/internal/code"
	"github.com/xolan/tally/internal/osutil"
	"github.com/xolan/tally/internal/punch"
)

const (
	// AppName is the application name used for the config directory
	AppName = "tally"
	// DataFile is the default name of the JSON data file
	DataFile = "codes.json"
)

// record is the on-disk shape of one charge code.
type record struct {
	Identifier  string        `json:"identifier"`
	Description string        `json:"description"`
	Events      []punch.Event `json:"events"`
}

// document is the on-disk shape of the whole registry.
type document struct {
	Codes []record `json:"codes"`
}

// GetDataPath returns the path to the data file.
// Uses os.UserConfigDir() for a cross-platform XDG-compliant config
// directory, creating it if needed. An empty filename selects DataFile.
func GetDataPath(filename string) (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)
	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	if filename == "" {
		filename = DataFile
	}
	return filepath.Join(appDir, filename), nil
}

// FileGateway persists registry snapshots to a JSON file. It implements
// registry.Gateway.
type FileGateway struct {
	path string
}

// NewFileGateway returns a gateway writing to path.
func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path}
}

// Path returns the data file location.
func (g *FileGateway) Path() string {
	return g.path
}

// Load reads the persisted registry snapshot. A missing file is an empty
// registry, not an error.
func (g *FileGateway) Load() ([]code.ChargeCode, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("data file %s is not valid JSON: %w", g.path, err)
	}

	codes := make([]code.ChargeCode, 0, len(doc.Codes))
	for _, rec := range doc.Codes {
		codes = append(codes, code.ChargeCode{
			Identifier:  rec.Identifier,
			Description: rec.Description,
			Ledger:      punch.NewLedger(rec.Events),
		})
	}
	return codes, nil
}

// Save writes the snapshot atomically: the current file is rotated into the
// backup set, the new state goes to a temp file, and a rename makes it
// live. A failed save leaves the prior persisted state intact.
func (g *FileGateway) Save(snapshot []code.ChargeCode) error {
	doc := document{Codes: make([]record, 0, len(snapshot))}
	for i := range snapshot {
		c := &snapshot[i]
		doc.Codes = append(doc.Codes, record{
			Identifier:  c.Identifier,
			Description: c.Description,
			Events:      c.Ledger.Events(),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := CreateBackup(g.path); err != nil {
		return err
	}

	tmpFile := g.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, g.path)
}
