package report

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"firespread/internal/batch"
)

// Manifest records what a batch produced so output directories can be
// traced back to the scenario that made them.
type Manifest struct {
	ID       string        `yaml:"id"`
	Created  time.Time     `yaml:"created"`
	Scenario any           `yaml:"scenario"`
	Sets     []ManifestSet `yaml:"sets"`
}

// ManifestSet is one row of results plus the files written for it.
type ManifestSet struct {
	Label          string   `yaml:"label"`
	Variant        string   `yaml:"variant"`
	Trials         int      `yaml:"trials"`
	SpreadRate     float64  `yaml:"spread_rate"`
	ExtinctionTime float64  `yaml:"extinction_time"`
	Files          []string `yaml:"files,omitempty"`
}

// NewManifest starts a manifest with a fresh run ID.
func NewManifest(scenario any, now time.Time) *Manifest {
	return &Manifest{
		ID:       uuid.NewString(),
		Created:  now.UTC(),
		Scenario: scenario,
	}
}

// Add appends a result row and the files written for it.
func (m *Manifest) Add(s batch.Summary, files ...string) {
	m.Sets = append(m.Sets, ManifestSet{
		Label:          s.Label,
		Variant:        s.Params.Variant.String(),
		Trials:         s.Trials,
		SpreadRate:     s.SpreadRate,
		ExtinctionTime: s.ExtinctionTime,
		Files:          files,
	})
}

// Save writes the manifest as YAML.
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
