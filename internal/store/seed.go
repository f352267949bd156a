package store

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/kiranshivaraju/hirebridge/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the initial content of a MemoryStore.
type Seed struct {
	Applications []*models.Application      `yaml:"applications"`
	Incentives   []*models.IncentiveProgram `yaml:"incentives"`
	JobPostings  []*models.JobPosting       `yaml:"job_postings"`
}

// LoadSeed reads a seed document from path. An empty path yields the built-in seed.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return ParseSeed(defaultSeed)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML seed document and rejects duplicate identities.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	if err := checkUnique("application", seed.Applications, func(a *models.Application) string { return a.ID }); err != nil {
		return nil, err
	}
	if err := checkUnique("incentive", seed.Incentives, func(p *models.IncentiveProgram) string { return p.ID }); err != nil {
		return nil, err
	}
	if err := checkUnique("job posting", seed.JobPostings, func(p *models.JobPosting) string { return p.ID }); err != nil {
		return nil, err
	}

	for _, p := range seed.JobPostings {
		if p.Analyzed != (p.Before != nil && p.After != nil) {
			return nil, fmt.Errorf("parse seed: job posting %q: analyzed must be set exactly when both snapshots are present", p.ID)
		}
	}

	return &seed, nil
}

func checkUnique[T any](kind string, items []*T, id func(*T) string) error {
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		if item == nil {
			return fmt.Errorf("parse seed: %s at index %d is empty", kind, i)
		}
		v := id(item)
		if v == "" {
			return fmt.Errorf("parse seed: %s at index %d has no id", kind, i)
		}
		if seen[v] {
			return fmt.Errorf("parse seed: duplicate %s id %q", kind, v)
		}
		seen[v] = true
	}
	return nil
}
