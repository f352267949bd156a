// Package canned provides an enrichment strategy that waits a fixed delay and
// answers with a fixed payload. It stands in for a real analysis service.
package canned

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/kiranshivaraju/hirebridge/internal/config"
	"github.com/kiranshivaraju/hirebridge/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed payload.yaml
var defaultPayload []byte

// Strategy implements models.EnrichmentStrategy with a canned answer.
type Strategy struct {
	cfg     config.CannedConfig
	payload models.AfterSnapshot
}

// NewStrategy loads the payload from cfg.PayloadFile, or the built-in payload
// when no file is configured.
func NewStrategy(cfg config.CannedConfig) (*Strategy, error) {
	data := defaultPayload
	if cfg.PayloadFile != "" {
		b, err := os.ReadFile(cfg.PayloadFile)
		if err != nil {
			return nil, fmt.Errorf("read canned payload: %w", err)
		}
		data = b
	}

	payload, err := ParsePayload(data)
	if err != nil {
		return nil, err
	}
	return &Strategy{cfg: cfg, payload: payload}, nil
}

// ParsePayload decodes a YAML after snapshot.
func ParsePayload(data []byte) (models.AfterSnapshot, error) {
	var payload models.AfterSnapshot
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return models.AfterSnapshot{}, fmt.Errorf("parse canned payload: %w", err)
	}
	if payload.JobPosition == "" {
		return models.AfterSnapshot{}, fmt.Errorf("parse canned payload: job_position is required")
	}
	return payload, nil
}

func (s *Strategy) Name() string { return "canned" }

// Enrich waits for the configured delay, then returns the payload regardless
// of the posting.
func (s *Strategy) Enrich(ctx context.Context, _ models.JobPosting) (models.AfterSnapshot, error) {
	if s.cfg.Delay > 0 {
		timer := time.NewTimer(s.cfg.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return models.AfterSnapshot{}, ctx.Err()
		}
	}
	return s.payload, nil
}

var _ models.EnrichmentStrategy = (*Strategy)(nil)
