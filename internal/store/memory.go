package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/kiranshivaraju/hirebridge/pkg/models"
)

// MemoryStore implements Store over process-local slices kept in insertion order.
type MemoryStore struct {
	mu           sync.RWMutex
	applications []*models.Application
	incentives   []*models.IncentiveProgram
	postings     []*models.JobPosting
	now          func() time.Time
}

// NewMemoryStore creates a MemoryStore holding a copy of the seed records.
func NewMemoryStore(seed *Seed) *MemoryStore {
	s := &MemoryStore{now: func() time.Time { return time.Now().UTC() }}
	if seed == nil {
		return s
	}
	for _, a := range seed.Applications {
		s.applications = append(s.applications, a.Clone())
	}
	for _, p := range seed.Incentives {
		s.incentives = append(s.incentives, p.Clone())
	}
	for _, p := range seed.JobPostings {
		s.postings = append(s.postings, p.Clone())
	}
	return s
}

// WithClock overrides the time source used for UpdatedAt. Intended for tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// Ping always succeeds; the store lives in process memory.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// --- Applications ---

func (s *MemoryStore) ListApplications(_ context.Context) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Application, 0, len(s.applications))
	for _, a := range s.applications {
		out = append(out, a.Clone())
	}
	return out, nil
}

func (s *MemoryStore) GetApplication(_ context.Context, id string) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.applicationIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return s.applications[i].Clone(), nil
}

func (s *MemoryStore) SetApplicationStatus(_ context.Context, id string, status string) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.applicationIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	s.applications[i].Status = status
	return s.applications[i].Clone(), nil
}

func (s *MemoryStore) applicationIndex(id string) int {
	return slices.IndexFunc(s.applications, func(a *models.Application) bool { return a.ID == id })
}

// --- Incentive Programs ---

func (s *MemoryStore) ListIncentivePrograms(_ context.Context) ([]*models.IncentiveProgram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.IncentiveProgram, 0, len(s.incentives))
	for _, p := range s.incentives {
		out = append(out, p.Clone())
	}
	return out, nil
}

// --- Job Postings ---

func (s *MemoryStore) ListJobPostings(_ context.Context) ([]*models.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.JobPosting, 0, len(s.postings))
	for _, p := range s.postings {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (s *MemoryStore) GetJobPosting(_ context.Context, id string) (*models.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.postingIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return s.postings[i].Clone(), nil
}

// InsertJobPosting appends a fully formed posting. Identity is assigned by the caller.
func (s *MemoryStore) InsertJobPosting(_ context.Context, posting *models.JobPosting) (*models.JobPosting, error) {
	if posting == nil || posting.ID == "" {
		return nil, fmt.Errorf("insert job posting: id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.postingIndex(posting.ID) >= 0 {
		return nil, ErrDuplicateKey
	}
	stored := posting.Clone()
	s.postings = append(s.postings, stored)
	return stored.Clone(), nil
}

// UpdateJobPosting merges patch over the stored posting and refreshes UpdatedAt.
// The merge is built on a copy and swapped in, so readers never see a half-applied patch.
func (s *MemoryStore) UpdateJobPosting(_ context.Context, id string, patch models.JobPostingPatch) (*models.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.postingIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	merged := s.postings[i].Clone()
	patch.Apply(merged)
	merged.UpdatedAt = s.now()
	s.postings[i] = merged
	return merged.Clone(), nil
}

func (s *MemoryStore) DeleteJobPosting(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.postingIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.postings = slices.Delete(s.postings, i, i+1)
	return nil
}

func (s *MemoryStore) postingIndex(id string) int {
	return slices.IndexFunc(s.postings, func(p *models.JobPosting) bool { return p.ID == id })
}

// Compile-time check that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
