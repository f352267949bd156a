package mock

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/kiranshivaraju/hirebridge/pkg/models"
)

// ErrBlocked is returned by a blocking strategy once its context ends.
var ErrBlocked = errors.New("mock strategy cancelled while blocked")

// MockStrategy satisfies models.EnrichmentStrategy for testing.
type MockStrategy struct {
	Name_      string
	EnrichFunc func(ctx context.Context, posting models.JobPosting) (models.AfterSnapshot, error)

	calls atomic.Int64
}

func (m *MockStrategy) Name() string { return m.Name_ }

func (m *MockStrategy) Enrich(ctx context.Context, posting models.JobPosting) (models.AfterSnapshot, error) {
	m.calls.Add(1)
	if m.EnrichFunc != nil {
		return m.EnrichFunc(ctx, posting)
	}
	return Echo(posting), nil
}

// Calls returns how many times Enrich has been invoked.
func (m *MockStrategy) Calls() int64 {
	return m.calls.Load()
}

// Echo builds an after snapshot that keeps the posting's values.
func Echo(posting models.JobPosting) models.AfterSnapshot {
	return models.AfterSnapshot{
		JobPosition:         posting.JobPosition,
		JobDescription:      posting.JobDescription,
		RecruitmentCount:    posting.RecruitmentCount,
		Location:            posting.Location,
		DisabilityType:      posting.DisabilityType,
		Category:            "mock",
		DetailedDescription: "Mock enrichment of " + posting.Title,
	}
}

// NewMockStrategy returns a MockStrategy that answers with a fixed,
// reclassified snapshot.
func NewMockStrategy() *MockStrategy {
	return &MockStrategy{
		Name_: "mock",
		EnrichFunc: func(_ context.Context, posting models.JobPosting) (models.AfterSnapshot, error) {
			return models.AfterSnapshot{
				JobPosition:         "Customer support associate",
				JobDescription:      "Phone and chat support, ticket triage",
				RecruitmentCount:    4,
				Location:            "Seoul Gangnam-gu",
				DisabilityType:      "color vision deficiency not eligible",
				Category:            "Service > Customer support",
				DetailedDescription: "Mock enrichment of " + posting.Title,
			}, nil
		},
	}
}

// NewFailingStrategy returns a MockStrategy that always returns err.
func NewFailingStrategy(err error) *MockStrategy {
	return &MockStrategy{
		Name_: "mock-failing",
		EnrichFunc: func(_ context.Context, _ models.JobPosting) (models.AfterSnapshot, error) {
			return models.AfterSnapshot{}, err
		},
	}
}

// NewBlockingStrategy returns a MockStrategy that blocks until release is
// closed or the context is cancelled.
func NewBlockingStrategy(release <-chan struct{}) *MockStrategy {
	return &MockStrategy{
		Name_: "mock-blocking",
		EnrichFunc: func(ctx context.Context, posting models.JobPosting) (models.AfterSnapshot, error) {
			select {
			case <-release:
				return Echo(posting), nil
			case <-ctx.Done():
				return models.AfterSnapshot{}, ErrBlocked
			}
		},
	}
}

// NewPanickingStrategy returns a MockStrategy that panics on every call.
func NewPanickingStrategy() *MockStrategy {
	return &MockStrategy{
		Name_: "mock-panicking",
		EnrichFunc: func(_ context.Context, _ models.JobPosting) (models.AfterSnapshot, error) {
			panic("mock strategy exploded")
		},
	}
}

// Compile-time check that MockStrategy implements EnrichmentStrategy.
var _ models.EnrichmentStrategy = (*MockStrategy)(nil)
