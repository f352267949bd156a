// Package dashboard computes aggregate views over the record store.
package dashboard

import (
	"context"
	"fmt"

	"github.com/kiranshivaraju/hirebridge/internal/store"
	"github.com/kiranshivaraju/hirebridge/pkg/models"
	"golang.org/x/sync/errgroup"
)

// Counts is a total plus a breakdown by status.
type Counts struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// PostingCounts adds the number of analyzed postings to Counts.
type PostingCounts struct {
	Counts
	Analyzed int `json:"analyzed"`
}

// Summary is the overview shown on the admin landing page.
type Summary struct {
	Applications Counts        `json:"applications"`
	Incentives   Counts        `json:"incentives"`
	JobPostings  PostingCounts `json:"job_postings"`
}

// IncentiveSummary aggregates funding across incentive programs. Amounts are
// in the smallest currency unit.
type IncentiveSummary struct {
	Total           int            `json:"total"`
	TotalAmount     int64          `json:"total_amount"`
	AvailableAmount int64          `json:"available_amount"`
	ByStatus        map[string]int `json:"by_status"`
	ByCategory      map[string]int `json:"by_category"`
}

// Service reads the store and builds dashboard views.
type Service struct {
	store store.Store
}

// NewService creates a new dashboard Service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Summary loads all three collections concurrently and counts them.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var (
		applications []*models.Application
		incentives   []*models.IncentiveProgram
		postings     []*models.JobPosting
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		applications, err = s.store.ListApplications(gctx)
		if err != nil {
			return fmt.Errorf("listing applications: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		incentives, err = s.store.ListIncentivePrograms(gctx)
		if err != nil {
			return fmt.Errorf("listing incentive programs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		postings, err = s.store.ListJobPostings(gctx)
		if err != nil {
			return fmt.Errorf("listing job postings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := &Summary{
		Applications: newCounts(models.ApplicationStatusPending, models.ApplicationStatusReviewing,
			models.ApplicationStatusApproved, models.ApplicationStatusRejected),
		Incentives: newCounts(models.IncentiveStatusAvailable, models.IncentiveStatusApplied,
			models.IncentiveStatusApproved, models.IncentiveStatusExpired),
		JobPostings: PostingCounts{
			Counts: newCounts(models.PostingStatusDraft, models.PostingStatusPublished, models.PostingStatusClosed),
		},
	}
	for _, a := range applications {
		sum.Applications.add(a.Status)
	}
	for _, p := range incentives {
		sum.Incentives.add(p.Status)
	}
	for _, p := range postings {
		sum.JobPostings.add(p.Status)
		if p.Analyzed {
			sum.JobPostings.Analyzed++
		}
	}
	return sum, nil
}

// IncentiveSummary aggregates funding over every incentive program.
func (s *Service) IncentiveSummary(ctx context.Context) (*IncentiveSummary, error) {
	programs, err := s.store.ListIncentivePrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing incentive programs: %w", err)
	}
	sum := SummarizeIncentives(programs)
	return &sum, nil
}

// SummarizeIncentives totals amounts and counts programs by status and
// category. Known statuses and categories are always present.
func SummarizeIncentives(programs []*models.IncentiveProgram) IncentiveSummary {
	sum := IncentiveSummary{
		ByStatus: zeroed(models.IncentiveStatusAvailable, models.IncentiveStatusApplied,
			models.IncentiveStatusApproved, models.IncentiveStatusExpired),
		ByCategory: zeroed(models.IncentiveCategoryHiring, models.IncentiveCategoryTraining,
			models.IncentiveCategoryFacility, models.IncentiveCategoryOther),
	}
	for _, p := range programs {
		sum.Total++
		sum.TotalAmount += p.Amount
		if p.Status == models.IncentiveStatusAvailable {
			sum.AvailableAmount += p.Amount
		}
		sum.ByStatus[p.Status]++
		sum.ByCategory[p.Category]++
	}
	return sum
}

func newCounts(statuses ...string) Counts {
	return Counts{ByStatus: zeroed(statuses...)}
}

func (c *Counts) add(status string) {
	c.Total++
	c.ByStatus[status]++
}

func zeroed(keys ...string) map[string]int {
	m := make(map[string]int, len(keys))
	for _, k := range keys {
		m[k] = 0
	}
	return m
}
