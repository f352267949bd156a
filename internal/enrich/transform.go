package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/kiranshivaraju/hirebridge/pkg/models"
)

// NoRestriction replaces the "all" disability type in before snapshots.
const NoRestriction = "no restriction"

// BuildBefore echoes the analyzed fields of a posting as submitted.
func BuildBefore(p models.JobPosting) models.BeforeSnapshot {
	disability := p.DisabilityType
	if disability == models.DisabilityTypeAll {
		disability = NoRestriction
	}
	return models.BeforeSnapshot{
		JobPosition:      p.JobPosition,
		JobDescription:   p.JobDescription,
		RecruitmentCount: p.RecruitmentCount,
		Location:         p.Location,
		DisabilityType:   disability,
	}
}

type strategyResult struct {
	after models.AfterSnapshot
	err   error
}

// Transform runs strategy against posting and pairs its output with the
// before snapshot. The call is bounded by ctx even when the strategy ignores
// cancellation. Every error, panic or deadline is reported as
// ErrTransformFailure.
func Transform(ctx context.Context, strategy models.EnrichmentStrategy, posting models.JobPosting) (models.Enrichment, error) {
	before := BuildBefore(posting)

	done := make(chan strategyResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic in enrichment strategy",
					"error", r,
					"strategy", strategy.Name(),
					"stack", string(debug.Stack()),
				)
				done <- strategyResult{err: fmt.Errorf("strategy %s panicked: %v", strategy.Name(), r)}
			}
		}()
		after, err := strategy.Enrich(ctx, *posting.Clone())
		done <- strategyResult{after: after, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return models.Enrichment{}, fmt.Errorf("%w: %w", ErrTransformFailure, res.err)
		}
		return models.Enrichment{Before: before, After: res.after}, nil
	case <-ctx.Done():
		return models.Enrichment{}, fmt.Errorf("%w: %w", ErrTransformFailure, ctx.Err())
	}
}

// Merge copies the after values into the primary fields of p, marks it
// analyzed and attaches both snapshots.
func Merge(p *models.JobPosting, e models.Enrichment) {
	p.JobPosition = e.After.JobPosition
	p.JobDescription = e.After.JobDescription
	p.RecruitmentCount = e.After.RecruitmentCount
	p.Location = e.After.Location
	p.DisabilityType = e.After.DisabilityType

	before, after := e.Before, e.After
	p.Before = &before
	p.After = &after
	p.Analyzed = true
}
