package store

import (
	"context"
	"errors"

	"github.com/kiranshivaraju/hirebridge/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All record reads and writes go through here.
// Reads return copies; callers may mutate them freely.
type Store interface {
	Ping(ctx context.Context) error

	ListApplications(ctx context.Context) ([]*models.Application, error)
	GetApplication(ctx context.Context, id string) (*models.Application, error)
	SetApplicationStatus(ctx context.Context, id string, status string) (*models.Application, error)

	ListIncentivePrograms(ctx context.Context) ([]*models.IncentiveProgram, error)

	ListJobPostings(ctx context.Context) ([]*models.JobPosting, error)
	GetJobPosting(ctx context.Context, id string) (*models.JobPosting, error)
	InsertJobPosting(ctx context.Context, posting *models.JobPosting) (*models.JobPosting, error)
	UpdateJobPosting(ctx context.Context, id string, patch models.JobPostingPatch) (*models.JobPosting, error)
	DeleteJobPosting(ctx context.Context, id string) error
}
