// Package handler holds the HTTP handlers for the admin API. Each
// constructor depends on the narrow interface it needs.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kiranshivaraju/hirebridge/internal/api/response"
	"github.com/kiranshivaraju/hirebridge/internal/enrich"
	"github.com/kiranshivaraju/hirebridge/internal/store"
	"github.com/kiranshivaraju/hirebridge/pkg/models"
)

const maxBodyBytes = 1 << 20

// Applications is the store surface used by the resume handlers.
type Applications interface {
	ListApplications(ctx context.Context) ([]*models.Application, error)
	GetApplication(ctx context.Context, id string) (*models.Application, error)
	SetApplicationStatus(ctx context.Context, id string, status string) (*models.Application, error)
}

// Incentives is the store surface used by the incentive handlers.
type Incentives interface {
	ListIncentivePrograms(ctx context.Context) ([]*models.IncentiveProgram, error)
}

// JobPostings is the store surface used by the job posting handlers.
type JobPostings interface {
	ListJobPostings(ctx context.Context) ([]*models.JobPosting, error)
	GetJobPosting(ctx context.Context, id string) (*models.JobPosting, error)
	UpdateJobPosting(ctx context.Context, id string, patch models.JobPostingPatch) (*models.JobPosting, error)
	DeleteJobPosting(ctx context.Context, id string) error
}

// Enricher creates job postings through the enrichment pipeline.
type Enricher interface {
	Submit(draft models.JobPostingDraft) *enrich.Pending
	Status(ctx context.Context, id string) (*models.EnrichmentStatus, error)
	Forget(ctx context.Context, id string) error
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return false
	}
	return true
}

// writeStoreError maps store sentinels to API errors.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Error(w, http.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
	case errors.Is(err, store.ErrDuplicateKey):
		response.Error(w, http.StatusConflict, "CONFLICT", resource+" already exists", nil)
	default:
		slog.Error("store operation failed", "error", err, "method", r.Method, "path", r.URL.Path)
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}

func writePage[T any](w http.ResponseWriter, r *http.Request, items []T) {
	page, err := response.ParsePage(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	data, meta := response.Paginate(items, page)
	response.Collection(w, data, meta)
}
