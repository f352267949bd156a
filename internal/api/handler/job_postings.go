package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kiranshivaraju/hirebridge/internal/api/response"
	"github.com/kiranshivaraju/hirebridge/internal/enrich"
	"github.com/kiranshivaraju/hirebridge/internal/store"
	"github.com/kiranshivaraju/hirebridge/pkg/models"
)

// NewListJobPostingsHandler returns an http.HandlerFunc for GET /api/v1/job-postings.
// An optional ?status= filter narrows the list.
func NewListJobPostingsHandler(st JobPostings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postings, err := st.ListJobPostings(r.Context())
		if err != nil {
			writeStoreError(w, r, err, "Job posting")
			return
		}

		if status := r.URL.Query().Get("status"); status != "" {
			filtered := make([]*models.JobPosting, 0, len(postings))
			for _, p := range postings {
				if p.Status == status {
					filtered = append(filtered, p)
				}
			}
			postings = filtered
		}

		writePage(w, r, postings)
	}
}

// NewGetJobPostingHandler returns an http.HandlerFunc for GET /api/v1/job-postings/{id}.
func NewGetJobPostingHandler(st JobPostings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posting, err := st.GetJobPosting(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, r, err, "Job posting")
			return
		}
		response.JSON(w, posting)
	}
}

// NewCreateJobPostingHandler returns an http.HandlerFunc for POST /api/v1/job-postings.
//
// The handler waits up to waitTimeout for enrichment and answers 201 with the
// committed posting. With ?async=true, or once the wait runs out, it answers
// 202 with the enrichment status; the posting is committed in the background
// either way.
func NewCreateJobPostingHandler(enr Enricher, waitTimeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft models.JobPostingDraft
		if !decodeJSON(w, r, &draft) {
			return
		}
		pending := enr.Submit(draft)

		if r.URL.Query().Get("async") == "true" {
			writeAccepted(w, r, enr, pending)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), waitTimeout)
		defer cancel()

		posting, err := pending.Wait(ctx)
		switch {
		case err == nil:
			w.Header().Set("Location", "/api/v1/job-postings/"+posting.ID)
			response.Created(w, posting)
		case errors.Is(err, enrich.ErrTransformFailure):
			response.Error(w, http.StatusBadGateway, "ENRICHMENT_FAILED",
				"Job posting enrichment failed; nothing was saved", map[string]string{"reason": err.Error()})
		case errors.Is(err, store.ErrDuplicateKey):
			response.Error(w, http.StatusConflict, "CONFLICT", "Job posting already exists", nil)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			if r.Context().Err() != nil {
				// client went away; enrichment keeps running
				return
			}
			writeAccepted(w, r, enr, pending)
		default:
			slog.Error("job posting creation failed", "error", err, "posting_id", pending.ID)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
		}
	}
}

func writeAccepted(w http.ResponseWriter, r *http.Request, enr Enricher, pending *enrich.Pending) {
	status, err := enr.Status(r.Context(), pending.ID)
	if err != nil {
		status = &models.EnrichmentStatus{
			PostingID:   pending.ID,
			State:       models.EnrichmentPending,
			SubmittedAt: pending.SubmittedAt,
			Analyzing:   true,
		}
	}
	w.Header().Set("Location", fmt.Sprintf("/api/v1/job-postings/%s/enrichment", pending.ID))
	response.Accepted(w, status)
}

// NewUpdateJobPostingHandler returns an http.HandlerFunc for PUT /api/v1/job-postings/{id}.
// Only the fields present in the body change. Enrichment snapshots change
// only when an explicit "snapshots" pair is supplied.
func NewUpdateJobPostingHandler(st JobPostings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.JobPostingPatch
		if !decodeJSON(w, r, &patch) {
			return
		}
		if patch.IsEmpty() {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "No fields to update", nil)
			return
		}

		posting, err := st.UpdateJobPosting(r.Context(), chi.URLParam(r, "id"), patch)
		if err != nil {
			writeStoreError(w, r, err, "Job posting")
			return
		}
		response.JSON(w, posting)
	}
}

// NewDeleteJobPostingHandler returns an http.HandlerFunc for DELETE /api/v1/job-postings/{id}.
// The enrichment status entry goes with it.
func NewDeleteJobPostingHandler(st JobPostings, enr Enricher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := st.DeleteJobPosting(r.Context(), id); err != nil {
			writeStoreError(w, r, err, "Job posting")
			return
		}
		if err := enr.Forget(r.Context(), id); err != nil {
			slog.Warn("dropping enrichment status", "error", err, "posting_id", id)
		}
		response.NoContent(w)
	}
}

// NewEnrichmentStatusHandler returns an http.HandlerFunc for
// GET /api/v1/job-postings/{id}/enrichment.
func NewEnrichmentStatusHandler(enr Enricher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := enr.Status(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, r, err, "Job posting")
			return
		}
		response.JSON(w, status)
	}
}
