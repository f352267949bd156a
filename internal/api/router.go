package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/kiranshivaraju/hirebridge/internal/api/middleware"
	"github.com/kiranshivaraju/hirebridge/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	RateLimit *mw.RateLimit

	HealthHandler http.HandlerFunc

	ListApplications     http.HandlerFunc
	GetApplication       http.HandlerFunc
	SetApplicationStatus http.HandlerFunc

	ListIncentives   http.HandlerFunc
	IncentiveSummary http.HandlerFunc

	ListJobPostings  http.HandlerFunc
	CreateJobPosting http.HandlerFunc
	GetJobPosting    http.HandlerFunc
	UpdateJobPosting http.HandlerFunc
	DeleteJobPosting http.HandlerFunc
	EnrichmentStatus http.HandlerFunc

	DashboardHandler http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Identify)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		r.Get("/api/v1/resumes", orNotImplemented(deps.ListApplications))
		r.Get("/api/v1/resumes/{id}", orNotImplemented(deps.GetApplication))
		r.Put("/api/v1/resumes/{id}/status", orNotImplemented(deps.SetApplicationStatus))

		r.Get("/api/v1/incentives", orNotImplemented(deps.ListIncentives))
		r.Get("/api/v1/incentives/summary", orNotImplemented(deps.IncentiveSummary))

		r.Get("/api/v1/job-postings", orNotImplemented(deps.ListJobPostings))
		r.Post("/api/v1/job-postings", orNotImplemented(deps.CreateJobPosting))
		r.Get("/api/v1/job-postings/{id}", orNotImplemented(deps.GetJobPosting))
		r.Put("/api/v1/job-postings/{id}", orNotImplemented(deps.UpdateJobPosting))
		r.Delete("/api/v1/job-postings/{id}", orNotImplemented(deps.DeleteJobPosting))
		r.Get("/api/v1/job-postings/{id}/enrichment", orNotImplemented(deps.EnrichmentStatus))

		r.Get("/api/v1/dashboard", orNotImplemented(deps.DashboardHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
