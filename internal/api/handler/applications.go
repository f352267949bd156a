package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kiranshivaraju/hirebridge/internal/api/response"
	"github.com/kiranshivaraju/hirebridge/pkg/models"
)

const validApplicationStatuses = "pending, reviewing, approved, rejected"

// NewListApplicationsHandler returns an http.HandlerFunc for GET /api/v1/resumes.
// An optional ?status= filter narrows the list.
func NewListApplicationsHandler(st Applications) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apps, err := st.ListApplications(r.Context())
		if err != nil {
			writeStoreError(w, r, err, "Application")
			return
		}

		if status := r.URL.Query().Get("status"); status != "" {
			filtered := make([]*models.Application, 0, len(apps))
			for _, a := range apps {
				if a.Status == status {
					filtered = append(filtered, a)
				}
			}
			apps = filtered
		}

		writePage(w, r, apps)
	}
}

// NewGetApplicationHandler returns an http.HandlerFunc for GET /api/v1/resumes/{id}.
func NewGetApplicationHandler(st Applications) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app, err := st.GetApplication(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, r, err, "Application")
			return
		}
		response.JSON(w, app)
	}
}

// NewSetApplicationStatusHandler returns an http.HandlerFunc for
// PUT /api/v1/resumes/{id}/status.
func NewSetApplicationStatusHandler(st Applications) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}

		if req.Status == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "status is required", nil)
			return
		}
		if !models.ValidApplicationStatus(req.Status) {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid status",
				map[string]string{"status": "must be one of " + validApplicationStatuses})
			return
		}

		app, err := st.SetApplicationStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
		if err != nil {
			writeStoreError(w, r, err, "Application")
			return
		}
		response.JSON(w, app)
	}
}
