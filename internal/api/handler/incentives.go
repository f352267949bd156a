package handler

import (
	"log/slog"
	"net/http"

	"github.com/kiranshivaraju/hirebridge/internal/api/response"
)

// NewListIncentivesHandler returns an http.HandlerFunc for GET /api/v1/incentives.
func NewListIncentivesHandler(st Incentives) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		programs, err := st.ListIncentivePrograms(r.Context())
		if err != nil {
			writeStoreError(w, r, err, "Incentive program")
			return
		}
		writePage(w, r, programs)
	}
}

// NewIncentiveSummaryHandler returns an http.HandlerFunc for
// GET /api/v1/incentives/summary.
func NewIncentiveSummaryHandler(d Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := d.IncentiveSummary(r.Context())
		if err != nil {
			slog.Error("incentive summary failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}
		response.JSON(w, sum)
	}
}
