package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kiranshivaraju/hirebridge/internal/api/response"
	"github.com/kiranshivaraju/hirebridge/internal/dashboard"
)

// Dashboard builds aggregate views.
type Dashboard interface {
	Summary(ctx context.Context) (*dashboard.Summary, error)
	IncentiveSummary(ctx context.Context) (*dashboard.IncentiveSummary, error)
}

// NewDashboardHandler returns an http.HandlerFunc for GET /api/v1/dashboard.
func NewDashboardHandler(d Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := d.Summary(r.Context())
		if err != nil {
			slog.Error("dashboard summary failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}
		response.JSON(w, sum)
	}
}
