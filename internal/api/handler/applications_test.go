package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/kiranshivaraju/hirebridge/internal/api/response"
	"github.com/kiranshivaraju/hirebridge/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListApplicationsHandler_Success(t *testing.T) {
	h := NewListApplicationsHandler(seededStore(t))

	rec := serve(t, http.MethodGet, "/api/v1/resumes", "/api/v1/resumes", h, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	apps := parseData[[]models.Application](t, rec)
	require.Len(t, apps, 3)
	assert.Equal(t, "1", apps[0].ID)
	assert.Equal(t, "Minsu Kim", apps[0].Name)
}

func TestListApplicationsHandler_StatusFilter(t *testing.T) {
	h := NewListApplicationsHandler(seededStore(t))

	rec := serve(t, http.MethodGet, "/api/v1/resumes", "/api/v1/resumes?status=reviewing", h, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	apps := parseData[[]models.Application](t, rec)
	require.Len(t, apps, 1)
	assert.Equal(t, "Younghee Lee", apps[0].Name)
}

func TestListApplicationsHandler_Pagination(t *testing.T) {
	h := NewListApplicationsHandler(seededStore(t))

	rec := serve(t, http.MethodGet, "/api/v1/resumes", "/api/v1/resumes?page=2&limit=2", h, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data []models.Application    `json:"data"`
		Meta response.PaginationMeta `json:"meta"`
	}
	require.NoError(t, decodeInto(rec, &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "3", env.Data[0].ID)
	assert.Equal(t, response.PaginationMeta{Page: 2, Limit: 2, Total: 3, HasNext: false}, env.Meta)
}

func TestListApplicationsHandler_BadPage(t *testing.T) {
	h := NewListApplicationsHandler(seededStore(t))

	rec := serve(t, http.MethodGet, "/api/v1/resumes", "/api/v1/resumes?page=0", h, nil)
	status, code := parseErr(t, rec)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_REQUEST", code)
}

func TestListApplicationsHandler_PageOutOfRange(t *testing.T) {
	h := NewListApplicationsHandler(seededStore(t))

	rec := serve(t, http.MethodGet, "/api/v1/resumes", "/api/v1/resumes?page=4611686018427387906&limit=2", h, nil)
	status, code := parseErr(t, rec)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_REQUEST", code)
}

func TestListApplicationsHandler_StoreError(t *testing.T) {
	h := NewListApplicationsHandler(brokenStore{})

	rec := serve(t, http.MethodGet, "/api/v1/resumes", "/api/v1/resumes", h, nil)
	status, code := parseErr(t, rec)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", code)
}

func TestGetApplicationHandler_Success(t *testing.T) {
	h := NewGetApplicationHandler(seededStore(t))

	rec := serve(t, http.MethodGet, "/api/v1/resumes/{id}", "/api/v1/resumes/2", h, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	app := parseData[models.Application](t, rec)
	assert.Equal(t, "2", app.ID)
	assert.Equal(t, models.ApplicationStatusReviewing, app.Status)
}

func TestGetApplicationHandler_NotFound(t *testing.T) {
	h := NewGetApplicationHandler(seededStore(t))

	rec := serve(t, http.MethodGet, "/api/v1/resumes/{id}", "/api/v1/resumes/999", h, nil)
	status, code := parseErr(t, rec)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", code)
}

func TestSetApplicationStatusHandler_Success(t *testing.T) {
	st := seededStore(t)
	h := NewSetApplicationStatusHandler(st)

	rec := serve(t, http.MethodPut, "/api/v1/resumes/{id}/status", "/api/v1/resumes/1/status",
		h, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code)

	app := parseData[models.Application](t, rec)
	assert.Equal(t, models.ApplicationStatusApproved, app.Status)

	stored, err := st.GetApplication(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, stored.Status)
}

func TestSetApplicationStatusHandler_InvalidStatus(t *testing.T) {
	h := NewSetApplicationStatusHandler(seededStore(t))

	rec := serve(t, http.MethodPut, "/api/v1/resumes/{id}/status", "/api/v1/resumes/1/status",
		h, map[string]string{"status": "hired"})
	status, code := parseErr(t, rec)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_REQUEST", code)
}

func TestSetApplicationStatusHandler_MissingStatus(t *testing.T) {
	h := NewSetApplicationStatusHandler(seededStore(t))

	rec := serve(t, http.MethodPut, "/api/v1/resumes/{id}/status", "/api/v1/resumes/1/status",
		h, map[string]string{})
	status, _ := parseErr(t, rec)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSetApplicationStatusHandler_InvalidJSON(t *testing.T) {
	h := NewSetApplicationStatusHandler(seededStore(t))

	rec := serve(t, http.MethodPut, "/api/v1/resumes/{id}/status", "/api/v1/resumes/1/status",
		h, "{not json")
	status, code := parseErr(t, rec)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_REQUEST", code)
}

func TestSetApplicationStatusHandler_NotFound(t *testing.T) {
	h := NewSetApplicationStatusHandler(seededStore(t))

	rec := serve(t, http.MethodPut, "/api/v1/resumes/{id}/status", "/api/v1/resumes/404/status",
		h, map[string]string{"status": "rejected"})
	status, code := parseErr(t, rec)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", code)
}
