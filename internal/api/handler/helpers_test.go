package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kiranshivaraju/hirebridge/internal/cache"
	"github.com/kiranshivaraju/hirebridge/internal/enrich"
	"github.com/kiranshivaraju/hirebridge/internal/store"
	"github.com/kiranshivaraju/hirebridge/pkg/models"
)

var errBackend = errors.New("backend unavailable")

// --- fixtures ---

func seededStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	seed, err := store.LoadSeed("")
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	return store.NewMemoryStore(seed)
}

func newPipeline(t *testing.T, st store.Store, strategy models.EnrichmentStrategy) *enrich.Pipeline {
	t.Helper()
	p := enrich.NewPipeline(strategy, st, cache.NewMemoryCache(), enrich.Options{})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = p.Drain(ctx)
	})
	return p
}

// brokenStore fails every call.
type brokenStore struct {
	store.Store
}

func (brokenStore) ListApplications(context.Context) ([]*models.Application, error) {
	return nil, errBackend
}

func (brokenStore) ListIncentivePrograms(context.Context) ([]*models.IncentiveProgram, error) {
	return nil, errBackend
}

func (brokenStore) ListJobPostings(context.Context) ([]*models.JobPosting, error) {
	return nil, errBackend
}

// --- helpers ---

// serve mounts h on pattern and sends one request through it.
func serve(t *testing.T, method, pattern, path string, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	r := chi.NewRouter()
	r.Method(method, pattern, h)

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v (body %q)", err, rec.Body.String())
	}
	return env.Data
}

func decodeInto(rec *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(rec.Body).Decode(v)
}

func parseErr(t *testing.T, rec *httptest.ResponseRecorder) (int, string) {
	t.Helper()
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec.Code, env.Error.Code
}
