// Package remote provides an enrichment strategy backed by an external
// analysis service reached over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/kiranshivaraju/hirebridge/internal/config"
	"github.com/kiranshivaraju/hirebridge/pkg/models"
	"golang.org/x/time/rate"
)

// Sentinel errors for analysis service failures.
var (
	ErrServiceUnreachable = errors.New("analysis service unreachable")
	ErrServiceTimeout     = errors.New("analysis service timeout")
	ErrInvalidResponse    = errors.New("analysis service returned invalid response")
)

const maxErrorBody = 512

// TransportError is returned when the service answers with a non-2xx status.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("analysis service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("analysis service returned status %d: %s", e.StatusCode, e.Body)
}

// Strategy implements models.EnrichmentStrategy against the analysis
// service's HTTP API.
type Strategy struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewStrategy creates a remote Strategy. timeout bounds each HTTP round trip.
func NewStrategy(cfg config.RemoteConfig, timeout time.Duration) *Strategy {
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 1
	}
	burst := int(math.Max(1, math.Floor(rps)))
	return &Strategy{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (s *Strategy) Name() string { return "remote" }

type enrichRequest struct {
	Posting models.JobPosting `json:"posting"`
}

type enrichResponse struct {
	AfterSnapshot *models.AfterSnapshot `json:"after_snapshot"`
}

// Enrich posts the posting to /v1/enrich and decodes the after snapshot.
func (s *Strategy) Enrich(ctx context.Context, posting models.JobPosting) (models.AfterSnapshot, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return models.AfterSnapshot{}, fmt.Errorf("%w: waiting for rate limiter: %v", ErrServiceTimeout, err)
	}

	body, err := json.Marshal(enrichRequest{Posting: posting})
	if err != nil {
		return models.AfterSnapshot{}, fmt.Errorf("encoding request: %w", err)
	}

	u := fmt.Sprintf("%s/v1/enrich", s.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return models.AfterSnapshot{}, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	s.setHeaders(httpReq)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return models.AfterSnapshot{}, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return models.AfterSnapshot{}, &TransportError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	var out enrichResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.AfterSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if out.AfterSnapshot == nil || out.AfterSnapshot.JobPosition == "" {
		return models.AfterSnapshot{}, fmt.Errorf("%w: missing after_snapshot", ErrInvalidResponse)
	}

	return *out.AfterSnapshot, nil
}

// Ready checks the service's /ready endpoint.
func (s *Strategy) Ready(ctx context.Context) error {
	u := fmt.Sprintf("%s/ready", s.baseURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	s.setHeaders(httpReq)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: service not ready (status %d)", ErrServiceUnreachable, resp.StatusCode)
	}

	return nil
}

func (s *Strategy) setHeaders(req *http.Request) {
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	req.Header.Set("Accept", "application/json")
}

// classifyError maps transport-level errors to sentinel errors.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrServiceTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrServiceTimeout, err)
	}

	return fmt.Errorf("%w: %v", ErrServiceUnreachable, err)
}

// Compile-time check that Strategy implements EnrichmentStrategy.
var _ models.EnrichmentStrategy = (*Strategy)(nil)
