package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirebridge/internal/cache"
	"github.com/kiranshivaraju/hirebridge/internal/store"
	"github.com/kiranshivaraju/hirebridge/pkg/models"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultStatusTTL = 30 * time.Minute
)

// Options tunes a Pipeline. Zero values fall back to defaults.
type Options struct {
	// Timeout bounds a single strategy call.
	Timeout time.Duration
	// StatusTTL is how long lifecycle records stay in the tracker.
	StatusTTL time.Duration
	Now       func() time.Time
	NewID     func() string
}

// Pipeline creates job postings by enriching drafts in the background and
// committing the result to the store.
type Pipeline struct {
	strategy models.EnrichmentStrategy
	store    store.Store
	cache    cache.Cache
	opts     Options
	wg       sync.WaitGroup
}

// NewPipeline creates a new Pipeline.
func NewPipeline(strategy models.EnrichmentStrategy, st store.Store, ca cache.Cache, opts Options) *Pipeline {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.StatusTTL <= 0 {
		opts.StatusTTL = defaultStatusTTL
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Pipeline{strategy: strategy, store: st, cache: ca, opts: opts}
}

// StrategyName returns the name of the configured strategy.
func (p *Pipeline) StrategyName() string {
	return p.strategy.Name()
}

// Pending is a handle on one in-flight creation.
type Pending struct {
	ID          string
	SubmittedAt time.Time

	done    chan struct{}
	posting *models.JobPosting
	err     error
}

// Done is closed once the creation has committed or failed.
func (h *Pending) Done() <-chan struct{} {
	return h.done
}

// Result returns the committed posting, or ErrInFlight if the enrichment
// has not finished yet.
func (h *Pending) Result() (*models.JobPosting, error) {
	select {
	case <-h.done:
		if h.err != nil {
			return nil, h.err
		}
		return h.posting.Clone(), nil
	default:
		return nil, ErrInFlight
	}
}

// Wait blocks until the creation finishes or ctx is done. Giving up on ctx
// abandons the result only; the enrichment still runs and commits.
func (h *Pending) Wait(ctx context.Context) (*models.JobPosting, error) {
	select {
	case <-h.done:
		return h.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Submit stamps the draft with an id and timestamps, records it as pending
// and starts enrichment in the background. It returns immediately.
func (p *Pipeline) Submit(draft models.JobPostingDraft) *Pending {
	now := p.opts.Now()
	posting := draft.Stamp(p.opts.NewID(), now)

	h := &Pending{
		ID:          posting.ID,
		SubmittedAt: now,
		done:        make(chan struct{}),
	}

	ctx := context.Background()
	p.record(ctx, models.EnrichmentStatus{
		PostingID:   h.ID,
		State:       models.EnrichmentPending,
		SubmittedAt: now,
	})

	p.wg.Add(1)
	go p.run(h, posting)

	return h
}

// Create submits the draft and waits for the committed posting.
func (p *Pipeline) Create(ctx context.Context, draft models.JobPostingDraft) (*models.JobPosting, error) {
	return p.Submit(draft).Wait(ctx)
}

// run enriches and commits one posting. It always leaves the tracker in a
// terminal state.
func (p *Pipeline) run(h *Pending, posting *models.JobPosting) {
	defer p.wg.Done()
	defer close(h.done)

	ctx := context.Background()
	log := slog.With("posting_id", h.ID, "strategy", p.strategy.Name())

	p.record(ctx, models.EnrichmentStatus{
		PostingID:   h.ID,
		State:       models.EnrichmentRunning,
		SubmittedAt: h.SubmittedAt,
	})
	log.Info("enrichment started")

	start := time.Now()
	transformCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	enrichment, err := Transform(transformCtx, p.strategy, *posting)
	cancel()
	if err != nil {
		h.err = err
		p.fail(ctx, h, err)
		log.Warn("enrichment failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}

	Merge(posting, enrichment)

	committed, err := p.store.InsertJobPosting(ctx, posting)
	if err != nil {
		h.err = fmt.Errorf("commit job posting: %w", err)
		p.fail(ctx, h, h.err)
		log.Error("enrichment commit failed", "error", err)
		return
	}
	h.posting = committed

	completed := p.opts.Now()
	p.record(ctx, models.EnrichmentStatus{
		PostingID:   h.ID,
		State:       models.EnrichmentCompleted,
		SubmittedAt: h.SubmittedAt,
		CompletedAt: &completed,
	})
	log.Info("enrichment completed", "duration_ms", time.Since(start).Milliseconds())
}

func (p *Pipeline) fail(ctx context.Context, h *Pending, err error) {
	completed := p.opts.Now()
	p.record(ctx, models.EnrichmentStatus{
		PostingID:    h.ID,
		State:        models.EnrichmentFailed,
		ErrorMessage: err.Error(),
		SubmittedAt:  h.SubmittedAt,
		CompletedAt:  &completed,
	})
}

// record writes a lifecycle entry to the tracker. Tracker failures are
// logged and otherwise ignored.
func (p *Pipeline) record(ctx context.Context, st models.EnrichmentStatus) {
	st.Strategy = p.strategy.Name()
	data, err := json.Marshal(st)
	if err != nil {
		slog.Error("encoding enrichment status", "error", err, "posting_id", st.PostingID)
		return
	}
	if err := p.cache.Set(ctx, cache.EnrichmentStatusKey(st.PostingID), data, p.opts.StatusTTL); err != nil {
		slog.Warn("recording enrichment status", "error", err, "posting_id", st.PostingID, "state", st.State)
	}
}

// Status reports the lifecycle of the enrichment for id. Postings that exist
// in the store without a tracker entry are reported as completed.
func (p *Pipeline) Status(ctx context.Context, id string) (*models.EnrichmentStatus, error) {
	data, found, err := p.cache.Get(ctx, cache.EnrichmentStatusKey(id))
	if err != nil {
		slog.Warn("reading enrichment status", "error", err, "posting_id", id)
	}
	if found {
		var st models.EnrichmentStatus
		if err := json.Unmarshal(data, &st); err != nil {
			return nil, fmt.Errorf("decode enrichment status: %w", err)
		}
		if st.State == models.EnrichmentCompleted {
			// the posting may have been deleted since it was committed
			if _, err := p.store.GetJobPosting(ctx, id); err != nil {
				return nil, err
			}
		}
		return withProgress(st), nil
	}

	posting, err := p.store.GetJobPosting(ctx, id)
	if err != nil {
		return nil, err
	}
	completed := posting.UpdatedAt
	return withProgress(models.EnrichmentStatus{
		PostingID:   posting.ID,
		State:       models.EnrichmentCompleted,
		SubmittedAt: posting.CreatedAt,
		CompletedAt: &completed,
	}), nil
}

func withProgress(st models.EnrichmentStatus) *models.EnrichmentStatus {
	st.Analyzing = !st.Terminal()
	st.Progress = 0
	if st.Terminal() {
		st.Progress = 100
	}
	return &st
}

// Forget drops the tracker entry for id. Called once the posting is deleted.
func (p *Pipeline) Forget(ctx context.Context, id string) error {
	if err := p.cache.Delete(ctx, cache.EnrichmentStatusKey(id)); err != nil {
		return fmt.Errorf("forget enrichment status: %w", err)
	}
	return nil
}

// Drain waits for every in-flight enrichment to finish, or for ctx.
func (p *Pipeline) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("draining enrichments: %w", ctx.Err())
	}
}

// ReadyChecker is implemented by strategies that depend on an external
// service.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

// Ready reports whether the strategy can currently serve enrichments.
func (p *Pipeline) Ready(ctx context.Context) error {
	if rc, ok := p.strategy.(ReadyChecker); ok {
		return rc.Ready(ctx)
	}
	return nil
}
