package models

import (
	"context"
	"time"
)

// EnrichmentStrategy is the analysis capability applied to new job postings.
// Implementations may be slow and may rewrite classification fields.
// Never call a concrete strategy directly; inject this interface.
type EnrichmentStrategy interface {
	// Enrich derives the post-analysis view of a stamped posting.
	Enrich(ctx context.Context, posting JobPosting) (AfterSnapshot, error)
	// Name returns the strategy identifier (e.g., "canned", "rules").
	Name() string
}

// BeforeSnapshot captures the analyzed fields of a posting as submitted.
type BeforeSnapshot struct {
	JobPosition      string `yaml:"job_position"      json:"job_position"`
	JobDescription   string `yaml:"job_description"   json:"job_description"`
	RecruitmentCount int    `yaml:"recruitment_count" json:"recruitment_count"`
	Location         string `yaml:"location"          json:"location"`
	DisabilityType   string `yaml:"disability_type"   json:"disability_type"`
}

// AfterSnapshot is the output of an enrichment strategy. DisabilityType may
// hold a category outside the submitted enum.
type AfterSnapshot struct {
	JobPosition         string `yaml:"job_position"         json:"job_position"`
	JobDescription      string `yaml:"job_description"      json:"job_description"`
	RecruitmentCount    int    `yaml:"recruitment_count"    json:"recruitment_count"`
	Location            string `yaml:"location"             json:"location"`
	DisabilityType      string `yaml:"disability_type"      json:"disability_type"`
	Category            string `yaml:"category"             json:"category"`
	DetailedDescription string `yaml:"detailed_description" json:"detailed_description"`
}

// Enrichment is the before/after delta produced for one posting.
type Enrichment struct {
	Before BeforeSnapshot
	After  AfterSnapshot
}

const (
	EnrichmentPending   = "pending"
	EnrichmentRunning   = "running"
	EnrichmentCompleted = "completed"
	EnrichmentFailed    = "failed"
)

// EnrichmentStatus tracks one create-and-analyze run. The posting only exists
// in the store once State is completed.
type EnrichmentStatus struct {
	PostingID    string     `json:"posting_id"`
	State        string     `json:"state"`
	Strategy     string     `json:"strategy,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Analyzing    bool       `json:"analyzing"`
	Progress     int        `json:"progress"`
}

// Terminal reports whether the run has finished, successfully or not.
func (s EnrichmentStatus) Terminal() bool {
	return s.State == EnrichmentCompleted || s.State == EnrichmentFailed
}
