// Package rules provides a deterministic, keyword-based enrichment strategy.
package rules

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/kiranshivaraju/hirebridge/pkg/models"
)

const (
	maxDescriptionBytes = 2000
	defaultCategory     = "Other"
)

var (
	reWhitespace = regexp.MustCompile(`\s+`)
	reSeparators = regexp.MustCompile(`\s*[,/;]\s*`)
)

type keywordRule struct {
	label    string
	keywords []string
}

// Order matters: the first matching job category wins, and disability
// categories are reported in this order.
var disabilityRules = []keywordRule{
	{"visual", []string{"visual", "blind", "low vision", "screen reader", "braille"}},
	{"hearing", []string{"hearing", "deaf", "sign language", "captioning"}},
	{"physical", []string{"wheelchair", "mobility", "physical", "step-free"}},
	{"intellectual", []string{"intellectual", "developmental", "easy-read"}},
	{"mental", []string{"mental health", "psychiatric", "psychosocial"}},
}

var categoryRules = []keywordRule{
	{"IT > Software development", []string{"developer", "engineer", "software", "programmer", "frontend", "backend"}},
	{"Design > Creative", []string{"designer", "design", "illustrat"}},
	{"Office > Administration", []string{"clerk", "admin", "assistant", "data entry", "accounting", "payroll"}},
	{"Service > Customer support", []string{"customer", "support", "call center", "reception", "sales"}},
	{"Manufacturing > Production", []string{"production", "assembly", "packag", "warehouse", "picker"}},
}

var detailTemplate = template.Must(template.New("detail").Funcs(template.FuncMap{"join": strings.Join}).Parse(`[Position]
- {{.Position}} ({{.Category}})
- Openings: {{.Count}}
{{- if .Location}}
- Location: {{.Location}}{{end}}

[Applicants with disabilities]
{{- if .Disabilities}}
- Accommodations mentioned for: {{join .Disabilities ", "}}
{{- else}}
- No specific accommodation mentioned
{{- end}}
- Disability type: {{.DisabilityType}}
{{- if .Description}}

[Duties]
{{.Description}}{{end}}
`))

type detailData struct {
	Position       string
	Category       string
	Count          int
	Location       string
	DisabilityType string
	Disabilities   []string
	Description    string
}

// Strategy implements models.EnrichmentStrategy with keyword rules.
type Strategy struct{}

// NewStrategy creates a new rules Strategy.
func NewStrategy() *Strategy {
	return &Strategy{}
}

func (s *Strategy) Name() string { return "rules" }

// Enrich normalises the posting's analyzed fields and classifies it.
func (s *Strategy) Enrich(ctx context.Context, posting models.JobPosting) (models.AfterSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.AfterSnapshot{}, err
	}

	position := normalizeText(posting.JobPosition)
	description := truncateString(normalizeText(posting.JobDescription), maxDescriptionBytes)
	location := cleanLocation(posting.Location)

	count := posting.RecruitmentCount
	if count < 1 {
		count = 1
	}

	matched := DisabilityCategories(posting.JobDescription)
	disability := posting.DisabilityType
	switch len(matched) {
	case 0:
	case 1:
		disability = matched[0]
	default:
		disability = models.DisabilityTypeMultiple
	}

	category := JobCategory(posting.JobPosition)

	var buf bytes.Buffer
	err := detailTemplate.Execute(&buf, detailData{
		Position:       position,
		Category:       category,
		Count:          count,
		Location:       location,
		DisabilityType: disability,
		Disabilities:   matched,
		Description:    description,
	})
	if err != nil {
		return models.AfterSnapshot{}, fmt.Errorf("render detailed description: %w", err)
	}

	return models.AfterSnapshot{
		JobPosition:         position,
		JobDescription:      description,
		RecruitmentCount:    count,
		Location:            location,
		DisabilityType:      disability,
		Category:            category,
		DetailedDescription: strings.TrimSpace(buf.String()),
	}, nil
}

// DisabilityCategories returns every disability category whose keywords
// appear in text.
func DisabilityCategories(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, rule := range disabilityRules {
		if containsAny(lower, rule.keywords) {
			out = append(out, rule.label)
		}
	}
	return out
}

// JobCategory derives a job category from a position title.
func JobCategory(position string) string {
	lower := strings.ToLower(position)
	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			return rule.label
		}
	}
	return defaultCategory
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func normalizeText(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}

// cleanLocation splits a location on separators and drops empty or repeated
// parts.
func cleanLocation(s string) string {
	parts := reSeparators.Split(normalizeText(s), -1)
	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		key := strings.ToLower(p)
		if p == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}

// truncateString truncates s to maxBytes without splitting UTF-8 runes.
func truncateString(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}

var _ models.EnrichmentStrategy = (*Strategy)(nil)
