package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kiranshivaraju/hirebridge/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeed_Default(t *testing.T) {
	seed, err := store.LoadSeed("")
	require.NoError(t, err)

	assert.Len(t, seed.Applications, 3)
	assert.Len(t, seed.Incentives, 3)
	require.Len(t, seed.JobPostings, 3)

	p := seed.JobPostings[0]
	assert.Equal(t, "all", p.DisabilityType)
	assert.Equal(t, "09:00 - 18:00", p.WorkingHours)
	assert.Equal(t, "3-5", p.ExperienceLevel)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), p.CreatedAt.UTC())
	assert.False(t, p.Analyzed)
}

func TestLoadSeed_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	doc := `
applications:
  - id: a1
    name: Test Applicant
    status: pending
incentives: []
job_postings: []
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	seed, err := store.LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed.Applications, 1)
	assert.Equal(t, "Test Applicant", seed.Applications[0].Name)
	assert.Empty(t, seed.JobPostings)
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := store.LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read seed file")
}

func TestParseSeed_InvalidYAML(t *testing.T) {
	_, err := store.ParseSeed([]byte("applications: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse seed")
}

func TestParseSeed_DuplicateID(t *testing.T) {
	doc := `
job_postings:
  - id: "1"
    title: first
  - id: "1"
    title: second
`
	_, err := store.ParseSeed([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate job posting id "1"`)
}

func TestParseSeed_MissingID(t *testing.T) {
	_, err := store.ParseSeed([]byte("incentives:\n  - name: no id\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no id")
}

func TestParseSeed_NullEntry(t *testing.T) {
	for _, doc := range []string{
		"job_postings:\n  - ~\n",
		"applications:\n  - ~\n",
		"incentives:\n  - ~\n",
	} {
		_, err := store.ParseSeed([]byte(doc))
		require.Error(t, err, doc)
		assert.Contains(t, err.Error(), "at index 0 is empty")
	}
}

func TestParseSeed_AnalyzedWithoutSnapshots(t *testing.T) {
	doc := `
job_postings:
  - id: "9"
    analyzed: true
`
	_, err := store.ParseSeed([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analyzed must be set exactly when both snapshots are present")
}

func TestParseSeed_AnalyzedWithSnapshots(t *testing.T) {
	doc := `
job_postings:
  - id: "9"
    job_position: Barista
    analyzed: true
    before_snapshot:
      job_position: cafe staff
      disability_type: no restriction
    after_snapshot:
      job_position: Barista
      disability_type: hearing
      category: Food Service
`
	seed, err := store.ParseSeed([]byte(doc))
	require.NoError(t, err)
	require.Len(t, seed.JobPostings, 1)
	assert.Equal(t, "hearing", seed.JobPostings[0].After.DisabilityType)
	assert.Equal(t, "no restriction", seed.JobPostings[0].Before.DisabilityType)
}
