package models

import "time"

const (
	PostingStatusDraft     = "draft"
	PostingStatusPublished = "published"
	PostingStatusClosed    = "closed"
)

// DisabilityTypeAll is the wildcard category meaning "any disability".
const DisabilityTypeAll = "all"

// DisabilityTypeMultiple classifies postings that target several categories.
const DisabilityTypeMultiple = "multiple"

// JobPosting is a recruitment listing. Once Analyzed is set, Before and After
// hold the enrichment audit pair and are never recomputed by later updates.
type JobPosting struct {
	ID               string    `yaml:"id"                json:"id"`
	Title            string    `yaml:"title"             json:"title"`
	CompanyName      string    `yaml:"company_name"      json:"company_name"`
	JobPosition      string    `yaml:"job_position"      json:"job_position"`
	JobDescription   string    `yaml:"job_description"   json:"job_description"`
	RecruitmentCount int       `yaml:"recruitment_count" json:"recruitment_count"`
	Location         string    `yaml:"location"          json:"location"`
	EmploymentType   string    `yaml:"employment_type"   json:"employment_type"`
	WorkingHours     string    `yaml:"working_hours"     json:"working_hours"`
	WorkingDays      string    `yaml:"working_days"      json:"working_days"`
	MonthlySalary    string    `yaml:"monthly_salary"    json:"monthly_salary"`
	EducationLevel   string    `yaml:"education_level"   json:"education_level"`
	ExperienceLevel  string    `yaml:"experience_level"  json:"experience_level"`
	DisabilityType   string    `yaml:"disability_type"   json:"disability_type"`
	Gender           string    `yaml:"gender"            json:"gender"`
	AgeRange         string    `yaml:"age_range"         json:"age_range"`
	Image            string    `yaml:"image"             json:"image,omitempty"`
	Status           string    `yaml:"status"            json:"status"`
	CreatedAt        time.Time `yaml:"created_at"        json:"created_at"`
	UpdatedAt        time.Time `yaml:"updated_at"        json:"updated_at"`

	Analyzed bool            `yaml:"analyzed"        json:"analyzed"`
	Before   *BeforeSnapshot `yaml:"before_snapshot" json:"before_snapshot,omitempty"`
	After    *AfterSnapshot  `yaml:"after_snapshot"  json:"after_snapshot,omitempty"`
}

// Clone returns a deep copy of p.
func (p *JobPosting) Clone() *JobPosting {
	c := *p
	if p.Before != nil {
		b := *p.Before
		c.Before = &b
	}
	if p.After != nil {
		a := *p.After
		c.After = &a
	}
	return &c
}

// JobPostingDraft is a posting as submitted for creation: no identity,
// timestamps or enrichment state. Enum fields are passed through unvalidated.
type JobPostingDraft struct {
	Title            string `json:"title"`
	CompanyName      string `json:"company_name"`
	JobPosition      string `json:"job_position"`
	JobDescription   string `json:"job_description"`
	RecruitmentCount int    `json:"recruitment_count"`
	Location         string `json:"location"`
	EmploymentType   string `json:"employment_type"`
	WorkingHours     string `json:"working_hours"`
	WorkingDays      string `json:"working_days"`
	MonthlySalary    string `json:"monthly_salary"`
	EducationLevel   string `json:"education_level"`
	ExperienceLevel  string `json:"experience_level"`
	DisabilityType   string `json:"disability_type"`
	Gender           string `json:"gender"`
	AgeRange         string `json:"age_range"`
	Image            string `json:"image,omitempty"`
	Status           string `json:"status"`
}

// Stamp turns the draft into a posting with the given identity and creation time.
func (d JobPostingDraft) Stamp(id string, now time.Time) *JobPosting {
	return &JobPosting{
		ID:               id,
		Title:            d.Title,
		CompanyName:      d.CompanyName,
		JobPosition:      d.JobPosition,
		JobDescription:   d.JobDescription,
		RecruitmentCount: d.RecruitmentCount,
		Location:         d.Location,
		EmploymentType:   d.EmploymentType,
		WorkingHours:     d.WorkingHours,
		WorkingDays:      d.WorkingDays,
		MonthlySalary:    d.MonthlySalary,
		EducationLevel:   d.EducationLevel,
		ExperienceLevel:  d.ExperienceLevel,
		DisabilityType:   d.DisabilityType,
		Gender:           d.Gender,
		AgeRange:         d.AgeRange,
		Image:            d.Image,
		Status:           d.Status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// JobPostingPatch lists the fields an update may change. Nil fields are left
// as they are. The enrichment audit pair changes only when Snapshots is set.
type JobPostingPatch struct {
	Title            *string `json:"title,omitempty"`
	CompanyName      *string `json:"company_name,omitempty"`
	JobPosition      *string `json:"job_position,omitempty"`
	JobDescription   *string `json:"job_description,omitempty"`
	RecruitmentCount *int    `json:"recruitment_count,omitempty"`
	Location         *string `json:"location,omitempty"`
	EmploymentType   *string `json:"employment_type,omitempty"`
	WorkingHours     *string `json:"working_hours,omitempty"`
	WorkingDays      *string `json:"working_days,omitempty"`
	MonthlySalary    *string `json:"monthly_salary,omitempty"`
	EducationLevel   *string `json:"education_level,omitempty"`
	ExperienceLevel  *string `json:"experience_level,omitempty"`
	DisabilityType   *string `json:"disability_type,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	AgeRange         *string `json:"age_range,omitempty"`
	Image            *string `json:"image,omitempty"`
	Status           *string `json:"status,omitempty"`

	Snapshots *SnapshotPair `json:"snapshots,omitempty"`
}

// SnapshotPair is an explicit replacement of a posting's enrichment audit pair.
type SnapshotPair struct {
	Before BeforeSnapshot `json:"before"`
	After  AfterSnapshot  `json:"after"`
}

// Apply merges the patch into p. It does not touch UpdatedAt.
func (patch JobPostingPatch) Apply(p *JobPosting) {
	setString(&p.Title, patch.Title)
	setString(&p.CompanyName, patch.CompanyName)
	setString(&p.JobPosition, patch.JobPosition)
	setString(&p.JobDescription, patch.JobDescription)
	if patch.RecruitmentCount != nil {
		p.RecruitmentCount = *patch.RecruitmentCount
	}
	setString(&p.Location, patch.Location)
	setString(&p.EmploymentType, patch.EmploymentType)
	setString(&p.WorkingHours, patch.WorkingHours)
	setString(&p.WorkingDays, patch.WorkingDays)
	setString(&p.MonthlySalary, patch.MonthlySalary)
	setString(&p.EducationLevel, patch.EducationLevel)
	setString(&p.ExperienceLevel, patch.ExperienceLevel)
	setString(&p.DisabilityType, patch.DisabilityType)
	setString(&p.Gender, patch.Gender)
	setString(&p.AgeRange, patch.AgeRange)
	setString(&p.Image, patch.Image)
	setString(&p.Status, patch.Status)

	if patch.Snapshots != nil {
		before := patch.Snapshots.Before
		after := patch.Snapshots.After
		p.Before = &before
		p.After = &after
		p.Analyzed = true
	}
}

// IsEmpty reports whether the patch would change nothing.
func (patch JobPostingPatch) IsEmpty() bool {
	return patch == JobPostingPatch{}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
