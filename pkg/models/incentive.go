package models

const (
	IncentiveStatusAvailable = "available"
	IncentiveStatusApplied   = "applied"
	IncentiveStatusApproved  = "approved"
	IncentiveStatusExpired   = "expired"
)

const (
	IncentiveCategoryHiring   = "hiring"
	IncentiveCategoryTraining = "training"
	IncentiveCategoryFacility = "facility"
	IncentiveCategoryOther    = "other"
)

// IncentiveProgram is a government hiring-incentive program. Amount is in the
// smallest currency unit; ApplicationDeadline is a calendar date (YYYY-MM-DD).
type IncentiveProgram struct {
	ID                  string   `yaml:"id"                   json:"id"`
	Name                string   `yaml:"name"                 json:"name"`
	Description         string   `yaml:"description"          json:"description"`
	Amount              int64    `yaml:"amount"               json:"amount"`
	EligibleConditions  []string `yaml:"eligible_conditions"  json:"eligible_conditions"`
	ApplicationDeadline string   `yaml:"application_deadline" json:"application_deadline"`
	Status              string   `yaml:"status"               json:"status"`
	Category            string   `yaml:"category"             json:"category"`
}

// Clone returns a deep copy of p.
func (p *IncentiveProgram) Clone() *IncentiveProgram {
	c := *p
	c.EligibleConditions = cloneStrings(p.EligibleConditions)
	return &c
}
