// Package models contains shared data models used across the HireBridge codebase.
package models

const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusReviewing = "reviewing"
	ApplicationStatusApproved  = "approved"
	ApplicationStatusRejected  = "rejected"
)

var applicationStatuses = map[string]bool{
	ApplicationStatusPending:   true,
	ApplicationStatusReviewing: true,
	ApplicationStatusApproved:  true,
	ApplicationStatusRejected:  true,
}

// ValidApplicationStatus reports whether s is one of the known review states.
func ValidApplicationStatus(s string) bool {
	return applicationStatuses[s]
}

// Application is a submitted resume under review. Applications are loaded
// from seed data and only ever change through a status transition.
type Application struct {
	ID              string   `yaml:"id"               json:"id"`
	Name            string   `yaml:"name"             json:"name"`
	Email           string   `yaml:"email"            json:"email"`
	Phone           string   `yaml:"phone"            json:"phone"`
	DisabilityType  string   `yaml:"disability_type"  json:"disability_type"`
	DisabilityGrade string   `yaml:"disability_grade" json:"disability_grade"`
	Experience      string   `yaml:"experience"       json:"experience"`
	Education       string   `yaml:"education"        json:"education"`
	Skills          []string `yaml:"skills"           json:"skills"`
	AppliedPosition string   `yaml:"applied_position" json:"applied_position"`
	AppliedDate     string   `yaml:"applied_date"     json:"applied_date"`
	Status          string   `yaml:"status"           json:"status"`
	Documents       []string `yaml:"documents"        json:"documents"`
}

// Clone returns a deep copy of a.
func (a *Application) Clone() *Application {
	c := *a
	c.Skills = cloneStrings(a.Skills)
	c.Documents = cloneStrings(a.Documents)
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
