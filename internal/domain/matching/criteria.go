// Package matching defines which employees are eligible candidates for a job.
package matching

import (
	"slices"
	"strings"

	"github.com/target/jobmarket-api/internal/domain/model"
)

const (
	// DefaultLimit caps the number of recommended candidates.
	DefaultLimit = 50
	// MaxLimit is the largest configurable cap.
	MaxLimit = 500
)

// ClampLimit bounds a configured limit to [1, MaxLimit], using DefaultLimit for non-positive values.
func ClampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultLimit
	case n > MaxLimit:
		return MaxLimit
	default:
		return n
	}
}

// Criteria is the employee filter derived from a job.
// Nil or empty fields place no constraint on candidates.
type Criteria struct {
	StateID        *int64
	CityID         *int64
	Qualifications []int64
	// Genders is empty when the job accepts any gender.
	Genders      []string
	SalaryMin    *int64
	SalaryMax    *int64
	JobProfileID *int64
	Limit        int
}

// NewCriteria builds the filter for job from its qualification and gender sets.
// A gender set containing "any" disables gender filtering.
func NewCriteria(job model.Job, qualifications []int64, genders []string, limit int) Criteria {
	c := Criteria{
		StateID:        job.StateID,
		CityID:         job.CityID,
		Qualifications: slices.Clone(qualifications),
		SalaryMin:      job.SalaryMin,
		SalaryMax:      job.SalaryMax,
		JobProfileID:   job.JobProfileID,
		Limit:          ClampLimit(limit),
	}

	normalized := make([]string, 0, len(genders))
	for _, g := range genders {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == model.GenderAny {
			normalized = nil
			break
		}
		if g != "" && !slices.Contains(normalized, g) {
			normalized = append(normalized, g)
		}
	}
	c.Genders = normalized
	return c
}

// Matches reports whether e is an eligible candidate. It mirrors the query used by the
// employee repository and is the reference for its behavior.
func (c Criteria) Matches(e model.Employee) bool {
	if !e.IsActive {
		return false
	}
	if c.StateID != nil && !equalPtr(c.StateID, e.PreferredStateID) {
		return false
	}
	if c.CityID != nil && !equalPtr(c.CityID, e.PreferredCityID) {
		return false
	}
	if len(c.Qualifications) > 0 {
		if e.QualificationID == nil || !slices.Contains(c.Qualifications, *e.QualificationID) {
			return false
		}
	}
	if len(c.Genders) > 0 && !slices.Contains(c.Genders, strings.ToLower(e.Gender)) {
		return false
	}
	if !c.SalaryCompatible(e.ExpectedSalary) {
		return false
	}
	if c.JobProfileID != nil && !slices.Contains(e.JobProfileIDs, *c.JobProfileID) {
		return false
	}
	return true
}

// SalaryCompatible treats a missing expectation as compatible and a missing bound as open.
func (c Criteria) SalaryCompatible(expected *int64) bool {
	if expected == nil {
		return true
	}
	if c.SalaryMin != nil && *expected < *c.SalaryMin {
		return false
	}
	if c.SalaryMax != nil && *expected > *c.SalaryMax {
		return false
	}
	return true
}

func equalPtr(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}
