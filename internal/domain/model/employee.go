package model

import "time"

// Employee is a job seeker profile. It is only read by this service.
type Employee struct {
	ID               string    `json:"id"                           db:"id"`
	Name             string    `json:"name"                         db:"name"`
	Gender           string    `json:"gender"                       db:"gender"`
	PreferredStateID *int64    `json:"preferred_state_id,omitempty" db:"preferred_state_id"`
	PreferredCityID  *int64    `json:"preferred_city_id,omitempty"  db:"preferred_city_id"`
	QualificationID  *int64    `json:"qualification_id,omitempty"   db:"qualification_id"`
	ExpectedSalary   *int64    `json:"expected_salary,omitempty"    db:"expected_salary"`
	SalaryFrequency  string    `json:"salary_frequency"             db:"salary_frequency"`
	IsActive         bool      `json:"is_active"                    db:"is_active"`
	CreatedAt        time.Time `json:"created_at"                   db:"created_at"`
	JobProfileIDs    []int64   `json:"job_profile_ids,omitempty"    db:"-"`
}
