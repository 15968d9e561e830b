// Package model defines the core data types shared by the job marketplace admin service.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxJobTextLen     = 5000
	maxInterviewerLen = 255
)

// JobStatus is the operational state of a job posting.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobStatus string

const (
	// JobStatusInactive indicates the job is not visible to job seekers.
	JobStatusInactive JobStatus = "inactive"
	// JobStatusActive indicates the job is live.
	JobStatusActive JobStatus = "active"
	// JobStatusExpired indicates the job has been closed.
	JobStatusExpired JobStatus = "expired"
)

// Valid reports whether the status is one of the supported values.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusInactive, JobStatusActive, JobStatusExpired:
		return true
	default:
		return false
	}
}

// UnmarshalText normalizes and validates a status value.
func (s *JobStatus) UnmarshalText(text []byte) error {
	v := JobStatus(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid job status: %q", string(text))
	}
	*s = v
	return nil
}

// VerificationStatus is the staff review outcome of a job posting.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Valid reports whether the verification status is one of the supported values.
func (v VerificationStatus) Valid() bool {
	switch v {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return true
	default:
		return false
	}
}

// UnmarshalText normalizes and validates a verification status value.
func (v *VerificationStatus) UnmarshalText(text []byte) error {
	vs := VerificationStatus(strings.ToLower(strings.TrimSpace(string(text))))
	if !vs.Valid() {
		return fmt.Errorf("invalid verification status: %q", string(text))
	}
	*v = vs
	return nil
}

// Accepted gender values for a job. GenderAny disables gender filtering.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
	GenderAny    = "any"
)

func validGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderAny:
		return true
	default:
		return false
	}
}

// Job is the header record of a job posting.
type Job struct {
	ID                 string             `json:"id"                          db:"id"`
	EmployerID         string             `json:"employer_id"                 db:"employer_id"`
	JobProfileID       *int64             `json:"job_profile_id,omitempty"    db:"job_profile_id"`
	IsHousehold        bool               `json:"is_household"                db:"is_household"`
	DescriptionEN      string             `json:"description_en"              db:"description_en"`
	DescriptionLocal   string             `json:"description_local"           db:"description_local"`
	AddressEN          string             `json:"address_en"                  db:"address_en"`
	AddressLocal       string             `json:"address_local"               db:"address_local"`
	NoVacancy          int                `json:"no_vacancy"                  db:"no_vacancy"`
	HiredTotal         int                `json:"hired_total"                 db:"hired_total"`
	InterviewerName    string             `json:"interviewer_name"            db:"interviewer_name"`
	InterviewerPhone   string             `json:"interviewer_phone"           db:"interviewer_phone"`
	InterviewerOTP     *string            `json:"interviewer_otp,omitempty"   db:"interviewer_otp"`
	StateID            *int64             `json:"state_id,omitempty"          db:"state_id"`
	CityID             *int64             `json:"city_id,omitempty"           db:"city_id"`
	SalaryMin          *int64             `json:"salary_min,omitempty"        db:"salary_min"`
	SalaryMax          *int64             `json:"salary_max,omitempty"        db:"salary_max"`
	WorkStartTime      *string            `json:"work_start_time,omitempty"   db:"work_start_time"`
	WorkEndTime        *string            `json:"work_end_time,omitempty"     db:"work_end_time"`
	Status             JobStatus          `json:"status"                      db:"status"`
	VerificationStatus VerificationStatus `json:"verification_status"         db:"verification_status"`
	ExpiredAt          *time.Time         `json:"expired_at,omitempty"        db:"expired_at"`
	CreatedAt          time.Time          `json:"created_at"                  db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"                  db:"updated_at"`
	DeletedAt          *time.Time         `json:"-"                           db:"deleted_at"`
}

// VacancyLeft returns the open capacity of the job. It is never stored.
func (j *Job) VacancyLeft() int {
	if j == nil {
		return 0
	}
	return j.NoVacancy - j.HiredTotal
}

// JobChildren holds the seven dependent collections owned by a job.
// Each collection is a set; writes replace the stored set with exactly these values.
type JobChildren struct {
	Skills          []int64  `json:"skills"`
	Qualifications  []int64  `json:"qualifications"`
	Shifts          []int64  `json:"shifts"`
	Genders         []string `json:"genders"`
	Benefits        []int64  `json:"benefits"`
	ExperienceBands []int64  `json:"experience_bands"`
	WorkingDays     []int64  `json:"working_days"`
}

// Normalize deduplicates every collection and lowercases gender values, preserving first-seen order.
func (c *JobChildren) Normalize() {
	c.Skills = uniqueInt64(c.Skills)
	c.Qualifications = uniqueInt64(c.Qualifications)
	c.Shifts = uniqueInt64(c.Shifts)
	c.Benefits = uniqueInt64(c.Benefits)
	c.ExperienceBands = uniqueInt64(c.ExperienceBands)
	c.WorkingDays = uniqueInt64(c.WorkingDays)

	genders := make([]string, 0, len(c.Genders))
	seen := make(map[string]struct{}, len(c.Genders))
	for _, g := range c.Genders {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		genders = append(genders, g)
	}
	c.Genders = genders
}

// Validate normalizes the collections and rejects gender values outside the accepted vocabulary.
func (c *JobChildren) Validate() error {
	c.Normalize()
	for _, g := range c.Genders {
		if !validGender(g) {
			return fmt.Errorf("genders must contain only male, female, other or any: %q", g)
		}
	}
	return nil
}

func uniqueInt64(in []int64) []int64 {
	out := make([]int64, 0, len(in))
	seen := make(map[int64]struct{}, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// JobWithChildren is the full job aggregate returned by the API.
type JobWithChildren struct {
	Job
	JobChildren
	VacancyLeft int `json:"vacancy_left"`
}

// NewJobWithChildren assembles the aggregate and computes derived fields.
func NewJobWithChildren(job Job, children JobChildren) *JobWithChildren {
	return &JobWithChildren{Job: job, JobChildren: children, VacancyLeft: job.VacancyLeft()}
}

// JobFields are the caller-editable scalar fields of a job.
type JobFields struct {
	JobProfileID     *int64  `json:"job_profile_id,omitempty"`
	IsHousehold      bool    `json:"is_household"`
	DescriptionEN    string  `json:"description_en"`
	DescriptionLocal string  `json:"description_local"`
	AddressEN        string  `json:"address_en"`
	AddressLocal     string  `json:"address_local"`
	NoVacancy        int     `json:"no_vacancy"`
	InterviewerName  string  `json:"interviewer_name"`
	InterviewerPhone string  `json:"interviewer_phone"`
	InterviewerOTP   *string `json:"interviewer_otp,omitempty"`
	StateID          *int64  `json:"state_id,omitempty"`
	CityID           *int64  `json:"city_id,omitempty"`
	SalaryMin        *int64  `json:"salary_min,omitempty"`
	SalaryMax        *int64  `json:"salary_max,omitempty"`
	WorkStartTime    *string `json:"work_start_time,omitempty"`
	WorkEndTime      *string `json:"work_end_time,omitempty"`
}

// Validate checks the scalar fields shared by create and update.
func (f *JobFields) Validate() error {
	if f.NoVacancy < 1 {
		return errors.New("no_vacancy must be at least 1")
	}
	if utf8.RuneCountInString(f.DescriptionEN) > maxJobTextLen ||
		utf8.RuneCountInString(f.DescriptionLocal) > maxJobTextLen {
		return errors.New("description cannot exceed 5000 characters")
	}
	if utf8.RuneCountInString(f.AddressEN) > maxJobTextLen ||
		utf8.RuneCountInString(f.AddressLocal) > maxJobTextLen {
		return errors.New("address cannot exceed 5000 characters")
	}
	if utf8.RuneCountInString(f.InterviewerName) > maxInterviewerLen {
		return errors.New("interviewer_name cannot exceed 255 characters")
	}
	if f.SalaryMin != nil && *f.SalaryMin < 0 {
		return errors.New("salary_min must be non-negative")
	}
	if f.SalaryMax != nil && *f.SalaryMax < 0 {
		return errors.New("salary_max must be non-negative")
	}
	if f.SalaryMin != nil && f.SalaryMax != nil && *f.SalaryMin > *f.SalaryMax {
		return errors.New("salary_min must be at least 0 and not greater than salary_max")
	}
	if f.CityID != nil && f.StateID == nil {
		return errors.New("state_id is required when city_id is set")
	}
	return nil
}

// CreateJobRequest is the body of a job creation.
// Status and verification status are not accepted: a new job always starts inactive and pending.
type CreateJobRequest struct {
	EmployerID string `json:"employer_id"`
	JobFields
	JobChildren
}

// Validate validates CreateJobRequest and normalizes its child sets.
func (r *CreateJobRequest) Validate() error {
	r.EmployerID = strings.TrimSpace(r.EmployerID)
	if r.EmployerID == "" {
		return errors.New("employer_id is required and cannot be empty")
	}
	if _, err := uuid.Parse(r.EmployerID); err != nil {
		return errors.New("employer_id must be a valid UUID")
	}
	if err := r.JobFields.Validate(); err != nil {
		return err
	}
	return r.JobChildren.Validate()
}

// UpdateJobRequest is a full-replace update: every scalar field and every child set is overwritten.
type UpdateJobRequest struct {
	JobFields
	JobChildren
}

// Validate validates UpdateJobRequest and normalizes its child sets.
func (r *UpdateJobRequest) Validate() error {
	if err := r.JobFields.Validate(); err != nil {
		return err
	}
	return r.JobChildren.Validate()
}

// ChangeStatusRequest is the body of a status change.
type ChangeStatusRequest struct {
	Status JobStatus `json:"status"`
}

// ChangeVerificationRequest is the body of a verification status change.
type ChangeVerificationRequest struct {
	VerificationStatus VerificationStatus `json:"verification_status"`
}

// JobListOptions controls paging and filtering for job listing.
type JobListOptions struct {
	Limit              int
	Offset             int
	EmployerID         *string
	Status             *JobStatus
	VerificationStatus *VerificationStatus
	// Expired selects jobs by the broad expiry classification (status or expired_at).
	Expired *bool
}
