package model

import "time"

// SenderType names which side initiated an interest record.
type SenderType string

const (
	SenderEmployee SenderType = "employee"
	SenderEmployer SenderType = "employer"
)

// Valid reports whether the sender type is one of the supported values.
func (s SenderType) Valid() bool {
	return s == SenderEmployee || s == SenderEmployer
}

// InterestStatus is the application state of an interest record.
type InterestStatus string

const (
	InterestPending     InterestStatus = "pending"
	InterestShortlisted InterestStatus = "shortlisted"
	InterestHired       InterestStatus = "hired"
	InterestRejected    InterestStatus = "rejected"
)

// JobInterest is the stored form of an interest between an employee and an employer about a job.
// The meaning of SenderID and ReceiverID depends on SenderType.
type JobInterest struct {
	ID         string         `json:"id"          db:"id"`
	SenderType SenderType     `json:"sender_type" db:"sender_type"`
	SenderID   string         `json:"sender_id"   db:"sender_id"`
	ReceiverID string         `json:"receiver_id" db:"receiver_id"`
	JobID      string         `json:"job_id"      db:"job_id"`
	Status     InterestStatus `json:"status"      db:"status"`
	OTP        *string        `json:"otp,omitempty" db:"otp"`
	CreatedAt  time.Time      `json:"created_at"  db:"created_at"`
}

// InterestDirection is relative to the entity a view is built for.
type InterestDirection string

const (
	DirectionSent     InterestDirection = "sent"
	DirectionReceived InterestDirection = "received"
)

// InterestView is an interest record decorated with display fields of its job and both parties.
type InterestView struct {
	ID            string            `json:"id"`
	JobID         string            `json:"job_id"`
	Status        InterestStatus    `json:"status"`
	SenderType    SenderType        `json:"sender_type"`
	Direction     InterestDirection `json:"direction"`
	EmployeeID    string            `json:"employee_id"`
	EmployeeName  string            `json:"employee_name"`
	EmployerID    string            `json:"employer_id"`
	EmployerName  string            `json:"employer_name"`
	Organization  string            `json:"organization"`
	Description   string            `json:"description"`
	Address       string            `json:"address"`
	SalaryMin     *int64            `json:"salary_min,omitempty"`
	SalaryMax     *int64            `json:"salary_max,omitempty"`
	VacancyLeft   int               `json:"vacancy_left"`
	JobStatus     JobStatus         `json:"job_status,omitempty"`
	OwnerMismatch bool              `json:"owner_mismatch"`
	CreatedAt     time.Time         `json:"created_at"`
}

// InterestBuckets groups decorated interest rows by direction and by hired status.
type InterestBuckets struct {
	Sent     []InterestView `json:"sent"`
	Received []InterestView `json:"received"`
	Hired    []InterestView `json:"hired"`
}
