package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Employer is a hiring organization and the owner of an ad-credit ledger.
type Employer struct {
	ID             string     `json:"id"                         db:"id"`
	Name           string     `json:"name"                       db:"name"`
	Organization   string     `json:"organization"               db:"organization"`
	AdCredit       int        `json:"ad_credit"                  db:"ad_credit"`
	TotalAdCredit  int        `json:"total_ad_credit"            db:"total_ad_credit"`
	CreditExpiryAt *time.Time `json:"credit_expiry_at,omitempty" db:"credit_expiry_at"`
	CreatedAt      time.Time  `json:"created_at"                 db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"                 db:"updated_at"`
	DeletedAt      *time.Time `json:"-"                          db:"deleted_at"`
}

// CreditInfo is the read-only view of an employer's ledger.
type CreditInfo struct {
	EmployerID     string     `json:"employer_id"`
	AdCredit       int        `json:"ad_credit"`
	TotalAdCredit  int        `json:"total_ad_credit"`
	CreditExpiryAt *time.Time `json:"credit_expiry_at"`
	IsExpired      bool       `json:"is_expired"`
}

// GrantCreditsRequest tops up an employer's balance outside the job-posting path.
type GrantCreditsRequest struct {
	EmployerID string
	Amount     int
	// ExpiresAt replaces credit_expiry_at when set; nil leaves the current expiry untouched.
	ExpiresAt *time.Time
}

// Validate validates GrantCreditsRequest.
func (r *GrantCreditsRequest) Validate() error {
	r.EmployerID = strings.TrimSpace(r.EmployerID)
	if _, err := uuid.Parse(r.EmployerID); err != nil {
		return errors.New("employer id must be a valid UUID")
	}
	if r.Amount < 1 {
		return errors.New("amount must be at least 1")
	}
	return nil
}
