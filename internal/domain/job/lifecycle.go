// Package job holds the lifecycle rules for job postings.
package job

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/target/jobmarket-api/internal/domain/model"
)

// ErrNotVerified indicates a status change was requested for a job that is not approved.
var ErrNotVerified = errors.New("job must be approved before its status can change")

// Initial lifecycle values for a freshly posted job. Caller input never overrides them.
const (
	InitialStatus       = model.JobStatusInactive
	InitialVerification = model.VerificationPending
)

// ParseStatus parses an operational status value.
func ParseStatus(s string) (model.JobStatus, error) {
	v := model.JobStatus(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("status must be one of inactive, active, expired: %q", s)
	}
	return v, nil
}

// ParseVerificationStatus parses a verification status value.
func ParseVerificationStatus(s string) (model.VerificationStatus, error) {
	v := model.VerificationStatus(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("verification_status must be one of pending, approved, rejected: %q", s)
	}
	return v, nil
}

// StatusChange is the stored outcome of a permitted status transition.
type StatusChange struct {
	Status    model.JobStatus
	ExpiredAt *time.Time
}

// PlanStatusChange applies the verification guard and the expiry encoding.
//
// Only approved jobs may change status. Requesting expired stamps expired_at with now;
// active and inactive both clear it.
func PlanStatusChange(
	verification model.VerificationStatus,
	requested model.JobStatus,
	now time.Time,
) (StatusChange, error) {
	if !requested.Valid() {
		return StatusChange{}, fmt.Errorf("invalid job status: %q", requested)
	}
	if verification != model.VerificationApproved {
		return StatusChange{}, ErrNotVerified
	}
	if requested == model.JobStatusExpired {
		at := now
		return StatusChange{Status: requested, ExpiredAt: &at}, nil
	}
	return StatusChange{Status: requested}, nil
}

// ExpiredFilterSQL is the read-side expiry classification. It is intentionally broader than
// the write-side encoding so that drift between the two signals never hides an expired job.
const ExpiredFilterSQL = "(status = 'expired' OR expired_at IS NOT NULL)"
