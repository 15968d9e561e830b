// Package credit holds the ad-credit rules applied when an employer posts a job.
package credit

import (
	"errors"
	"fmt"
	"time"
)

// CostPerJob is the number of ad credits consumed by posting one job.
const CostPerJob = 1

// ExhaustedError reports that an employer cannot post a job.
// It carries the balance and expiry observed under the row lock so callers can display them.
type ExhaustedError struct {
	Balance   int
	ExpiresAt *time.Time
	Expired   bool
}

func (e *ExhaustedError) Error() string {
	if e.Expired {
		return fmt.Sprintf("ad credits expired at %s", e.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return fmt.Sprintf("insufficient ad credits: balance %d", e.Balance)
}

// IsExhausted reports whether err is or wraps an *ExhaustedError.
func IsExhausted(err error) bool {
	var ex *ExhaustedError
	return errors.As(err, &ex)
}

// AsExhausted extracts the *ExhaustedError from err.
func AsExhausted(err error) (*ExhaustedError, bool) {
	var ex *ExhaustedError
	if errors.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// Expired reports whether credits with the given expiry are unusable at now.
// A nil expiry never expires; an expiry equal to now is already expired.
func Expired(expiresAt *time.Time, now time.Time) bool {
	return expiresAt != nil && !expiresAt.After(now)
}

// Evaluate decides whether one job may be posted against balance.
// Expiry overrides the balance.
func Evaluate(balance int, expiresAt *time.Time, now time.Time) error {
	expired := Expired(expiresAt, now)
	if expired || balance < CostPerJob {
		return &ExhaustedError{Balance: balance, ExpiresAt: expiresAt, Expired: expired}
	}
	return nil
}
