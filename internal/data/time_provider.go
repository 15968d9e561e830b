package data

import "time"

// TimeProvider supplies the clock used for credit expiry and status timestamps.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the system clock in UTC.
type RealTimeProvider struct{}

func (*RealTimeProvider) Now() time.Time { return time.Now().UTC() }

// FixedTimeProvider is a manually advanced clock for tests.
type FixedTimeProvider struct {
	now time.Time
}

func NewFixedTimeProvider(t time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{now: t}
}

func (f *FixedTimeProvider) Now() time.Time { return f.now }

// AddTime moves the clock forward by d.
func (f *FixedTimeProvider) AddTime(d time.Duration) { f.now = f.now.Add(d) }
