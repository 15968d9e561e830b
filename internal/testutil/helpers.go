package testutil

import (
	"time"

	"golang.org/x/sync/errgroup"
)

// TestTime is the fixed instant tests use as "now".
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func FixedTimeFunc(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// RunConcurrently starts every fn at once and returns their errors in order.
func RunConcurrently(fns ...func() error) []error {
	errs := make([]error, len(fns))
	var g errgroup.Group
	for i, fn := range fns {
		g.Go(func() error {
			errs[i] = fn()
			return nil
		})
	}
	_ = g.Wait()
	return errs
}
