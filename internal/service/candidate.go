package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/target/jobmarket-api/internal/core"
	"github.com/target/jobmarket-api/internal/domain/matching"
	"github.com/target/jobmarket-api/internal/domain/model"
	"github.com/target/jobmarket-api/internal/observability/metrics"
	"github.com/target/jobmarket-api/internal/observability/statsd"
)

// CandidateServiceConfig tunes recommendation behavior.
type CandidateServiceConfig struct {
	// Limit caps the recommended list. Clamped to [1, matching.MaxLimit]; 0 means matching.DefaultLimit.
	Limit int
	// ComputeTimeout bounds a shared candidate query. Defaults to DefaultComputeTimeout.
	ComputeTimeout time.Duration
}

// DefaultComputeTimeout bounds a shared candidate query when none is configured.
const DefaultComputeTimeout = 10 * time.Second

// CandidateServiceOptions groups dependencies for CandidateService.
type CandidateServiceOptions struct {
	Jobs      core.JobRepository      // Required: job lookup
	Employees core.EmployeeRepository // Required: candidate query
	Cache     *core.CandidateCache    // Optional: recommendation cache
	Config    CandidateServiceConfig
	Metrics   statsd.Sink  // Optional: metrics sink
	Logger    *slog.Logger // Optional: structured logger
}

// CandidateService recommends employees for a job.
type CandidateService struct {
	jobs      core.JobRepository
	employees core.EmployeeRepository
	cache     *core.CandidateCache
	limit     int
	timeout   time.Duration
	metrics   statsd.Sink
	logger    *slog.Logger
	group     singleflight.Group
}

// NewCandidateService constructs a new CandidateService.
func NewCandidateService(opts CandidateServiceOptions) (*CandidateService, error) {
	if opts.Jobs == nil {
		return nil, errors.New("JobRepository is required")
	}
	if opts.Employees == nil {
		return nil, errors.New("EmployeeRepository is required")
	}

	sink := opts.Metrics
	if sink == nil {
		sink = statsd.Discard{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := opts.Config.ComputeTimeout
	if timeout <= 0 {
		timeout = DefaultComputeTimeout
	}

	return &CandidateService{
		jobs:      opts.Jobs,
		employees: opts.Employees,
		cache:     opts.Cache,
		limit:     matching.ClampLimit(opts.Config.Limit),
		timeout:   timeout,
		metrics:   sink,
		logger:    logger.With("component", "candidate_service"),
	}, nil
}

// MustNewCandidateService constructs a new CandidateService and panics on error.
func MustNewCandidateService(opts CandidateServiceOptions) *CandidateService {
	svc, err := NewCandidateService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create CandidateService: %v", err))
	}
	return svc
}

// Recommend returns active employees matching jobID, newest first.
//
// The job is always read first so a deleted job is reported as not found and a cached
// list is served only for the revision it was computed from. Concurrent misses for the
// same revision share one computation that outlives any single caller. Cache failures
// degrade to a direct query.
func (s *CandidateService) Recommend(ctx context.Context, jobID string) ([]*model.Employee, error) {
	start := time.Now()
	out, hit, err := s.recommend(ctx, jobID)
	metrics.EmitMatching(s.metrics, metrics.MatchingMetric{
		CacheHit:   hit,
		Candidates: len(out),
		Duration:   time.Since(start),
		Err:        err,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CandidateService) recommend(ctx context.Context, jobID string) ([]*model.Employee, bool, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, false, err
	}
	version := core.CandidateVersion(&job.Job)

	if cached, hit, err := s.cache.Get(ctx, jobID, version); err != nil {
		s.logger.WarnContext(ctx, "candidate cache read failed", "job_id", jobID, "error", err)
	} else if hit {
		return cached, true, nil
	}

	// The flight runs detached so one caller going away does not fail the others.
	flight := s.group.DoChan(jobID+"@"+version, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.compute(fctx, job, version)
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return nil, false, res.Err
		}
		out, _ := res.Val.([]*model.Employee)
		return out, false, nil
	}
}

func (s *CandidateService) compute(
	ctx context.Context,
	job *model.JobWithChildren,
	version string,
) ([]*model.Employee, error) {
	criteria := matching.NewCriteria(job.Job, job.Qualifications, job.Genders, s.limit)
	employees, err := s.employees.FindCandidates(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	if employees == nil {
		employees = []*model.Employee{}
	}

	if err := s.cache.Put(ctx, job.ID, version, employees); err != nil {
		s.logger.WarnContext(ctx, "candidate cache write failed", "job_id", job.ID, "error", err)
	}
	return employees, nil
}

// PurgeCache drops every cached recommendation list.
func (s *CandidateService) PurgeCache(ctx context.Context) (int, error) {
	return s.cache.Purge(ctx)
}
