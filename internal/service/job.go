package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/target/jobmarket-api/internal/core"
	"github.com/target/jobmarket-api/internal/domain/credit"
	"github.com/target/jobmarket-api/internal/domain/model"
	"github.com/target/jobmarket-api/internal/observability/metrics"
	"github.com/target/jobmarket-api/internal/observability/statsd"
)

const auditEntityJob = "job"

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Repo       core.JobRepository   // Required: job aggregate store
	Candidates *core.CandidateCache // Optional: recommendation cache to invalidate on writes
	Audit      *AuditService        // Optional: audit trail
	Metrics    statsd.Sink          // Optional: metrics sink
	Logger     *slog.Logger         // Optional: structured logger
}

// JobService orchestrates job writes: the repository transaction first, then the
// post-commit side effects (audit, cache invalidation, metrics).
type JobService struct {
	repo       core.JobRepository
	candidates *core.CandidateCache
	audit      *AuditService
	metrics    statsd.Sink
	logger     *slog.Logger
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) (*JobService, error) {
	if opts.Repo == nil {
		return nil, errors.New("JobRepository is required")
	}

	sink := opts.Metrics
	if sink == nil {
		sink = statsd.Discard{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &JobService{
		repo:       opts.Repo,
		candidates: opts.Candidates,
		audit:      opts.Audit,
		metrics:    sink,
		logger:     logger.With("component", "job_service"),
	}, nil
}

// MustNewJobService constructs a new JobService and panics on error.
// Use this when you're certain the options are valid (e.g., in main.go).
func MustNewJobService(opts JobServiceOptions) *JobService {
	svc, err := NewJobService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create JobService: %v", err))
	}
	return svc
}

// Create posts a job, consuming one ad credit from its employer.
func (s *JobService) Create(ctx context.Context, req *model.CreateJobRequest) (*model.JobWithChildren, error) {
	start := time.Now()
	job, err := s.repo.Create(ctx, req)
	s.observe(ctx, metrics.ActionCreate, start, err)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.audit.Record(ctx, model.AuditEntry{
		Action:     model.AuditJobCreated,
		EntityType: auditEntityJob,
		EntityID:   job.ID,
		Payload:    map[string]any{"employer_id": job.EmployerID, "credit_cost": credit.CostPerJob},
	})
	s.logger.DebugContext(ctx, "job created", "id", job.ID, "employer_id", job.EmployerID)
	return job, nil
}

// Update fully replaces the editable fields and child sets of a job.
func (s *JobService) Update(
	ctx context.Context,
	id string,
	req *model.UpdateJobRequest,
) (*model.JobWithChildren, error) {
	start := time.Now()
	job, err := s.repo.Update(ctx, id, req)
	s.observe(ctx, metrics.ActionUpdate, start, err)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}

	s.afterWrite(ctx, id, model.AuditEntry{Action: model.AuditJobUpdated, Payload: req})
	return job, nil
}

// Delete tombstones a job and removes its child sets.
func (s *JobService) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.repo.Delete(ctx, id)
	s.observe(ctx, metrics.ActionDelete, start, err)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	s.afterWrite(ctx, id, model.AuditEntry{Action: model.AuditJobDeleted})
	return nil
}

// ChangeStatus changes the operational status of an approved job.
func (s *JobService) ChangeStatus(
	ctx context.Context,
	id string,
	status model.JobStatus,
) (*model.JobWithChildren, error) {
	start := time.Now()
	job, err := s.repo.ChangeStatus(ctx, id, status)
	s.observe(ctx, metrics.ActionChangeStatus, start, err)
	if err != nil {
		return nil, fmt.Errorf("change job status: %w", err)
	}

	s.afterWrite(ctx, id, model.AuditEntry{
		Action:  model.AuditJobStatusChanged,
		Payload: map[string]any{"status": job.Status, "expired_at": job.ExpiredAt},
	})
	return job, nil
}

// ChangeVerification records the staff review outcome of a job.
func (s *JobService) ChangeVerification(
	ctx context.Context,
	id string,
	status model.VerificationStatus,
) (*model.JobWithChildren, error) {
	start := time.Now()
	job, err := s.repo.ChangeVerification(ctx, id, status)
	s.observe(ctx, metrics.ActionChangeVerification, start, err)
	if err != nil {
		return nil, fmt.Errorf("change verification status: %w", err)
	}

	s.afterWrite(ctx, id, model.AuditEntry{
		Action:  model.AuditJobVerificationChange,
		Payload: map[string]any{"verification_status": job.VerificationStatus},
	})
	return job, nil
}

// GetByID retrieves a live job with its child sets.
func (s *JobService) GetByID(ctx context.Context, id string) (*model.JobWithChildren, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of live jobs.
func (s *JobService) List(ctx context.Context, opts *model.JobListOptions) ([]*model.Job, error) {
	return s.repo.List(ctx, opts)
}

// afterWrite runs the post-commit side effects of a mutation on an existing job.
// Neither step can fail the request: the write has already committed.
func (s *JobService) afterWrite(ctx context.Context, id string, entry model.AuditEntry) {
	if _, err := s.candidates.Invalidate(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "candidate cache invalidation failed", "job_id", id, "error", err)
	}
	entry.EntityType = auditEntityJob
	entry.EntityID = id
	s.audit.Record(ctx, entry)
	s.logger.DebugContext(ctx, "job mutated", "id", id, "action", entry.Action)
}

func (s *JobService) observe(ctx context.Context, action string, start time.Time, err error) {
	result := metrics.ResultSuccess
	if ex, ok := credit.AsExhausted(err); ok {
		result = metrics.ResultRejected
		metrics.EmitCreditExhausted(s.metrics, ex.Expired)
		s.logger.InfoContext(ctx, "job creation refused by ledger",
			"balance", ex.Balance,
			"expired", ex.Expired,
		)
	} else if err != nil {
		result = metrics.ResultError
	}

	metrics.EmitJobMutation(s.metrics, metrics.JobMutationMetric{
		Action:   action,
		Result:   result,
		Duration: time.Since(start),
		Err:      err,
	})
}
