package core

import (
	"context"

	"github.com/target/jobmarket-api/internal/domain/matching"
	"github.com/target/jobmarket-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Services depend on these interfaces; the data layer provides the implementations.

// JobRepository defines the job aggregate store. Every write runs in a single transaction.
type JobRepository interface {
	// Create reserves one ad credit from the owning employer and inserts the job with its
	// child sets. Nothing persists when any step fails.
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.JobWithChildren, error)
	// Update overwrites the scalar fields and replaces every child set.
	Update(ctx context.Context, id string, req *model.UpdateJobRequest) (*model.JobWithChildren, error)
	// Delete removes the child sets and tombstones the job.
	Delete(ctx context.Context, id string) error
	// ChangeStatus applies a guarded operational status change.
	ChangeStatus(ctx context.Context, id string, status model.JobStatus) (*model.JobWithChildren, error)
	// ChangeVerification sets the verification status without touching status or expired_at.
	ChangeVerification(
		ctx context.Context,
		id string,
		status model.VerificationStatus,
	) (*model.JobWithChildren, error)
	GetByID(ctx context.Context, id string) (*model.JobWithChildren, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Job, error)
	List(ctx context.Context, opts *model.JobListOptions) ([]*model.Job, error)
}

// EmployerRepository defines employer reads and the out-of-band credit top-up.
type EmployerRepository interface {
	GetByID(ctx context.Context, id string) (*model.Employer, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Employer, error)
	GrantCredits(ctx context.Context, req model.GrantCreditsRequest) (*model.Employer, error)
}

// EmployeeRepository defines read access to job seekers.
type EmployeeRepository interface {
	// FindCandidates returns active employees matching c, newest first, capped at c.Limit.
	FindCandidates(ctx context.Context, c matching.Criteria) ([]*model.Employee, error)
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Employee, error)
}

// InterestRepository defines read access to interest records.
type InterestRepository interface {
	ListByJob(ctx context.Context, jobID string) ([]*model.JobInterest, error)
	// ListByParty returns rows where the party with the given role is either sender or receiver.
	ListByParty(ctx context.Context, role model.SenderType, id string) ([]*model.JobInterest, error)
}

// AuditRepository persists audit records.
type AuditRepository interface {
	Create(ctx context.Context, entry model.AuditEntry) (*model.AuditLog, error)
	ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]*model.AuditLog, error)
}
