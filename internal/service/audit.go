// Package service holds the orchestration layer between the HTTP handlers and the repositories.
package service

import (
	"context"
	"log/slog"

	"github.com/target/jobmarket-api/internal/core"
	"github.com/target/jobmarket-api/internal/domain/model"
)

type actorKey struct{}

// WithActor returns a context carrying the id of the staff member performing the request.
func WithActor(ctx context.Context, actorID string) context.Context {
	if actorID == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFromContext returns the actor id set by WithActor, or "" when none is present.
func ActorFromContext(ctx context.Context) string {
	id, _ := ctx.Value(actorKey{}).(string)
	return id
}

// AuditServiceOptions groups dependencies for AuditService.
type AuditServiceOptions struct {
	Repo   core.AuditRepository // Optional: nil disables recording
	Logger *slog.Logger         // Optional: structured logger
}

// AuditService records committed mutations. Recording never fails the caller.
type AuditService struct {
	repo   core.AuditRepository
	logger *slog.Logger
}

// NewAuditService constructs a new AuditService.
func NewAuditService(opts AuditServiceOptions) *AuditService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditService{repo: opts.Repo, logger: logger.With("component", "audit_service")}
}

// Record stores entry after the mutation it describes has committed.
// The actor is taken from ctx when entry does not name one. Failures are logged and dropped.
func (s *AuditService) Record(ctx context.Context, entry model.AuditEntry) {
	if s == nil || s.repo == nil {
		return
	}
	if entry.ActorID == "" {
		entry.ActorID = ActorFromContext(ctx)
	}
	if _, err := s.repo.Create(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "audit record failed",
			"action", entry.Action,
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"error", err,
		)
	}
}

// ListByEntity returns the most recent audit records for an entity.
func (s *AuditService) ListByEntity(
	ctx context.Context,
	entityType, entityID string,
	limit int,
) ([]*model.AuditLog, error) {
	if s == nil || s.repo == nil {
		return []*model.AuditLog{}, nil
	}
	return s.repo.ListByEntity(ctx, entityType, entityID, limit)
}
