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
)

// EmployerServiceOptions groups dependencies for EmployerService.
type EmployerServiceOptions struct {
	Repo   core.EmployerRepository // Required: employer store
	Audit  *AuditService           // Optional: audit trail
	Logger *slog.Logger            // Optional: structured logger
}

// EmployerService exposes the ad-credit ledger outside the job-posting path.
type EmployerService struct {
	repo   core.EmployerRepository
	audit  *AuditService
	logger *slog.Logger
	now    func() time.Time
}

// NewEmployerService constructs a new EmployerService.
func NewEmployerService(opts EmployerServiceOptions) (*EmployerService, error) {
	if opts.Repo == nil {
		return nil, errors.New("EmployerRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployerService{
		repo:   opts.Repo,
		audit:  opts.Audit,
		logger: logger.With("component", "employer_service"),
		now:    time.Now,
	}, nil
}

// MustNewEmployerService constructs a new EmployerService and panics on error.
func MustNewEmployerService(opts EmployerServiceOptions) *EmployerService {
	svc, err := NewEmployerService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create EmployerService: %v", err))
	}
	return svc
}

// CreditInfo returns the current ledger state of an employer.
func (s *EmployerService) CreditInfo(ctx context.Context, employerID string) (*model.CreditInfo, error) {
	employer, err := s.repo.GetByID(ctx, employerID)
	if err != nil {
		return nil, err
	}
	return &model.CreditInfo{
		EmployerID:     employer.ID,
		AdCredit:       employer.AdCredit,
		TotalAdCredit:  employer.TotalAdCredit,
		CreditExpiryAt: employer.CreditExpiryAt,
		IsExpired:      credit.Expired(employer.CreditExpiryAt, s.now()),
	}, nil
}

// GrantCredits tops up an employer's balance and optionally moves its expiry.
func (s *EmployerService) GrantCredits(ctx context.Context, req model.GrantCreditsRequest) (*model.Employer, error) {
	employer, err := s.repo.GrantCredits(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("grant credits: %w", err)
	}

	s.audit.Record(ctx, model.AuditEntry{
		Action:     model.AuditCreditsGranted,
		EntityType: "employer",
		EntityID:   employer.ID,
		Payload: map[string]any{
			"amount":           req.Amount,
			"ad_credit":        employer.AdCredit,
			"credit_expiry_at": employer.CreditExpiryAt,
		},
	})
	s.logger.InfoContext(ctx, "ad credits granted",
		"employer_id", employer.ID,
		"amount", req.Amount,
		"ad_credit", employer.AdCredit,
	)
	return employer, nil
}
