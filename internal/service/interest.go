package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/target/jobmarket-api/internal/core"
	"github.com/target/jobmarket-api/internal/domain/interest"
	"github.com/target/jobmarket-api/internal/domain/model"
)

// InterestRepositories groups the read ports used by InterestService.
type InterestRepositories struct {
	Interests core.InterestRepository
	Jobs      core.JobRepository
	Employers core.EmployerRepository
	Employees core.EmployeeRepository
}

// InterestServiceOptions groups dependencies for InterestService.
type InterestServiceOptions struct {
	Repos  InterestRepositories // Required: all four repositories
	Logger *slog.Logger         // Optional: structured logger
}

// InterestService assembles decorated, bucketed views of interest records. It never writes.
type InterestService struct {
	interests core.InterestRepository
	jobs      core.JobRepository
	employers core.EmployerRepository
	employees core.EmployeeRepository
	logger    *slog.Logger
}

// NewInterestService constructs a new InterestService.
func NewInterestService(opts InterestServiceOptions) (*InterestService, error) {
	r := opts.Repos
	if r.Interests == nil || r.Jobs == nil || r.Employers == nil || r.Employees == nil {
		return nil, errors.New("interest, job, employer and employee repositories are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &InterestService{
		interests: r.Interests,
		jobs:      r.Jobs,
		employers: r.Employers,
		employees: r.Employees,
		logger:    logger.With("component", "interest_service"),
	}, nil
}

// MustNewInterestService constructs a new InterestService and panics on error.
func MustNewInterestService(opts InterestServiceOptions) *InterestService {
	svc, err := NewInterestService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create InterestService: %v", err))
	}
	return svc
}

// JobApplicants returns every interest about a job, seen from the job's employer.
func (s *InterestService) JobApplicants(ctx context.Context, jobID string) (model.InterestBuckets, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return model.InterestBuckets{}, err
	}
	rows, err := s.interests.ListByJob(ctx, jobID)
	if err != nil {
		return model.InterestBuckets{}, fmt.Errorf("list interests by job: %w", err)
	}
	return s.bucketed(ctx, rows, interest.EmployerParty{ID: job.EmployerID})
}

// EmployerApplicants returns every interest an employer sent or received.
func (s *InterestService) EmployerApplicants(ctx context.Context, employerID string) (model.InterestBuckets, error) {
	if _, err := s.employers.GetByID(ctx, employerID); err != nil {
		return model.InterestBuckets{}, err
	}
	rows, err := s.interests.ListByParty(ctx, model.SenderEmployer, employerID)
	if err != nil {
		return model.InterestBuckets{}, fmt.Errorf("list interests by employer: %w", err)
	}
	return s.bucketed(ctx, rows, interest.EmployerParty{ID: employerID})
}

// EmployeeApplications returns every interest an employee sent or received.
func (s *InterestService) EmployeeApplications(ctx context.Context, employeeID string) (model.InterestBuckets, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return model.InterestBuckets{}, err
	}
	rows, err := s.interests.ListByParty(ctx, model.SenderEmployee, employeeID)
	if err != nil {
		return model.InterestBuckets{}, fmt.Errorf("list interests by employee: %w", err)
	}
	return s.bucketed(ctx, rows, interest.EmployeeParty{ID: employeeID})
}

// EmployeeHiredJobs returns the interests of an employee that ended in a hire.
func (s *InterestService) EmployeeHiredJobs(ctx context.Context, employeeID string) ([]model.InterestView, error) {
	buckets, err := s.EmployeeApplications(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return buckets.Hired, nil
}

func (s *InterestService) bucketed(
	ctx context.Context,
	rows []*model.JobInterest,
	perspective interest.Party,
) (model.InterestBuckets, error) {
	views, err := s.decorate(ctx, rows, perspective)
	if err != nil {
		return model.InterestBuckets{}, err
	}
	return interest.Bucket(views), nil
}

type resolvedRow struct {
	row     *model.JobInterest
	pairing interest.Pairing
}

// decorate resolves each row's parties and attaches display fields from bulk lookups.
// Rows with an unknown sender type are skipped.
func (s *InterestService) decorate(
	ctx context.Context,
	rows []*model.JobInterest,
	perspective interest.Party,
) ([]model.InterestView, error) {
	resolved := make([]resolvedRow, 0, len(rows))
	jobIDs := newIDSet()
	employerIDs := newIDSet()
	employeeIDs := newIDSet()
	for _, row := range rows {
		p, err := interest.Resolve(*row)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping unresolvable interest", "id", row.ID, "error", err)
			continue
		}
		resolved = append(resolved, resolvedRow{row: row, pairing: p})
		jobIDs.add(row.JobID)
		employerIDs.add(p.EmployerID)
		employeeIDs.add(p.EmployeeID)
	}
	if len(resolved) == 0 {
		return []model.InterestView{}, nil
	}

	var (
		jobs      []*model.Job
		employers []*model.Employer
		employees []*model.Employee
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = s.jobs.GetByIDs(gctx, jobIDs.list())
		return err
	})
	g.Go(func() error {
		var err error
		employers, err = s.employers.GetByIDs(gctx, employerIDs.list())
		return err
	})
	g.Go(func() error {
		var err error
		employees, err = s.employees.GetByIDs(gctx, employeeIDs.list())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load interest parties: %w", err)
	}

	jobByID := indexBy(jobs, func(j *model.Job) string { return j.ID })
	employerByID := indexBy(employers, func(e *model.Employer) string { return e.ID })
	employeeByID := indexBy(employees, func(e *model.Employee) string { return e.ID })

	views := make([]model.InterestView, 0, len(resolved))
	for _, r := range resolved {
		v := model.InterestView{
			ID:         r.row.ID,
			JobID:      r.row.JobID,
			Status:     r.row.Status,
			SenderType: r.row.SenderType,
			Direction:  r.pairing.DirectionFor(perspective),
			EmployeeID: r.pairing.EmployeeID,
			EmployerID: r.pairing.EmployerID,
			CreatedAt:  r.row.CreatedAt,
		}
		if job, ok := jobByID[r.row.JobID]; ok {
			v.Description = job.DescriptionEN
			v.Address = job.AddressEN
			v.SalaryMin = job.SalaryMin
			v.SalaryMax = job.SalaryMax
			v.VacancyLeft = job.VacancyLeft()
			v.JobStatus = job.Status
			v.OwnerMismatch = job.EmployerID != r.pairing.EmployerID
		}
		if employer, ok := employerByID[r.pairing.EmployerID]; ok {
			v.EmployerName = employer.Name
			v.Organization = employer.Organization
		}
		if employee, ok := employeeByID[r.pairing.EmployeeID]; ok {
			v.EmployeeName = employee.Name
		}
		views = append(views, v)
	}
	return views, nil
}

// idSet collects unique ids in first-seen order.
type idSet struct {
	seen  map[string]struct{}
	order []string
}

func newIDSet() *idSet {
	return &idSet{seen: map[string]struct{}{}}
}

func (s *idSet) add(id string) {
	if id == "" {
		return
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *idSet) list() []string {
	return s.order
}

func indexBy[T any](items []*T, key func(*T) string) map[string]*T {
	out := make(map[string]*T, len(items))
	for _, it := range items {
		if it != nil {
			out[key(it)] = it
		}
	}
	return out
}
