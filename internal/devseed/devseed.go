// Package devseed loads a small, idempotent development dataset: employers with and without
// live credit, a pool of candidates, and a couple of posted jobs with interest records.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/target/jobmarket-api/internal/data"
	"github.com/target/jobmarket-api/internal/domain/model"
	"github.com/target/jobmarket-api/internal/service"
)

// Actor is recorded on audit rows written while seeding.
const Actor = "devseed"

// Fixed identifiers keep reseeding idempotent.
const (
	FundedEmployerID  = "6f1c2f1e-3b7a-4d0e-9a51-2f0b8c1d4e01"
	ExpiredEmployerID = "6f1c2f1e-3b7a-4d0e-9a51-2f0b8c1d4e02"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB        *sql.DB
	jobs      *service.JobService
	employers *service.EmployerService
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB, logger *slog.Logger) Services {
	audit := service.NewAuditService(service.AuditServiceOptions{Repo: data.NewAuditRepo(db), Logger: logger})
	return Services{
		DB: db,
		jobs: service.MustNewJobService(service.JobServiceOptions{
			Repo:   data.NewJobRepo(db),
			Audit:  audit,
			Logger: logger,
		}),
		employers: service.MustNewEmployerService(service.EmployerServiceOptions{
			Repo:   data.NewEmployerRepo(db),
			Audit:  audit,
			Logger: logger,
		}),
	}
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	ctx = service.WithActor(ctx, Actor)

	if err := seedEmployers(ctx, svcs.DB, logger); err != nil {
		return err
	}
	if err := seedEmployees(ctx, svcs.DB, logger); err != nil {
		return err
	}

	jobID, err := seedJobs(ctx, svcs, logger)
	if err != nil {
		return err
	}
	if err := seedInterests(ctx, svcs.DB, jobID, logger); err != nil {
		return err
	}

	logger.InfoContext(ctx, "development seed completed")
	return nil
}

type employerSeed struct {
	ID           string
	Name         string
	Organization string
	Credit       int
	// ExpiresIn is added to the seeding time; negative values seed an expired ledger.
	ExpiresIn time.Duration
}

func defaultEmployers() []employerSeed {
	return []employerSeed{
		{ID: FundedEmployerID, Name: "Ravi Menon", Organization: "Spice Kitchen", Credit: 5, ExpiresIn: 30 * 24 * time.Hour},
		{ID: ExpiredEmployerID, Name: "Anita Rao", Organization: "Rao Logistics", Credit: 3, ExpiresIn: -24 * time.Hour},
	}
}

func seedEmployers(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	const q = `
		INSERT INTO employers (id, name, organization, ad_credit, total_ad_credit, credit_expiry_at)
		VALUES ($1, $2, $3, $4, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	now := time.Now().UTC()
	for _, e := range defaultEmployers() {
		res, err := db.ExecContext(ctx, q, e.ID, e.Name, e.Organization, e.Credit, now.Add(e.ExpiresIn))
		if err != nil {
			return fmt.Errorf("seed employer %s: %w", e.Name, err)
		}
		logInserted(ctx, logger, res, "employer", e.Name)
	}
	return nil
}

type employeeSeed struct {
	ID              string
	Name            string
	Gender          string
	StateID         int64
	CityID          int64
	QualificationID int64
	ExpectedSalary  int64
	JobProfiles     []int64
	Active          bool
}

func defaultEmployees() []employeeSeed {
	return []employeeSeed{
		{
			ID: "0b9a7c52-1e1f-4c43-8f0e-6d4a2b3c5e01", Name: "Usha Devi", Gender: "female",
			StateID: 1, CityID: 10, QualificationID: 2, ExpectedSalary: 15000, JobProfiles: []int64{3}, Active: true,
		},
		{
			ID: "0b9a7c52-1e1f-4c43-8f0e-6d4a2b3c5e02", Name: "Manoj Kumar", Gender: "male",
			StateID: 1, CityID: 10, QualificationID: 3, ExpectedSalary: 18000, JobProfiles: []int64{3, 4}, Active: true,
		},
		{
			ID: "0b9a7c52-1e1f-4c43-8f0e-6d4a2b3c5e03", Name: "Lakshmi S", Gender: "female",
			StateID: 2, CityID: 20, QualificationID: 2, ExpectedSalary: 12000, JobProfiles: []int64{5}, Active: true,
		},
		{
			ID: "0b9a7c52-1e1f-4c43-8f0e-6d4a2b3c5e04", Name: "Imran Shaikh", Gender: "male",
			StateID: 1, CityID: 10, QualificationID: 2, ExpectedSalary: 16000, JobProfiles: []int64{3}, Active: false,
		},
	}
}

func seedEmployees(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	const insertEmployee = `
		INSERT INTO employees (id, name, gender, preferred_state_id, preferred_city_id,
			qualification_id, expected_salary, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	const insertProfile = `
		INSERT INTO employee_job_profiles (employee_id, job_profile_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	for _, e := range defaultEmployees() {
		res, err := db.ExecContext(ctx, insertEmployee,
			e.ID, e.Name, e.Gender, e.StateID, e.CityID, e.QualificationID, e.ExpectedSalary, e.Active)
		if err != nil {
			return fmt.Errorf("seed employee %s: %w", e.Name, err)
		}
		logInserted(ctx, logger, res, "employee", e.Name)

		for _, profile := range e.JobProfiles {
			if _, err := db.ExecContext(ctx, insertProfile, e.ID, profile); err != nil {
				return fmt.Errorf("seed job profile %d for %s: %w", profile, e.Name, err)
			}
		}
	}
	return nil
}

func defaultJobs() []*model.CreateJobRequest {
	return []*model.CreateJobRequest{
		{
			EmployerID: FundedEmployerID,
			JobFields: model.JobFields{
				JobProfileID:     int64Ptr(3),
				DescriptionEN:    "Line cook for a busy South Indian kitchen",
				AddressEN:        "12 MG Road",
				NoVacancy:        2,
				InterviewerName:  "Ravi Menon",
				InterviewerPhone: "9800000001",
				StateID:          int64Ptr(1),
				CityID:           int64Ptr(10),
				SalaryMin:        int64Ptr(14000),
				SalaryMax:        int64Ptr(20000),
			},
			JobChildren: model.JobChildren{
				Skills:         []int64{1, 2},
				Qualifications: []int64{2, 3},
				Shifts:         []int64{1},
				Genders:        []string{"any"},
				WorkingDays:    []int64{1, 2, 3, 4, 5, 6},
			},
		},
		{
			EmployerID: FundedEmployerID,
			JobFields: model.JobFields{
				JobProfileID:     int64Ptr(5),
				IsHousehold:      true,
				DescriptionEN:    "Part-time housekeeping",
				NoVacancy:        1,
				InterviewerName:  "Ravi Menon",
				InterviewerPhone: "9800000001",
				StateID:          int64Ptr(2),
			},
			JobChildren: model.JobChildren{
				Genders: []string{"female"},
			},
		},
	}
}

// seedJobs posts the default jobs through the credit gate when the funded employer has none,
// approves and activates the first, and returns its id for interest seeding.
func seedJobs(ctx context.Context, svcs Services, logger *slog.Logger) (string, error) {
	employerID := FundedEmployerID
	existing, err := svcs.jobs.List(ctx, &model.JobListOptions{EmployerID: &employerID, Limit: 1})
	if err != nil {
		return "", fmt.Errorf("list seeded jobs: %w", err)
	}
	if len(existing) > 0 {
		logger.InfoContext(ctx, "jobs already seeded", "employer_id", employerID)
		return existing[0].ID, nil
	}

	var first string
	for _, req := range defaultJobs() {
		job, createErr := svcs.jobs.Create(ctx, req)
		if createErr != nil {
			return "", fmt.Errorf("seed job %q: %w", req.DescriptionEN, createErr)
		}
		logger.InfoContext(ctx, "created job", "id", job.ID, "description", job.DescriptionEN)
		if first == "" {
			first = job.ID
		}
	}

	if _, err := svcs.jobs.ChangeVerification(ctx, first, model.VerificationApproved); err != nil {
		return "", fmt.Errorf("approve seeded job: %w", err)
	}
	if _, err := svcs.jobs.ChangeStatus(ctx, first, model.JobStatusActive); err != nil {
		return "", fmt.Errorf("activate seeded job: %w", err)
	}

	// The expired ledger must refuse a post; anything else means the gate is misconfigured.
	_, err = svcs.jobs.Create(ctx, &model.CreateJobRequest{
		EmployerID: ExpiredEmployerID,
		JobFields:  model.JobFields{NoVacancy: 1, DescriptionEN: "should be refused"},
	})
	if err == nil {
		return "", errors.New("expired employer was allowed to post a job")
	}
	logger.InfoContext(ctx, "expired employer refused as expected", "error", err)

	if info, infoErr := svcs.employers.CreditInfo(ctx, employerID); infoErr == nil {
		logger.InfoContext(ctx, "funded employer credit", "ad_credit", info.AdCredit, "expired", info.IsExpired)
	}

	return first, nil
}

type interestSeed struct {
	ID         string
	SenderType model.SenderType
	SenderID   string
	ReceiverID string
	Status     model.InterestStatus
}

func defaultInterests() []interestSeed {
	employees := defaultEmployees()
	return []interestSeed{
		{
			ID: "3c5d7e9f-0a1b-4c2d-8e3f-4a5b6c7d8e01", SenderType: model.SenderEmployee,
			SenderID: employees[0].ID, ReceiverID: FundedEmployerID, Status: model.InterestPending,
		},
		{
			ID: "3c5d7e9f-0a1b-4c2d-8e3f-4a5b6c7d8e02", SenderType: model.SenderEmployer,
			SenderID: FundedEmployerID, ReceiverID: employees[1].ID, Status: model.InterestHired,
		},
		{
			ID: "3c5d7e9f-0a1b-4c2d-8e3f-4a5b6c7d8e03", SenderType: model.SenderEmployee,
			SenderID: employees[2].ID, ReceiverID: FundedEmployerID, Status: model.InterestShortlisted,
		},
	}
}

func seedInterests(ctx context.Context, db *sql.DB, jobID string, logger *slog.Logger) error {
	const q = `
		INSERT INTO job_interests (id, sender_type, sender_id, receiver_id, job_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	hired := 0
	for _, in := range defaultInterests() {
		res, err := db.ExecContext(ctx, q, in.ID, string(in.SenderType), in.SenderID, in.ReceiverID, jobID, string(in.Status))
		if err != nil {
			return fmt.Errorf("seed interest %s: %w", in.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 && in.Status == model.InterestHired {
			hired++
		}
		logInserted(ctx, logger, res, "interest", in.ID)
	}

	if hired > 0 {
		if _, err := db.ExecContext(ctx,
			`UPDATE jobs SET hired_total = hired_total + $2 WHERE id = $1`, jobID, hired); err != nil {
			return fmt.Errorf("record seeded hires: %w", err)
		}
	}
	return nil
}

func logInserted(ctx context.Context, logger *slog.Logger, res sql.Result, kind, name string) {
	n, err := res.RowsAffected()
	switch {
	case err != nil:
		logger.WarnContext(ctx, "seeded "+kind+": rows affected unknown", "name", name, "error", err)
	case n > 0:
		logger.InfoContext(ctx, "created "+kind, "name", name)
	default:
		logger.DebugContext(ctx, kind+" already exists", "name", name)
	}
}

func int64Ptr(v int64) *int64 { return &v }
