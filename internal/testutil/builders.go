// Package testutil provides testing utilities and helpers for the job marketplace service.
package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/target/jobmarket-api/internal/domain/model"
)

// JobRequestBuilder provides a fluent interface for building CreateJobRequest objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a new JobRequestBuilder with sensible defaults for employerID.
func NewJobRequest(employerID string) *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.CreateJobRequest{
			EmployerID: employerID,
			JobFields: model.JobFields{
				DescriptionEN:    "Warehouse associate",
				AddressEN:        "12 Market Road",
				NoVacancy:        2,
				InterviewerName:  "Asha",
				InterviewerPhone: "9000000000",
			},
		},
	}
}

// WithLocation sets the state and city of the job.
func (b *JobRequestBuilder) WithLocation(stateID, cityID int64) *JobRequestBuilder {
	b.req.StateID = &stateID
	b.req.CityID = &cityID
	return b
}

// WithSalary sets the salary range. Pass nil for an open bound.
func (b *JobRequestBuilder) WithSalary(minSalary, maxSalary *int64) *JobRequestBuilder {
	b.req.SalaryMin = minSalary
	b.req.SalaryMax = maxSalary
	return b
}

// WithJobProfile sets the job profile.
func (b *JobRequestBuilder) WithJobProfile(id int64) *JobRequestBuilder {
	b.req.JobProfileID = &id
	return b
}

// WithVacancies sets the number of openings.
func (b *JobRequestBuilder) WithVacancies(n int) *JobRequestBuilder {
	b.req.NoVacancy = n
	return b
}

// WithChildren replaces every child collection.
func (b *JobRequestBuilder) WithChildren(c model.JobChildren) *JobRequestBuilder {
	b.req.JobChildren = c
	return b
}

// WithGenders sets the accepted genders.
func (b *JobRequestBuilder) WithGenders(genders ...string) *JobRequestBuilder {
	b.req.Genders = genders
	return b
}

// WithSkills sets the required skills.
func (b *JobRequestBuilder) WithSkills(ids ...int64) *JobRequestBuilder {
	b.req.Skills = ids
	return b
}

// WithQualifications sets the accepted qualifications.
func (b *JobRequestBuilder) WithQualifications(ids ...int64) *JobRequestBuilder {
	b.req.Qualifications = ids
	return b
}

// Build returns the constructed CreateJobRequest.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	return b.req
}

// EmployerSeed describes an employer row inserted directly for tests.
type EmployerSeed struct {
	Name         string
	Organization string
	AdCredit     int
	ExpiresAt    *time.Time
}

// InsertEmployer writes an employer row and returns its ID.
func InsertEmployer(t TestingTB, db *sql.DB, seed EmployerSeed) string {
	t.Helper()
	if seed.Name == "" {
		seed.Name = "Test Employer"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id string
	err := db.QueryRowContext(ctx, `
		INSERT INTO employers (name, organization, ad_credit, total_ad_credit, credit_expiry_at)
		VALUES ($1, $2, $3, $3, $4)
		RETURNING id`,
		seed.Name, seed.Organization, seed.AdCredit, seed.ExpiresAt,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to insert employer: %v", err)
	}
	return id
}

// EmployerBalance reads the current ad credit of an employer.
func EmployerBalance(t TestingTB, db *sql.DB, id string) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var balance int
	if err := db.QueryRowContext(ctx, `SELECT ad_credit FROM employers WHERE id = $1`, id).Scan(&balance); err != nil {
		t.Fatalf("Failed to read employer balance: %v", err)
	}
	return balance
}

// CountRows returns the number of rows in table matching the job_id column. Table must be a fixed name.
func CountRows(t TestingTB, db *sql.DB, table, jobID string) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var n int
	if err := db.QueryRowContext(ctx, "SELECT count(*) FROM "+table+" WHERE job_id = $1", jobID).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return n
}

// EmployeeSeed describes an employee row inserted directly for tests.
type EmployeeSeed struct {
	Name            string
	Gender          string
	StateID         *int64
	CityID          *int64
	QualificationID *int64
	ExpectedSalary  *int64
	Inactive        bool
	JobProfileIDs   []int64
	CreatedAt       time.Time
}

// InsertEmployee writes an employee row with its job profiles and returns its ID.
func InsertEmployee(t TestingTB, db *sql.DB, seed EmployeeSeed) string {
	t.Helper()
	if seed.Name == "" {
		seed.Name = "Test Employee"
	}
	if seed.Gender == "" {
		seed.Gender = "other"
	}
	if seed.CreatedAt.IsZero() {
		seed.CreatedAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id string
	err := db.QueryRowContext(ctx, `
		INSERT INTO employees (
			name, gender, preferred_state_id, preferred_city_id, qualification_id,
			expected_salary, is_active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		seed.Name, seed.Gender, seed.StateID, seed.CityID, seed.QualificationID,
		seed.ExpectedSalary, !seed.Inactive, seed.CreatedAt,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to insert employee: %v", err)
	}

	for _, profile := range seed.JobProfileIDs {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO employee_job_profiles (employee_id, job_profile_id) VALUES ($1, $2)`,
			id, profile); err != nil {
			t.Fatalf("Failed to insert employee job profile: %v", err)
		}
	}
	return id
}

// InterestSeed describes a job_interests row inserted directly for tests.
type InterestSeed struct {
	SenderType model.SenderType
	SenderID   string
	ReceiverID string
	JobID      string
	Status     model.InterestStatus
	CreatedAt  time.Time
}

// InsertInterest writes an interest row and returns its ID.
func InsertInterest(t TestingTB, db *sql.DB, seed InterestSeed) string {
	t.Helper()
	if seed.Status == "" {
		seed.Status = model.InterestPending
	}
	if seed.CreatedAt.IsZero() {
		seed.CreatedAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id string
	err := db.QueryRowContext(ctx, `
		INSERT INTO job_interests (sender_type, sender_id, receiver_id, job_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		string(seed.SenderType), seed.SenderID, seed.ReceiverID, seed.JobID, string(seed.Status), seed.CreatedAt,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to insert interest: %v", err)
	}
	return id
}

// Int64Ptr returns a pointer to the given int64 value.
func Int64Ptr(i int64) *int64 {
	return &i
}
