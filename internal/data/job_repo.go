package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/target/jobmarket-api/internal/data/database"
	"github.com/target/jobmarket-api/internal/data/pgxutil"
	"github.com/target/jobmarket-api/internal/domain/credit"
	"github.com/target/jobmarket-api/internal/domain/job"
	"github.com/target/jobmarket-api/internal/domain/model"
	apperrors "github.com/target/jobmarket-api/internal/errors"
)

var jobColumnList = []string{
	"id", "employer_id", "job_profile_id", "is_household",
	"description_en", "description_local", "address_en", "address_local",
	"no_vacancy", "hired_total", "interviewer_name", "interviewer_phone", "interviewer_otp",
	"state_id", "city_id", "salary_min", "salary_max", "work_start_time", "work_end_time",
	"status", "verification_status", "expired_at", "created_at", "updated_at", "deleted_at",
}

var jobColumns = strings.Join(jobColumnList, ", ")

const (
	defaultJobListLimit = 50
	maxJobListLimit     = 500
)

// JobRepo is the job aggregate store: the job header plus its seven child collections.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo with real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewJobRepoWithTimeProvider creates a new JobRepo with a custom time provider (useful for tests).
func NewJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobRepo {
	return &JobRepo{DB: db, timeProvider: tp}
}

// Create reserves an ad credit and inserts the job with its child sets in one transaction.
// The job always starts inactive and pending verification.
func (r *JobRepo) Create(ctx context.Context, req *model.CreateJobRequest) (*model.JobWithChildren, error) {
	if req == nil {
		return nil, apperrors.Validation("create job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out *model.JobWithChildren
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		if err := reserveAdCredit(ctx, tx, req.EmployerID, now); err != nil {
			return err
		}

		header, err := insertJobHeader(ctx, tx, req, now)
		if err != nil {
			return err
		}
		if err := insertJobChildren(ctx, tx, header.ID, &req.JobChildren); err != nil {
			return err
		}

		children, err := loadJobChildren(ctx, tx, header.ID)
		if err != nil {
			return err
		}
		out = model.NewJobWithChildren(header, children)
		return nil
	}})
	if err != nil {
		return nil, mapJobWriteErr("create job", err)
	}
	return out, nil
}

func insertJobHeader(ctx context.Context, tx pgx.Tx, req *model.CreateJobRequest, now time.Time) (model.Job, error) {
	f := req.JobFields
	rows, err := tx.Query(ctx, `
		INSERT INTO jobs (
			employer_id, job_profile_id, is_household, description_en, description_local,
			address_en, address_local, no_vacancy, interviewer_name, interviewer_phone,
			interviewer_otp, state_id, city_id, salary_min, salary_max, work_start_time,
			work_end_time, status, verification_status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $20
		) RETURNING `+jobColumns,
		req.EmployerID, f.JobProfileID, f.IsHousehold, f.DescriptionEN, f.DescriptionLocal,
		f.AddressEN, f.AddressLocal, f.NoVacancy, f.InterviewerName, f.InterviewerPhone,
		f.InterviewerOTP, f.StateID, f.CityID, f.SalaryMin, f.SalaryMax, f.WorkStartTime,
		f.WorkEndTime, job.InitialStatus, job.InitialVerification, now,
	)
	if err != nil {
		return model.Job{}, fmt.Errorf("insert job: %w", err)
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
}

// Update overwrites the scalar fields and fully replaces each child set.
func (r *JobRepo) Update(
	ctx context.Context,
	id string,
	req *model.UpdateJobRequest,
) (*model.JobWithChildren, error) {
	if req == nil {
		return nil, apperrors.Validation("update job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out *model.JobWithChildren
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		if err := lockLiveJob(ctx, tx, id); err != nil {
			return err
		}

		f := req.JobFields
		rows, err := tx.Query(ctx, `
			UPDATE jobs SET
				job_profile_id = $2, is_household = $3, description_en = $4, description_local = $5,
				address_en = $6, address_local = $7, no_vacancy = $8, interviewer_name = $9,
				interviewer_phone = $10, interviewer_otp = $11, state_id = $12, city_id = $13,
				salary_min = $14, salary_max = $15, work_start_time = $16, work_end_time = $17,
				updated_at = $18
			WHERE id = $1
			RETURNING `+jobColumns,
			id, f.JobProfileID, f.IsHousehold, f.DescriptionEN, f.DescriptionLocal,
			f.AddressEN, f.AddressLocal, f.NoVacancy, f.InterviewerName,
			f.InterviewerPhone, f.InterviewerOTP, f.StateID, f.CityID,
			f.SalaryMin, f.SalaryMax, f.WorkStartTime, f.WorkEndTime, now,
		)
		if err != nil {
			return fmt.Errorf("update job: %w", err)
		}
		header, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		if err != nil {
			return err
		}

		if err := replaceJobChildren(ctx, tx, id, &req.JobChildren); err != nil {
			return err
		}
		children, err := loadJobChildren(ctx, tx, id)
		if err != nil {
			return err
		}
		out = model.NewJobWithChildren(header, children)
		return nil
	}})
	if err != nil {
		return nil, mapJobWriteErr("update job", err)
	}
	return out, nil
}

// Delete removes all child rows and tombstones the job in one transaction.
// Deleting a job that is missing or already tombstoned returns a NotFound error.
func (r *JobRepo) Delete(ctx context.Context, id string) error {
	now := r.timeProvider.Now().UTC()
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		if err := lockLiveJob(ctx, tx, id); err != nil {
			return err
		}
		if err := deleteJobChildren(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE jobs SET deleted_at = $2, updated_at = $2 WHERE id = $1`, id, now); err != nil {
			return fmt.Errorf("tombstone job: %w", err)
		}
		return nil
	}})
	if err != nil {
		return mapJobWriteErr("delete job", err)
	}
	return nil
}

// ChangeStatus applies a status change to an approved job.
// expired stamps expired_at; active and inactive clear it.
func (r *JobRepo) ChangeStatus(
	ctx context.Context,
	id string,
	status model.JobStatus,
) (*model.JobWithChildren, error) {
	if !status.Valid() {
		return nil, apperrors.ValidationField("status", "status must be one of inactive, active, expired")
	}

	now := r.timeProvider.Now().UTC()
	var out *model.JobWithChildren
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		var verification model.VerificationStatus
		err := tx.QueryRow(ctx,
			`SELECT verification_status FROM jobs WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`,
			id).Scan(&verification)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NotFoundf("job %s not found", id)
			}
			return fmt.Errorf("lock job: %w", err)
		}

		change, err := job.PlanStatusChange(verification, status, now)
		if err != nil {
			if errors.Is(err, job.ErrNotVerified) {
				return apperrors.Forbidden(err, "job must be approved before its status can change")
			}
			return apperrors.Validation(err.Error())
		}

		rows, err := tx.Query(ctx, `
			UPDATE jobs SET status = $2, expired_at = $3, updated_at = $4
			WHERE id = $1
			RETURNING `+jobColumns,
			id, change.Status, change.ExpiredAt, now)
		if err != nil {
			return fmt.Errorf("update job status: %w", err)
		}
		header, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		if err != nil {
			return err
		}
		children, err := loadJobChildren(ctx, tx, id)
		if err != nil {
			return err
		}
		out = model.NewJobWithChildren(header, children)
		return nil
	}})
	if err != nil {
		return nil, mapJobWriteErr("change job status", err)
	}
	return out, nil
}

// ChangeVerification sets the verification status. Operational status and expired_at are untouched.
func (r *JobRepo) ChangeVerification(
	ctx context.Context,
	id string,
	status model.VerificationStatus,
) (*model.JobWithChildren, error) {
	if !status.Valid() {
		return nil, apperrors.ValidationField(
			"verification_status",
			"verification_status must be one of pending, approved, rejected",
		)
	}

	now := r.timeProvider.Now().UTC()
	var out *model.JobWithChildren
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			UPDATE jobs SET verification_status = $2, updated_at = $3
			WHERE id = $1 AND deleted_at IS NULL
			RETURNING `+jobColumns,
			id, status, now)
		if err != nil {
			return fmt.Errorf("update verification status: %w", err)
		}
		header, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NotFoundf("job %s not found", id)
			}
			return err
		}
		children, err := loadJobChildren(ctx, tx, id)
		if err != nil {
			return err
		}
		out = model.NewJobWithChildren(header, children)
		return nil
	}})
	if err != nil {
		return nil, mapJobWriteErr("change verification status", err)
	}
	return out, nil
}

// GetByID retrieves a live job with its child sets.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*model.JobWithChildren, error) {
	var out *model.JobWithChildren
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND deleted_at IS NULL`, id)
		if err != nil {
			return err
		}
		header, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		if err != nil {
			return err
		}
		children, err := loadJobChildren(ctx, conn, id)
		if err != nil {
			return err
		}
		out = model.NewJobWithChildren(header, children)
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("job %s not found", id)
		}
		return nil, fmt.Errorf("failed to get job by ID: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// GetByIDs retrieves job headers by ID, including tombstoned ones.
func (r *JobRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Job, error) {
	if len(ids) == 0 {
		return []*model.Job{}, nil
	}
	var rowsOut []model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+jobColumns+` FROM jobs WHERE id = ANY($1::uuid[])`, ids)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs by IDs: %w", err)
	}
	return toPtrs(rowsOut), nil
}

// List retrieves live job headers, newest first.
func (r *JobRepo) List(ctx context.Context, opts *model.JobListOptions) ([]*model.Job, error) {
	if opts == nil {
		opts = &model.JobListOptions{}
	}
	query, args := database.BuildListQuery(buildJobListQuery(opts))

	var rowsOut []model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return toPtrs(rowsOut), nil
}

func buildJobListQuery(opts *model.JobListOptions) *database.ListQueryOptions {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultJobListLimit
	}
	limit = min(limit, maxJobListLimit)

	qopts := []database.ListQueryOption{
		database.WithColumns(jobColumnList...),
		database.WithCondition(database.WhereNull("deleted_at")),
		database.WithOrderBy("created_at", "DESC"),
		database.WithLimit(limit),
		database.WithOffset(max(opts.Offset, 0)),
	}
	if opts.EmployerID != nil {
		qopts = append(qopts, database.WithCondition(
			database.WhereCond("employer_id", database.Equal, *opts.EmployerID)))
	}
	if opts.Status != nil {
		qopts = append(qopts, database.WithCondition(
			database.WhereCond("status", database.Equal, string(*opts.Status))))
	}
	if opts.VerificationStatus != nil {
		qopts = append(qopts, database.WithCondition(
			database.WhereCond("verification_status", database.Equal, string(*opts.VerificationStatus))))
	}
	if opts.Expired != nil {
		if *opts.Expired {
			qopts = append(qopts, database.WithCondition(database.WhereRawCond(job.ExpiredFilterSQL)))
		} else {
			qopts = append(qopts, database.WithCondition(database.WhereRawCond("NOT "+job.ExpiredFilterSQL)))
		}
	}
	return database.NewListQueryOptions("jobs", qopts...)
}

// lockLiveJob takes the row lock on a job that has not been tombstoned.
func lockLiveJob(ctx context.Context, tx pgx.Tx, id string) error {
	var locked string
	err := tx.QueryRow(ctx,
		`SELECT id FROM jobs WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFoundf("job %s not found", id)
		}
		return fmt.Errorf("lock job: %w", err)
	}
	return nil
}

// mapJobWriteErr keeps domain and application errors intact and maps database errors.
func mapJobWriteErr(op string, err error) error {
	if credit.IsExhausted(err) {
		return err
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, apperrors.MapDBError(err))
}
