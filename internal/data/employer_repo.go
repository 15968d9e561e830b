package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/target/jobmarket-api/internal/data/pgxutil"
	"github.com/target/jobmarket-api/internal/domain/credit"
	"github.com/target/jobmarket-api/internal/domain/model"
	apperrors "github.com/target/jobmarket-api/internal/errors"
)

const employerColumns = `id, name, organization, ad_credit, total_ad_credit, credit_expiry_at,
	created_at, updated_at, deleted_at`

// EmployerRepo provides database operations for employers and their ad-credit ledger.
type EmployerRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewEmployerRepo creates a new EmployerRepo with real time provider.
func NewEmployerRepo(db *sql.DB) *EmployerRepo {
	return &EmployerRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewEmployerRepoWithTimeProvider creates a new EmployerRepo with a custom time provider.
func NewEmployerRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *EmployerRepo {
	return &EmployerRepo{DB: db, timeProvider: tp}
}

// GetByID retrieves a live employer by ID.
func (r *EmployerRepo) GetByID(ctx context.Context, id string) (*model.Employer, error) {
	var out model.Employer
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+employerColumns+` FROM employers WHERE id = $1 AND deleted_at IS NULL`, id)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employer])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("employer %s not found", id)
		}
		return nil, fmt.Errorf("failed to get employer by ID: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// GetByIDs retrieves employers by ID, including tombstoned ones, so historical records can still be decorated.
func (r *EmployerRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Employer, error) {
	if len(ids) == 0 {
		return []*model.Employer{}, nil
	}
	var rowsOut []model.Employer
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+employerColumns+` FROM employers WHERE id = ANY($1::uuid[])`, ids)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Employer])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get employers by IDs: %w", err)
	}
	return toPtrs(rowsOut), nil
}

// GrantCredits adds amount to both the current and the lifetime balance.
// ExpiresAt, when set, replaces the current expiry.
func (r *EmployerRepo) GrantCredits(ctx context.Context, req model.GrantCreditsRequest) (*model.Employer, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Employer
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE employers
			SET ad_credit = ad_credit + $2,
				total_ad_credit = total_ad_credit + $2,
				credit_expiry_at = COALESCE($3, credit_expiry_at),
				updated_at = $4
			WHERE id = $1 AND deleted_at IS NULL
			RETURNING `+employerColumns,
			req.EmployerID, req.Amount, req.ExpiresAt, now)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employer])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("employer %s not found", req.EmployerID)
		}
		return nil, fmt.Errorf("failed to grant credits: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// reserveAdCredit consumes one ad credit from employerID inside tx.
//
// The employer row stays locked until tx ends, so concurrent reservations for the same
// employer are serialized. When the credits are expired or the balance is too low it
// returns *credit.ExhaustedError and the caller must abort tx.
func reserveAdCredit(ctx context.Context, tx pgx.Tx, employerID string, now time.Time) error {
	var (
		balance int
		expiry  *time.Time
	)
	err := tx.QueryRow(ctx, `
		SELECT ad_credit, credit_expiry_at
		FROM employers
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`, employerID).Scan(&balance, &expiry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFoundf("employer %s not found", employerID)
		}
		return fmt.Errorf("lock employer: %w", err)
	}

	if err := credit.Evaluate(balance, expiry, now); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE employers SET ad_credit = ad_credit - $2, updated_at = $3 WHERE id = $1`,
		employerID, credit.CostPerJob, now,
	); err != nil {
		return fmt.Errorf("decrement ad credit: %w", err)
	}
	return nil
}

func toPtrs[T any](in []T) []*T {
	out := make([]*T, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}
