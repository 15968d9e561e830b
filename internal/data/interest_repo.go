package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/target/jobmarket-api/internal/data/pgxutil"
	"github.com/target/jobmarket-api/internal/domain/model"
	apperrors "github.com/target/jobmarket-api/internal/errors"
)

const interestColumns = `id, sender_type, sender_id, receiver_id, job_id, status, otp, created_at`

// InterestRepo provides read access to job interest records. Nothing here writes them.
type InterestRepo struct {
	DB *sql.DB
}

// NewInterestRepo creates a new InterestRepo.
func NewInterestRepo(db *sql.DB) *InterestRepo {
	return &InterestRepo{DB: db}
}

// ListByJob returns every interest record about jobID, newest first.
func (r *InterestRepo) ListByJob(ctx context.Context, jobID string) ([]*model.JobInterest, error) {
	return r.list(ctx, `
		SELECT `+interestColumns+`
		FROM job_interests
		WHERE job_id = $1
		ORDER BY created_at DESC`, jobID)
}

// ListByParty returns rows where the party is the sender, or is the receiver of a row sent by the other role.
func (r *InterestRepo) ListByParty(
	ctx context.Context,
	role model.SenderType,
	id string,
) ([]*model.JobInterest, error) {
	if !role.Valid() {
		return nil, apperrors.Validationf("unknown party role %q", role)
	}
	return r.list(ctx, `
		SELECT `+interestColumns+`
		FROM job_interests
		WHERE (sender_type = $1 AND sender_id = $2)
		   OR (sender_type <> $1 AND receiver_id = $2)
		ORDER BY created_at DESC`, string(role), id)
}

func (r *InterestRepo) list(ctx context.Context, query string, args ...any) ([]*model.JobInterest, error) {
	var rowsOut []model.JobInterest
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.JobInterest])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list job interests: %w", err)
	}
	return toPtrs(rowsOut), nil
}
