package errors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapDBError_Passthrough(t *testing.T) {
	assert.NoError(t, MapDBError(nil))

	plain := errors.New("dial tcp: connection refused")
	assert.Same(t, plain, MapDBError(plain))
}

func TestMapDBError_Sentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"deadline", context.DeadlineExceeded, ErrCodeTimeout},
		{"canceled", fmt.Errorf("query: %w", context.Canceled), ErrCodeCanceled},
		{"pgx no rows", pgx.ErrNoRows, ErrCodeNotFound},
		{"sql no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.err)
			assert.Equal(t, tt.want, GetCode(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	tests := []struct {
		name      string
		pgErr     *pgconn.PgError
		wantField string
	}{
		{
			name:      "column metadata",
			pgErr:     &pgconn.PgError{ColumnName: "name", ConstraintName: "employers_organization_key"},
			wantField: "name",
		},
		{
			name:      "detail",
			pgErr:     &pgconn.PgError{Detail: `Key (job_id, sender_id)=(j-1, e-1) already exists.`},
			wantField: "job_id, sender_id",
		},
		{
			name:      "constraint with table",
			pgErr:     &pgconn.PgError{TableName: "job_interests", ConstraintName: "job_interests_token_key"},
			wantField: "token",
		},
		{
			name:      "constraint without table",
			pgErr:     &pgconn.PgError{ConstraintName: "employers_name_key"},
			wantField: "name",
		},
		{
			name:  "multi column constraint",
			pgErr: &pgconn.PgError{ConstraintName: "jobs_employer_id_title_key"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.pgErr.Code = pgerrcode.UniqueViolation
			err := MapDBError(tt.pgErr)
			assert.Equal(t, ErrCodeConflict, GetCode(err))
			assert.Equal(t, tt.wantField, GetField(err))
		})
	}
}

func TestMapDBError_ForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name  string
		pgErr *pgconn.PgError
		want  string
	}{
		{
			name:  "parent still referenced",
			pgErr: &pgconn.PgError{Detail: `Key (id)=(j-1) is still referenced from table "job_interests".`},
			want:  "in use by job interest",
		},
		{
			name:  "missing parent",
			pgErr: &pgconn.PgError{Detail: `Key (employer_id)=(e-9) is not present in table "employers".`},
			want:  "referenced employer does not exist",
		},
		{
			name:  "child table reports as job",
			pgErr: &pgconn.PgError{TableName: "job_skills"},
			want:  "reference from job is invalid",
		},
		{
			name:  "unknown table",
			pgErr: &pgconn.PgError{Detail: `Key (x)=(1) is not present in table "skill_catalog".`},
			want:  "referenced skill catalog does not exist",
		},
		{
			name:  "no metadata",
			pgErr: &pgconn.PgError{},
			want:  "referenced record does not exist or is in use",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.pgErr.Code = pgerrcode.ForeignKeyViolation
			err := MapDBError(tt.pgErr)
			assert.Equal(t, ErrCodeForeignKey, GetCode(err))
			var appErr *AppError
			if assert.ErrorAs(t, err, &appErr) {
				assert.Equal(t, tt.want, appErr.Message)
			}
		})
	}
}

func TestMapDBError_ValidationViolations(t *testing.T) {
	notNull := MapDBError(&pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "employer_id"})
	assert.True(t, IsValidation(notNull))
	assert.Equal(t, "employer_id", GetField(notNull))

	check := MapDBError(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "employers_ad_credit_check"})
	assert.True(t, IsValidation(check))
	assert.Contains(t, check.Error(), "employers_ad_credit_check")
}

func TestMapDBError_UnhandledPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.SerializationFailure}
	err := MapDBError(fmt.Errorf("commit: %w", pgErr))

	assert.Equal(t, ErrCodeInternal, GetCode(err))
	assert.ErrorIs(t, err, pgErr)
}
