package errors

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// Key (employer_id)=(...) already exists.
	reDetailKey = regexp.MustCompile(`Key \(([^)]+)\)=`)
	// ... is still referenced from table "job_interests".
	reStillReferenced = regexp.MustCompile(`is still referenced from table "?([^"]+)"?`)
	// ... is not present in table "employers".
	reNotPresent = regexp.MustCompile(`is not present in table "?([^"]+)"?`)
)

// entityNames maps tables onto the names clients see. Child tables of a job
// report as the job itself.
var entityNames = map[string]string{
	"employers":             "employer",
	"employees":             "employee",
	"employee_job_profiles": "employee",
	"jobs":                  "job",
	"job_interests":         "job interest",
	"job_skills":            "job",
	"job_qualifications":    "job",
	"job_shifts":            "job",
	"job_genders":           "job",
	"job_benefits":          "job",
	"job_experiences":       "job",
	"job_working_days":      "job",
	"audit_logs":            "audit log",
}

// MapDBError converts driver and context errors into AppErrors. Errors it does
// not recognize are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &AppError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	case errors.Is(err, context.Canceled):
		return &AppError{Code: ErrCodeCanceled, Message: "request was canceled", Cause: err}
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return &AppError{Code: ErrCodeNotFound, Message: "resource not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return &AppError{
			Code:    ErrCodeConflict,
			Message: "value already exists",
			Field:   uniqueField(pgErr),
			Cause:   pgErr,
		}
	case pgerrcode.ForeignKeyViolation:
		return &AppError{Code: ErrCodeForeignKey, Message: foreignKeyMessage(pgErr), Cause: pgErr}
	case pgerrcode.NotNullViolation:
		return &AppError{Code: ErrCodeValidation, Message: "field is required", Field: pgErr.ColumnName, Cause: pgErr}
	case pgerrcode.CheckViolation:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "value violates constraint " + pgErr.ConstraintName,
			Field:   pgErr.ColumnName,
			Cause:   pgErr,
		}
	default:
		return &AppError{Code: ErrCodeInternal, Message: "database error", Cause: pgErr}
	}
}

// uniqueField picks the violating column from, in order, the column metadata,
// the detail message and a "<table>_<column>_key" constraint name.
func uniqueField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := reDetailKey.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return m[1]
	}
	table := pgErr.TableName
	name := pgErr.ConstraintName
	if table != "" && strings.HasPrefix(name, table+"_") {
		name = strings.TrimPrefix(name, table+"_")
	} else if i := strings.IndexByte(name, '_'); i >= 0 {
		name = name[i+1:]
	}
	for _, suffix := range []string{"_key", "_unique", "_idx"} {
		if col, ok := strings.CutSuffix(name, suffix); ok && col != "" && !strings.Contains(col, "_") {
			return col
		}
	}
	return ""
}

func foreignKeyMessage(pgErr *pgconn.PgError) string {
	if m := reStillReferenced.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return "in use by " + entityName(m[1])
	}
	if m := reNotPresent.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return "referenced " + entityName(m[1]) + " does not exist"
	}
	if pgErr.TableName != "" {
		return "reference from " + entityName(pgErr.TableName) + " is invalid"
	}
	return "referenced record does not exist or is in use"
}

func entityName(table string) string {
	table = strings.ToLower(strings.TrimSpace(table))
	if name, ok := entityNames[table]; ok {
		return name
	}
	return strings.ReplaceAll(table, "_", " ")
}
