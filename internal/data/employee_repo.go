package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/target/jobmarket-api/internal/data/database"
	"github.com/target/jobmarket-api/internal/data/pgxutil"
	"github.com/target/jobmarket-api/internal/domain/matching"
	"github.com/target/jobmarket-api/internal/domain/model"
	apperrors "github.com/target/jobmarket-api/internal/errors"
)

var employeeColumnList = []string{
	"id", "name", "gender", "preferred_state_id", "preferred_city_id", "qualification_id",
	"expected_salary", "salary_frequency", "is_active", "created_at",
}

// EmployeeRepo provides read access to employees.
type EmployeeRepo struct {
	DB *sql.DB
}

// NewEmployeeRepo creates a new EmployeeRepo.
func NewEmployeeRepo(db *sql.DB) *EmployeeRepo {
	return &EmployeeRepo{DB: db}
}

// FindCandidates returns active employees matching c, most recently created first.
// The result is capped at c.Limit so the scan stays bounded.
func (r *EmployeeRepo) FindCandidates(ctx context.Context, c matching.Criteria) ([]*model.Employee, error) {
	query, args := database.BuildListQuery(buildCandidateQuery(c))

	var out []*model.Employee
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		employees, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Employee])
		if err != nil {
			return err
		}
		out = toPtrs(employees)
		return attachJobProfiles(ctx, conn, out)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}
	return out, nil
}

func buildCandidateQuery(c matching.Criteria) *database.ListQueryOptions {
	opts := []database.ListQueryOption{
		database.WithColumns(employeeColumnList...),
		database.WithCondition(database.WhereCond("is_active", database.Equal, true)),
		database.WithCondition(database.WhereNull("deleted_at")),
		database.WithOrderBy("created_at", "DESC"),
		database.WithLimit(matching.ClampLimit(c.Limit)),
	}
	add := func(cond database.Condition) {
		opts = append(opts, database.WithCondition(cond))
	}

	if c.StateID != nil {
		add(database.WhereCond("preferred_state_id", database.Equal, *c.StateID))
	}
	if c.CityID != nil {
		add(database.WhereCond("preferred_city_id", database.Equal, *c.CityID))
	}
	if len(c.Qualifications) > 0 {
		add(database.WhereRawCond("qualification_id = ANY($1::bigint[])", c.Qualifications))
	}
	if len(c.Genders) > 0 {
		add(database.WhereRawCond("lower(gender) = ANY($1::text[])", c.Genders))
	}
	switch {
	case c.SalaryMin != nil && c.SalaryMax != nil:
		add(database.WhereRawCond(
			"(expected_salary IS NULL OR expected_salary BETWEEN $1 AND $2)", *c.SalaryMin, *c.SalaryMax))
	case c.SalaryMin != nil:
		add(database.WhereRawCond("(expected_salary IS NULL OR expected_salary >= $1)", *c.SalaryMin))
	case c.SalaryMax != nil:
		add(database.WhereRawCond("(expected_salary IS NULL OR expected_salary <= $1)", *c.SalaryMax))
	}
	if c.JobProfileID != nil {
		add(database.WhereRawCond(`EXISTS (
			SELECT 1 FROM employee_job_profiles p
			WHERE p.employee_id = employees.id AND p.job_profile_id = $1)`, *c.JobProfileID))
	}

	return database.NewListQueryOptions("employees", opts...)
}

// GetByID retrieves an employee by ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	list, err := r.GetByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, apperrors.NotFoundf("employee %s not found", id)
	}
	return list[0], nil
}

// GetByIDs retrieves employees by ID.
func (r *EmployeeRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Employee, error) {
	if len(ids) == 0 {
		return []*model.Employee{}, nil
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("employees",
		database.WithColumns(employeeColumnList...),
		database.WithCondition(database.WhereRawCond("id = ANY($1::uuid[])", ids)),
	))

	var out []*model.Employee
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		employees, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Employee])
		if err != nil {
			return err
		}
		out = toPtrs(employees)
		return attachJobProfiles(ctx, conn, out)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*model.Employee{}, nil
		}
		return nil, fmt.Errorf("failed to get employees by IDs: %w", err)
	}
	return out, nil
}

// attachJobProfiles loads job-profile links for employees in one query.
func attachJobProfiles(ctx context.Context, conn *pgx.Conn, employees []*model.Employee) error {
	if len(employees) == 0 {
		return nil
	}
	ids := make([]string, len(employees))
	byID := make(map[string]*model.Employee, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
		byID[e.ID] = e
	}

	rows, err := conn.Query(ctx, `
		SELECT employee_id::text, job_profile_id
		FROM employee_job_profiles
		WHERE employee_id = ANY($1::uuid[])
		ORDER BY job_profile_id`, ids)
	if err != nil {
		return fmt.Errorf("load job profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			employeeID string
			profileID  int64
		)
		if err := rows.Scan(&employeeID, &profileID); err != nil {
			return fmt.Errorf("scan job profile: %w", err)
		}
		if e, ok := byID[employeeID]; ok {
			e.JobProfileIDs = append(e.JobProfileIDs, profileID)
		}
	}
	return rows.Err()
}
