package data

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/target/jobmarket-api/internal/domain/model"
)

// childTable describes one of the seven job child collections.
type childTable struct {
	table   string
	column  string
	sqlType string
	ints    func(c *model.JobChildren) *[]int64
	strs    func(c *model.JobChildren) *[]string
}

// jobChildTables lists every child collection owned by a job. Delete, insert and load all
// iterate this list so no collection can be skipped.
var jobChildTables = []childTable{
	{table: "job_skills", column: "skill_id", sqlType: "bigint", ints: func(c *model.JobChildren) *[]int64 { return &c.Skills }},
	{
		table: "job_qualifications", column: "qualification_id", sqlType: "bigint",
		ints: func(c *model.JobChildren) *[]int64 { return &c.Qualifications },
	},
	{table: "job_shifts", column: "shift_id", sqlType: "bigint", ints: func(c *model.JobChildren) *[]int64 { return &c.Shifts }},
	{table: "job_genders", column: "gender", sqlType: "text", strs: func(c *model.JobChildren) *[]string { return &c.Genders }},
	{table: "job_benefits", column: "benefit_id", sqlType: "bigint", ints: func(c *model.JobChildren) *[]int64 { return &c.Benefits }},
	{
		table: "job_experiences", column: "experience_id", sqlType: "bigint",
		ints: func(c *model.JobChildren) *[]int64 { return &c.ExperienceBands },
	},
	{table: "job_working_days", column: "day_id", sqlType: "bigint", ints: func(c *model.JobChildren) *[]int64 { return &c.WorkingDays }},
}

func (t childTable) values(c *model.JobChildren) (any, int) {
	if t.ints != nil {
		v := *t.ints(c)
		return v, len(v)
	}
	v := *t.strs(c)
	return v, len(v)
}

func (t childTable) deleteSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE job_id = $1", pgx.Identifier{t.table}.Sanitize())
}

func (t childTable) insertSQL() string {
	return fmt.Sprintf(
		"INSERT INTO %s (job_id, %s) SELECT $1, v FROM unnest($2::%s[]) AS v ON CONFLICT DO NOTHING",
		pgx.Identifier{t.table}.Sanitize(),
		pgx.Identifier{t.column}.Sanitize(),
		t.sqlType,
	)
}

// deleteJobChildren removes every child row of jobID.
func deleteJobChildren(ctx context.Context, tx pgx.Tx, jobID string) error {
	for _, t := range jobChildTables {
		if _, err := tx.Exec(ctx, t.deleteSQL(), jobID); err != nil {
			return fmt.Errorf("delete %s: %w", t.table, err)
		}
	}
	return nil
}

// insertJobChildren inserts every non-empty child set of jobID.
func insertJobChildren(ctx context.Context, tx pgx.Tx, jobID string, children *model.JobChildren) error {
	for _, t := range jobChildTables {
		vals, n := t.values(children)
		if n == 0 {
			continue
		}
		if _, err := tx.Exec(ctx, t.insertSQL(), jobID, vals); err != nil {
			return fmt.Errorf("insert %s: %w", t.table, err)
		}
	}
	return nil
}

// replaceJobChildren makes every stored child set equal exactly to children.
func replaceJobChildren(ctx context.Context, tx pgx.Tx, jobID string, children *model.JobChildren) error {
	if err := deleteJobChildren(ctx, tx, jobID); err != nil {
		return err
	}
	return insertJobChildren(ctx, tx, jobID, children)
}

// loadChildrenSQL selects all seven collections of one job as arrays in a single round trip.
var loadChildrenSQL = func() string {
	cols := make([]string, 0, len(jobChildTables))
	for _, t := range jobChildTables {
		col := pgx.Identifier{t.column}.Sanitize()
		cols = append(cols, fmt.Sprintf(
			"COALESCE((SELECT array_agg(%s ORDER BY %s) FROM %s WHERE job_id = $1), '{}'::%s[])",
			col, col, pgx.Identifier{t.table}.Sanitize(), t.sqlType,
		))
	}
	return "SELECT " + strings.Join(cols, ",\n\t")
}()

// loadJobChildren reads the seven child collections of jobID.
func loadJobChildren(ctx context.Context, q pgxQueryRower, jobID string) (model.JobChildren, error) {
	var c model.JobChildren
	dest := make([]any, 0, len(jobChildTables))
	for _, t := range jobChildTables {
		if t.ints != nil {
			dest = append(dest, t.ints(&c))
		} else {
			dest = append(dest, t.strs(&c))
		}
	}
	if err := q.QueryRow(ctx, loadChildrenSQL, jobID).Scan(dest...); err != nil {
		return model.JobChildren{}, fmt.Errorf("load job children: %w", err)
	}
	return c, nil
}

// pgxQueryRower is satisfied by *pgx.Conn and pgx.Tx.
type pgxQueryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
