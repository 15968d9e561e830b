package database

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name      string
		opts      *ListQueryOptions
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "basic select",
			opts:      NewListQueryOptions("jobs"),
			wantQuery: `SELECT * FROM "jobs"`,
		},
		{
			name:      "qualified columns",
			opts:      NewListQueryOptions("jobs", WithColumns("id", "jobs.status")),
			wantQuery: `SELECT "id", "jobs"."status" FROM "jobs"`,
		},
		{
			name: "null checks take no parameters",
			opts: NewListQueryOptions("jobs",
				WithCondition(WhereNull("deleted_at")),
				WithCondition(WhereCond("status", Equal, "active")),
				WithCondition(WhereCond("no_vacancy", GreaterOrEqual, 1)),
			),
			wantQuery: `SELECT * FROM "jobs" WHERE "deleted_at" IS NULL AND "status" = $1 AND "no_vacancy" >= $2`,
			wantArgs:  []any{"active", 1},
		},
		{
			name: "raw condition with slice parameter",
			opts: NewListQueryOptions("employees",
				WithCondition(WhereCond("is_active", Equal, true)),
				WithCondition(WhereRawCond("lower(gender) = ANY($1::text[])", []string{"female"})),
			),
			wantQuery: `SELECT * FROM "employees" WHERE "is_active" = $1 AND lower(gender) = ANY($2::text[])`,
			wantArgs:  []any{true, []string{"female"}},
		},
		{
			name: "raw condition renumbers repeated placeholders",
			opts: NewListQueryOptions("employees",
				WithCondition(WhereCond("preferred_state_id", Equal, int64(4))),
				WithCondition(WhereRawCond(
					"(expected_salary IS NULL OR (expected_salary >= $1 AND expected_salary <= $2 AND $1 <= $2))",
					int64(20000), int64(30000),
				)),
			),
			wantQuery: `SELECT * FROM "employees" WHERE "preferred_state_id" = $1 AND ` +
				`(expected_salary IS NULL OR (expected_salary >= $2 AND expected_salary <= $3 AND $2 <= $3))`,
			wantArgs: []any{int64(4), int64(20000), int64(30000)},
		},
		{
			name: "raw condition without parameters",
			opts: NewListQueryOptions("jobs",
				WithCondition(WhereRawCond("(status = 'expired' OR expired_at IS NOT NULL)")),
			),
			wantQuery: `SELECT * FROM "jobs" WHERE (status = 'expired' OR expired_at IS NOT NULL)`,
		},
		{
			name: "order limit offset",
			opts: NewListQueryOptions("jobs",
				WithCondition(WhereCond("employer_id", Equal, "e-1")),
				WithOrderBy("created_at", "desc"),
				WithLimit(50),
				WithOffset(0),
			),
			wantQuery: `SELECT * FROM "jobs" WHERE "employer_id" = $1 ORDER BY "created_at" DESC LIMIT $2 OFFSET $3`,
			wantArgs:  []any{"e-1", 50, 0},
		},
		{
			name:      "invalid order direction is dropped",
			opts:      NewListQueryOptions("jobs", WithOrderBy("created_at", "sideways")),
			wantQuery: `SELECT * FROM "jobs" ORDER BY "created_at"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := BuildListQuery(tt.opts)
			if query != tt.wantQuery {
				t.Errorf("query = %q, want %q", query, tt.wantQuery)
			}
			if len(args) == 0 && len(tt.wantArgs) == 0 {
				return
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}

func TestBuildListQuery_NilOptions(t *testing.T) {
	query, args := BuildListQuery(nil)
	if query != "" || args != nil {
		t.Errorf("BuildListQuery(nil) = %q, %v", query, args)
	}
}

func TestBuildListQuery_SQLInjectionPrevention(t *testing.T) {
	opts := NewListQueryOptions("jobs; DROP TABLE employers;--",
		WithOrderBy(`created_at"; DELETE FROM jobs;--`, "ASC"),
	)
	query, _ := BuildListQuery(opts)

	if !strings.Contains(query, `"jobs; DROP TABLE employers;--"`) {
		t.Errorf("table name not quoted: %q", query)
	}
	if !strings.Contains(query, `"created_at""; DELETE FROM jobs;--"`) {
		t.Errorf("order column not quoted: %q", query)
	}
}

func TestWhereCond_CustomPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("WhereCond(Custom) should panic")
		}
	}()
	_ = WhereCond("x", Custom, nil)
}
