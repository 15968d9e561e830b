// Package database builds the parameterized SELECT statements used by the list
// and candidate-search repositories.
package database

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ConditionType is the comparison a Condition applies to its field.
type ConditionType int

const (
	Equal ConditionType = iota
	NotEqual
	GreaterOrEqual
	LessOrEqual
	IsNull
	// Custom conditions carry raw SQL; build them with WhereRawCond.
	Custom
)

var operators = map[ConditionType]string{
	Equal:          "=",
	NotEqual:       "<>",
	GreaterOrEqual: ">=",
	LessOrEqual:    "<=",
}

// Condition is a single WHERE clause term. Terms are joined with AND.
type Condition struct {
	Field string
	Type  ConditionType
	Value any

	raw    string
	params []any
}

// WhereCond compares a column with a bound value.
func WhereCond(field string, typ ConditionType, value any) Condition {
	if typ == Custom {
		panic("database: use WhereRawCond for custom conditions")
	}
	return Condition{Field: field, Type: typ, Value: value}
}

// WhereNull matches rows where field IS NULL.
func WhereNull(field string) Condition {
	return Condition{Field: field, Type: IsNull}
}

// WhereRawCond embeds a SQL fragment. Its placeholders are numbered from $1
// and are shifted to follow the parameters already bound by earlier terms.
func WhereRawCond(raw string, params ...any) Condition {
	return Condition{Type: Custom, raw: raw, params: params}
}

// ListQueryOptions describes a SELECT against a single table.
type ListQueryOptions struct {
	Table      string
	Columns    []string
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      *int
	Offset     *int
}

// ListQueryOption mutates ListQueryOptions.
type ListQueryOption func(*ListQueryOptions)

// NewListQueryOptions applies opts to a query over table.
func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	o := &ListQueryOptions{Table: table}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) { o.Columns = append(o.Columns, cols...) }
}

func WithCondition(c Condition) ListQueryOption {
	return func(o *ListQueryOptions) { o.Conditions = append(o.Conditions, c) }
}

// WithOrderBy sorts by column. Directions other than ASC and DESC are ignored.
func WithOrderBy(column, dir string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = strings.ToUpper(strings.TrimSpace(dir))
	}
}

func WithLimit(n int) ListQueryOption {
	return func(o *ListQueryOptions) { o.Limit = &n }
}

func WithOffset(n int) ListQueryOption {
	return func(o *ListQueryOptions) { o.Offset = &n }
}

// BuildListQuery renders opts into SQL and its positional arguments.
// Identifiers are quoted; values are always bound.
func BuildListQuery(opts *ListQueryOptions) (string, []any) {
	if opts == nil {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	if len(opts.Columns) == 0 {
		b.WriteString("*")
	} else {
		for i, col := range opts.Columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quoteIdent(col))
		}
	}
	b.WriteString(" FROM ")
	b.WriteString(quoteIdent(opts.Table))

	var args []any
	var terms []string
	for _, c := range opts.Conditions {
		switch c.Type {
		case IsNull:
			terms = append(terms, quoteIdent(c.Field)+" IS NULL")
		case Custom:
			terms = append(terms, renumber(c.raw, len(args)))
			args = append(args, c.params...)
		default:
			op, ok := operators[c.Type]
			if !ok {
				continue
			}
			args = append(args, c.Value)
			terms = append(terms, fmt.Sprintf("%s %s $%d", quoteIdent(c.Field), op, len(args)))
		}
	}
	if len(terms) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(terms, " AND "))
	}

	if opts.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(quoteIdent(opts.OrderBy))
		if opts.OrderDir == "ASC" || opts.OrderDir == "DESC" {
			b.WriteString(" " + opts.OrderDir)
		}
	}
	if opts.Limit != nil {
		args = append(args, *opts.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	if opts.Offset != nil {
		args = append(args, *opts.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return b.String(), args
}

// quoteIdent quotes a possibly schema-qualified identifier.
func quoteIdent(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

var placeholderRE = regexp.MustCompile(`\$(\d+)`)

func renumber(raw string, offset int) string {
	if offset == 0 {
		return raw
	}
	return placeholderRE.ReplaceAllStringFunc(raw, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil {
			return m
		}
		return "$" + strconv.Itoa(n+offset)
	})
}
