// Package query composes parameterized SELECT statements from typed
// predicate fragments. Identifiers come from code; every value is bound
// as a positional pgx argument.
package query

import (
	"strconv"
	"strings"
)

// Expr is a SQL fragment using ? for each bound argument.
type Expr struct {
	sql  string
	args []any
}

func (e Expr) empty() bool { return e.sql == "" }

// Raw wraps a fragment whose ? placeholders bind args in order.
func Raw(sql string, args ...any) Expr {
	return Expr{sql: sql, args: args}
}

func Eq(column string, v any) Expr {
	return Expr{sql: column + " = ?", args: []any{v}}
}

// ILike matches column case-insensitively against pattern using \ as the escape character.
func ILike(column, pattern string) Expr {
	return Expr{sql: column + ` ILIKE ? ESCAPE '\'`, args: []any{pattern}}
}

// Contains builds a %term% pattern with LIKE metacharacters escaped.
func Contains(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

func Or(exprs ...Expr) Expr { return join(" OR ", exprs) }

func And(exprs ...Expr) Expr { return join(" AND ", exprs) }

func join(sep string, exprs []Expr) Expr {
	var parts []string
	var args []any
	for _, e := range exprs {
		if e.empty() {
			continue
		}
		parts = append(parts, e.sql)
		args = append(args, e.args...)
	}
	switch len(parts) {
	case 0:
		return Expr{}
	case 1:
		return Expr{sql: parts[0], args: args}
	}
	return Expr{sql: "(" + strings.Join(parts, sep) + ")", args: args}
}

// SelectBuilder assembles a single SELECT.
type SelectBuilder struct {
	columns []string
	from    string
	joins   []string
	where   []Expr
	orderBy string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.from = table
	return b
}

func (b *SelectBuilder) Join(clause string) *SelectBuilder {
	b.joins = append(b.joins, "JOIN "+clause)
	return b
}

// Where appends predicates that are AND-ed together.
func (b *SelectBuilder) Where(exprs ...Expr) *SelectBuilder {
	for _, e := range exprs {
		if !e.empty() {
			b.where = append(b.where, e)
		}
	}
	return b
}

func (b *SelectBuilder) OrderBy(clause string) *SelectBuilder {
	b.orderBy = clause
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

// Build renders the statement with $n placeholders and its argument list.
func (b *SelectBuilder) Build() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.from)
	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}

	var args []any
	if len(b.where) > 0 {
		parts := make([]string, 0, len(b.where))
		for _, e := range b.where {
			parts = append(parts, e.sql)
			args = append(args, e.args...)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(parts, " AND "))
	}
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	if b.limit > 0 {
		args = append(args, b.limit)
		sb.WriteString(" LIMIT ?")
	}

	return numberPlaceholders(sb.String()), args
}

func numberPlaceholders(sql string) string {
	var sb strings.Builder
	n := 0
	for _, r := range sql {
		if r == '?' {
			n++
			sb.WriteString("$")
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
