package query

import "strings"

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
//	wb := query.NewWhereBuilder()
//	wb.Equals(query.ColTeamName, team).NotNull(query.ColXCoord)
//	where, args := wb.Build()
//	// team_name = ? AND x_coord IS NOT NULL
type WhereBuilder struct {
	clauses []string
	args    []any
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

// Equals adds "column = ?". An empty value means no constraint on the
// column and is skipped; it never matches NULL.
func (wb *WhereBuilder) Equals(column, value string) *WhereBuilder {
	if value == "" {
		return wb
	}
	wb.clauses = append(wb.clauses, column+" = ?")
	wb.args = append(wb.args, value)
	return wb
}

// Clause adds a raw condition. clause must come from code, never from
// request data; values go in args.
func (wb *WhereBuilder) Clause(clause string, args ...any) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// NotNull adds "column IS NOT NULL".
func (wb *WhereBuilder) NotNull(column string) *WhereBuilder {
	wb.clauses = append(wb.clauses, column+" IS NOT NULL")
	return wb
}

// In adds "column IN (?, ...)". An empty list is skipped.
func (wb *WhereBuilder) In(column string, values ...string) *WhereBuilder {
	if len(values) == 0 {
		return wb
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, column+" IN ("+strings.Join(placeholders, ", ")+")")
	return wb
}

// Build joins clauses with AND. Returns ("1=1", nil) if no clauses were added.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.clauses) == 0 {
		return "1=1", nil
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// Expr is a SQL fragment together with the arguments its placeholders bind.
type Expr struct {
	SQL  string
	Args []any
}

// Col wraps a bare column name as an Expr.
func Col(name string) Expr { return Expr{SQL: name} }

// Select assembles a SELECT statement. Arguments are emitted in text order:
// WITH, column expressions, WHERE, then LIMIT/OFFSET.
type Select struct {
	With    *Expr
	Columns []Expr
	From    string
	Where   *WhereBuilder
	GroupBy []string
	OrderBy []string
	Limit   int
	Offset  int
}

// Build renders the statement and its ordered arguments.
func (s Select) Build() (string, []any) {
	var b strings.Builder
	var args []any

	if s.With != nil {
		b.WriteString("WITH ")
		b.WriteString(s.With.SQL)
		b.WriteString(" ")
		args = append(args, s.With.Args...)
	}

	b.WriteString("SELECT ")
	for i, c := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.SQL)
		args = append(args, c.Args...)
	}

	from := s.From
	if from == "" {
		from = Table
	}
	b.WriteString(" FROM ")
	b.WriteString(from)

	if s.Where != nil {
		where, wargs := s.Where.Build()
		b.WriteString(" WHERE ")
		b.WriteString(where)
		args = append(args, wargs...)
	}
	if len(s.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(s.GroupBy, ", "))
	}
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(s.OrderBy, ", "))
	}
	if s.Limit > 0 {
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, s.Limit, s.Offset)
	}
	return b.String(), args
}

// Placeholders returns n comma-separated "?" markers.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// InsertStatement renders a multi-row INSERT for rows of InsertColumns.
func InsertStatement(rows int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(Table)
	b.WriteString(" (")
	b.WriteString(strings.Join(InsertColumns, ", "))
	b.WriteString(") VALUES ")
	row := "(" + Placeholders(len(InsertColumns)) + ")"
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(row)
	}
	return b.String()
}

// maxArgs is SQLite's default SQLITE_MAX_VARIABLE_NUMBER since 3.32.
const maxArgs = 32766

// MaxInsertRows is the largest row count InsertStatement may be asked for
// without exceeding the bound-parameter limit.
var MaxInsertRows = maxArgs / len(InsertColumns)
