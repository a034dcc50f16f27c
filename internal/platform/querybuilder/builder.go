package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates query text and positional arguments ($1, $2, ...).
type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) write(parts ...string) {
	for _, p := range parts {
		w.buf.WriteString(p)
	}
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

func (w *sqlWriter) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.write(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.write(" AND ")
		}
		c.writeSQL(w)
	}
}

func (w *sqlWriter) result() (string, []any, error) {
	return w.buf.String(), w.args, nil
}

type Condition interface {
	writeSQL(w *sqlWriter)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) writeSQL(w *sqlWriter) {
	w.write(c.column, " = ")
	w.bind(c.value)
}

type orCondition []Condition

// Or joins conditions with OR inside parentheses. An empty Or matches nothing.
func Or(conditions ...Condition) Condition {
	return orCondition(conditions)
}

func (c orCondition) writeSQL(w *sqlWriter) {
	if len(c) == 0 {
		w.write("1=0")
		return
	}

	w.write("(")
	for i, cond := range c {
		if i > 0 {
			w.write(" OR ")
		}
		cond.writeSQL(w)
	}
	w.write(")")
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w sqlWriter
	w.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.write(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	return w.result()
}

// InsertBuilder renders a single-row INSERT with an optional
// ON CONFLICT ... DO UPDATE clause.
type InsertBuilder struct {
	table    string
	columns  []string
	values   []any
	conflict []string
	update   []string
	touch    []string
	err      error
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = append([]any(nil), values...)
	return b
}

// OnConflict names the unique key the statement upserts on.
func (b *InsertBuilder) OnConflict(columns ...string) *InsertBuilder {
	b.conflict = append([]string(nil), columns...)
	return b
}

// DoUpdate lists the columns overwritten from EXCLUDED on conflict.
func (b *InsertBuilder) DoUpdate(columns ...string) *InsertBuilder {
	b.update = append(b.update, columns...)
	return b
}

// Touch adds columns set to NOW() on conflict.
func (b *InsertBuilder) Touch(columns ...string) *InsertBuilder {
	b.touch = append(b.touch, columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("insert has %d values, expected %d", len(b.values), len(b.columns))
	}

	var w sqlWriter
	w.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES (")
	for i, value := range b.values {
		if i > 0 {
			w.write(", ")
		}
		w.bind(value)
	}
	w.write(")")

	if len(b.conflict) == 0 {
		return w.result()
	}

	w.write(" ON CONFLICT (", strings.Join(b.conflict, ", "), ")")
	if len(b.update) == 0 && len(b.touch) == 0 {
		w.write(" DO NOTHING")
		return w.result()
	}

	sets := make([]string, 0, len(b.update)+len(b.touch))
	for _, col := range b.update {
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	for _, col := range b.touch {
		sets = append(sets, col+" = NOW()")
	}
	w.write(" DO UPDATE SET ", strings.Join(sets, ", "))
	return w.result()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to build an unconditional delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete conditions are required")
	}

	var w sqlWriter
	w.write("DELETE FROM ", b.table)
	w.where(b.where)
	return w.result()
}
