package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// UpsertModel builds an insert from the `db` tagged fields of model. Every
// column outside conflict is overwritten when the key already exists.
func UpsertModel(table string, model any, conflict ...string) *InsertBuilder {
	b := InsertInto(table)
	cols, vals, err := modelColumns(model)
	if err != nil {
		b.err = fmt.Errorf("upsert %s: %w", table, err)
		return b
	}

	b.Columns(cols...).Values(vals...)
	if len(conflict) == 0 {
		return b
	}
	b.OnConflict(conflict...)
	for _, col := range cols {
		if !slices.Contains(conflict, col) {
			b.DoUpdate(col)
		}
	}
	return b
}

func modelColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	var cols []string
	var vals []any
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
