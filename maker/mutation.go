package maker

import (
	"fmt"
	"strings"

	"github.com/syssam/sqlmaker"
)

// assignment is one column/value pair of an INSERT or UPDATE.
type assignment struct {
	column string
	value  any
}

// assignments keeps column/value pairs in first-set order. Setting a column
// again replaces its value.
type assignments []assignment

func (as *assignments) set(column string, v any) {
	for i := range *as {
		if (*as)[i].column == column {
			(*as)[i].value = v
			return
		}
	}
	*as = append(*as, assignment{column: column, value: v})
}

// columns returns the validated column of every pair.
func (as assignments) columns(b *Builder) []string {
	cols := make([]string, len(as))
	for i, a := range as {
		cols[i] = b.C(a.column)
	}
	return cols
}

func (as assignments) values() []any {
	vs := make([]any, len(as))
	for i, a := range as {
		vs[i] = a.value
	}
	return vs
}

// InsertStmt renders INSERT statements.
type InsertStmt struct {
	sets assignments
}

// Insert returns an INSERT renderer.
func Insert() *InsertStmt { return &InsertStmt{} }

// Set sets the value of a column or field.
func (s *InsertStmt) Set(column string, v any) *InsertStmt {
	s.sets.set(column, v)
	return s
}

// RenderText implements Renderer. With no values, the statement inserts a
// row of defaults.
func (s *InsertStmt) RenderText(b *Builder) (string, error) {
	table, err := b.TableName()
	if err != nil {
		return "", err
	}
	if len(b.predicates) > 0 {
		return "", fmt.Errorf("%w: INSERT into %q does not accept predicates", sqlmaker.ErrUnsupportedOperation, table)
	}
	if len(s.sets) == 0 {
		return "INSERT INTO " + table + " DEFAULT VALUES", nil
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(s.sets.columns(b), ", "), placeholders(len(s.sets))), nil
}

// RenderBaseParameters implements Renderer.
func (s *InsertStmt) RenderBaseParameters(b *Builder) ([]any, error) {
	if len(b.predicates) > 0 {
		return nil, fmt.Errorf("%w: INSERT does not accept predicates", sqlmaker.ErrUnsupportedOperation)
	}
	s.sets.columns(b)
	return s.sets.values(), nil
}

// UpdateStmt renders UPDATE statements.
type UpdateStmt struct {
	sets assignments
}

// Update returns an UPDATE renderer.
func Update() *UpdateStmt { return &UpdateStmt{} }

// Set sets the value of a column or field.
func (s *UpdateStmt) Set(column string, v any) *UpdateStmt {
	s.sets.set(column, v)
	return s
}

// RenderText implements Renderer.
func (s *UpdateStmt) RenderText(b *Builder) (string, error) {
	table, err := b.TableName()
	if err != nil {
		return "", err
	}
	if len(s.sets) == 0 {
		return "", fmt.Errorf("%w: UPDATE of %q sets no columns", sqlmaker.ErrUnsupportedOperation, table)
	}
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(table)
	sb.WriteString(" SET ")
	for i, c := range s.sets.columns(b) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c)
		sb.WriteString(" = ?")
	}
	if where := b.WhereClause(); where != "" {
		sb.WriteString(" ")
		sb.WriteString(where)
	}
	return sb.String(), nil
}

// RenderBaseParameters implements Renderer. The SET values come before the
// predicate values, matching their position in the text.
func (s *UpdateStmt) RenderBaseParameters(b *Builder) ([]any, error) {
	if len(s.sets) == 0 {
		return nil, fmt.Errorf("%w: UPDATE sets no columns", sqlmaker.ErrUnsupportedOperation)
	}
	s.sets.columns(b)
	return s.sets.values(), nil
}

// DeleteStmt renders DELETE statements.
type DeleteStmt struct {
	all bool
}

// Delete returns a DELETE renderer. It refuses to render without a
// predicate unless All is called.
func Delete() *DeleteStmt { return &DeleteStmt{} }

// All allows deleting every row of the table.
func (s *DeleteStmt) All() *DeleteStmt {
	s.all = true
	return s
}

// RenderText implements Renderer.
func (s *DeleteStmt) RenderText(b *Builder) (string, error) {
	table, err := b.TableName()
	if err != nil {
		return "", err
	}
	where := b.WhereClause()
	if where == "" {
		if !s.all {
			return "", fmt.Errorf("%w: DELETE from %q without predicates", sqlmaker.ErrUnsupportedOperation, table)
		}
		return "DELETE FROM " + table, nil
	}
	return "DELETE FROM " + table + " " + where, nil
}

// RenderBaseParameters implements Renderer.
func (s *DeleteStmt) RenderBaseParameters(*Builder) ([]any, error) {
	return nil, nil
}

var (
	_ Renderer = (*InsertStmt)(nil)
	_ Renderer = (*UpdateStmt)(nil)
	_ Renderer = (*DeleteStmt)(nil)
)
