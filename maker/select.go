package maker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/sqlmaker"
)

// Order directions.
const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// SelectStmt renders SELECT statements. Columns and ORDER BY terms may be
// given as column or field names; they are validated when rendered.
type SelectStmt struct {
	columns  []string
	count    bool
	distinct bool
	orders   []orderTerm
	limit    *int
	offset   *int
}

type orderTerm struct {
	column string
	dir    string
}

// Select returns a SELECT renderer. With no columns, the statement selects
// every column of a checked table, or * for an unchecked one.
func Select(columns ...string) *SelectStmt {
	return &SelectStmt{columns: columns}
}

// Count returns a renderer for SELECT COUNT(*).
func Count() *SelectStmt {
	return &SelectStmt{count: true}
}

// Distinct adds the DISTINCT keyword. It cannot be combined with Count.
func (s *SelectStmt) Distinct() *SelectStmt {
	s.distinct = true
	return s
}

// OrderBy appends an ORDER BY term. dir is OrderAsc or OrderDesc.
func (s *SelectStmt) OrderBy(column, dir string) *SelectStmt {
	s.orders = append(s.orders, orderTerm{column: column, dir: strings.ToUpper(dir)})
	return s
}

// Limit limits the number of returned rows.
func (s *SelectStmt) Limit(n int) *SelectStmt {
	s.limit = &n
	return s
}

// Offset skips the first n rows.
func (s *SelectStmt) Offset(n int) *SelectStmt {
	s.offset = &n
	return s
}

// RenderText implements Renderer.
func (s *SelectStmt) RenderText(b *Builder) (string, error) {
	table, err := b.TableName()
	if err != nil {
		return "", err
	}
	if s.count && s.distinct {
		return "", fmt.Errorf("%w: DISTINCT does not apply to COUNT(*)", sqlmaker.ErrInvalidArgument)
	}
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if s.distinct {
		sb.WriteString("DISTINCT ")
	}
	switch {
	case s.count:
		sb.WriteString("COUNT(*)")
	case len(s.columns) > 0:
		for i, c := range s.columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(b.C(c))
		}
	case b.Descriptor().Checked():
		sb.WriteString(strings.Join(b.Descriptor().Columns(), ", "))
	default:
		sb.WriteString("*")
	}
	sb.WriteString(" FROM ")
	sb.WriteString(table)
	if where := b.WhereClause(); where != "" {
		sb.WriteString(" ")
		sb.WriteString(where)
	}
	for i, o := range s.orders {
		if o.dir != OrderAsc && o.dir != OrderDesc {
			return "", fmt.Errorf("%w: invalid order direction %q", sqlmaker.ErrInvalidArgument, o.dir)
		}
		if i == 0 {
			sb.WriteString(" ORDER BY ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(b.C(o.column))
		sb.WriteString(" ")
		sb.WriteString(o.dir)
	}
	if s.limit != nil {
		if *s.limit < 0 {
			return "", fmt.Errorf("%w: negative limit %d", sqlmaker.ErrInvalidArgument, *s.limit)
		}
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(*s.limit))
	}
	if s.offset != nil {
		if *s.offset < 0 {
			return "", fmt.Errorf("%w: negative offset %d", sqlmaker.ErrInvalidArgument, *s.offset)
		}
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(*s.offset))
	}
	return sb.String(), nil
}

// RenderBaseParameters implements Renderer. SELECT has no base parameters;
// LIMIT and OFFSET are rendered inline.
func (s *SelectStmt) RenderBaseParameters(*Builder) ([]any, error) {
	return nil, nil
}

var _ Renderer = (*SelectStmt)(nil)
